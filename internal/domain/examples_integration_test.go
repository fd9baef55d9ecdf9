package domain_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockhoist.dev/pkg/mockhoist/internal/domain"
	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

const goldenExt = ".golden"

// copyExample copies examples/<name> into a temporary directory and returns
// it with the golden contents keyed by the file they describe.
func copyExample(t *testing.T, name string) (string, map[string]string) {
	t.Helper()

	src := filepath.Join("..", "..", "examples", name)
	dst := t.TempDir()
	golden := map[string]string{}

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if strings.HasSuffix(rel, goldenExt) {
			golden[strings.TrimSuffix(rel, goldenExt)] = string(data)
			return nil
		}

		target := filepath.Join(dst, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}

		return os.WriteFile(target, data, 0o644)
	})
	require.NoError(t, err)

	return dst, golden
}

func TestExamples_Run(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
	}{
		{name: "basic"},
		{name: "factory"},
		{name: "clean"},
		{name: "rejected", wantErr: domain.ErrRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, golden := copyExample(t, tt.name)

			before := snapshot(t, dir)

			f := newWorkflowFixture(t, nil)

			err := f.workflow.Run(context.Background(), domain.RunArgs{
				CheckArgs: domain.CheckArgs{Paths: []m.Path{m.Path(dir + "/...")}, Threads: 2},
				Write:     true,
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			for rel, content := range snapshot(t, dir) {
				want, ok := golden[rel]
				if !ok {
					want = before[rel]
				}

				assert.Equal(t, want, content, rel)
			}

			if tt.wantErr == nil {
				err := f.workflow.Check(context.Background(), domain.CheckArgs{Paths: []m.Path{m.Path(dir + "/...")}})
				require.NoError(t, err, "a written tree passes check")
			}
		})
	}
}

func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()

	files := map[string]string{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		files[rel] = string(data)

		return nil
	})
	require.NoError(t, err)

	return files
}
