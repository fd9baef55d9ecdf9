package domain_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mockhoist.dev/pkg/mockhoist/internal/adapter"
	adaptermocks "mockhoist.dev/pkg/mockhoist/internal/adapter/mocks"
	"mockhoist.dev/pkg/mockhoist/internal/controller"
	controllermocks "mockhoist.dev/pkg/mockhoist/internal/controller/mocks"
	"mockhoist.dev/pkg/mockhoist/internal/domain"
	domainmocks "mockhoist.dev/pkg/mockhoist/internal/domain/mocks"
	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

const (
	needsHoisting = "const a = 1;\njest.mock(\"m\");\n"
	hoisted       = getter + "_getJestObj().mock(\"m\");\nconst a = 1;\n"
	plainTest     = "test(\"t\", () => {});\n"
	outOfScope    = "const value = compute();\njest.mock(\"m\", () => value);\n"
)

type workflowFixture struct {
	workflow domain.Workflow
	store    adapter.ReportStore
	output   *bytes.Buffer
	root     string
	reports  m.Path
}

func newWorkflowFixture(t *testing.T, files map[string]string) *workflowFixture {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		writeSource(t, root, name, content)
	}

	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	fs := adapter.NewLocalSourceFSAdapter()
	store := adapter.NewReportStore()

	return &workflowFixture{
		workflow: domain.NewWorkflow(
			fs,
			store,
			controller.NewSimpleUI(cmd),
			domain.NewSourceStreamer(fs),
			domain.NewTransformer(fs, adapter.NewLocalJSFileAdapter()),
		),
		store:   store,
		output:  &buf,
		root:    root,
		reports: m.Path(filepath.Join(root, ".reports")),
	}
}

func domainTransformer(t *testing.T) *domainmocks.MockTransformer {
	return domainmocks.NewMockTransformer(t)
}

func (f *workflowFixture) paths() []m.Path {
	return []m.Path{m.Path(f.root + "/...")}
}

func (f *workflowFixture) read(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(f.root, name))
	require.NoError(t, err)

	return string(data)
}

func TestWorkflow_Run_Write(t *testing.T) {
	f := newWorkflowFixture(t, map[string]string{
		"a.test.js": needsHoisting,
		"b.test.js": plainTest,
		"lib.js":    needsHoisting,
	})
	ctx := context.Background()

	args := domain.RunArgs{
		CheckArgs: domain.CheckArgs{Paths: f.paths(), Threads: 2},
		Reports:   f.reports,
		UseCache:  true,
		Write:     true,
	}

	require.NoError(t, f.workflow.Run(ctx, args))

	assert.Equal(t, hoisted, f.read(t, "a.test.js"))
	assert.Equal(t, plainTest, f.read(t, "b.test.js"))
	assert.Equal(t, needsHoisting, f.read(t, "lib.js"), "non-test files are not selected")

	out := f.output.String()
	assert.Contains(t, out, "Hoisting 2 file(s) with 2 worker(s)")
	assert.Contains(t, out, "a.test.js (1 rewritten, 1 hoisted call(s), 0 hoisted var(s)) written")

	reports, err := f.store.LoadReports(ctx, f.reports)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, m.StatusTransformed, reports[0].Status)
	assert.True(t, reports[0].Written)
	assert.Equal(t, adapter.HashBytes([]byte(hoisted)), reports[0].Source.Origin.Hash)
	assert.Equal(t, m.StatusUnchanged, reports[1].Status)

	t.Run("second run is served from the cache", func(t *testing.T) {
		f.output.Reset()

		require.NoError(t, f.workflow.Run(ctx, args))
		assert.Contains(t, f.output.String(), "Hoisting 0 file(s) with 2 worker(s), 2 cached")
	})

	t.Run("edited and deleted files", func(t *testing.T) {
		f.output.Reset()

		writeSource(t, f.root, "b.test.js", needsHoisting)
		require.NoError(t, os.Remove(filepath.Join(f.root, "a.test.js")))

		require.NoError(t, f.workflow.Run(ctx, args))
		assert.Contains(t, f.output.String(), "Hoisting 1 file(s) with 2 worker(s)")

		reports, err := f.store.LoadReports(ctx, f.reports)
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, "b.test.js", filepath.Base(reports[0].Source.Key()))
		assert.True(t, reports[0].Written)
	})
}

func TestWorkflow_Run_WriteKeepsComments(t *testing.T) {
	src := "// test file\n" +
		"const a = 1; // one\n" +
		"/* mock it */\n" +
		"jest.mock('m');\n"

	f := newWorkflowFixture(t, map[string]string{"a.test.js": src})

	require.NoError(t, f.workflow.Run(context.Background(), domain.RunArgs{
		CheckArgs: domain.CheckArgs{Paths: f.paths(), Threads: 1},
		Reports:   f.reports,
		Write:     true,
	}))

	assert.Equal(t, getter+
		"/* mock it */\n"+
		"_getJestObj().mock('m');\n"+
		"// test file\n"+
		"const a = 1; // one\n", f.read(t, "a.test.js"))
}

func TestWorkflow_Run_DryRunDiff(t *testing.T) {
	f := newWorkflowFixture(t, map[string]string{"a.test.js": needsHoisting})
	ctx := context.Background()

	args := domain.RunArgs{
		CheckArgs: domain.CheckArgs{Paths: f.paths(), Diff: true},
		Reports:   f.reports,
		UseCache:  true,
	}

	require.NoError(t, f.workflow.Run(ctx, args))

	assert.Equal(t, needsHoisting, f.read(t, "a.test.js"))

	out := f.output.String()
	assert.Contains(t, out, "+_getJestObj().mock(\"m\");")
	assert.Contains(t, out, "-jest.mock(\"m\");")
	assert.NotContains(t, out, " written")

	reports, err := f.store.LoadReports(ctx, f.reports)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.False(t, reports[0].Written)
	assert.NotEmpty(t, reports[0].Diff)

	t.Run("dry runs are never cached", func(t *testing.T) {
		f.output.Reset()

		require.NoError(t, f.workflow.Run(ctx, args))
		assert.Contains(t, f.output.String(), "Hoisting 1 file(s) with 1 worker(s)")
	})
}

func TestWorkflow_Run_Rejected(t *testing.T) {
	f := newWorkflowFixture(t, map[string]string{
		"bad.test.js":  outOfScope,
		"good.test.js": needsHoisting,
	})

	err := f.workflow.Run(context.Background(), domain.RunArgs{
		CheckArgs: domain.CheckArgs{Paths: f.paths()},
		Write:     true,
	})
	require.ErrorIs(t, err, domain.ErrRejected)
	assert.Contains(t, err.Error(), "1 of 2 file(s)")

	assert.Equal(t, outOfScope, f.read(t, "bad.test.js"))
	assert.Equal(t, hoisted, f.read(t, "good.test.js"))

	out := f.output.String()
	assert.Contains(t, out, "OutOfScopeReference at 2:22")
	assert.Contains(t, out, "Invalid variable access: value")

	_, statErr := os.Stat(string(f.reports))
	assert.ErrorIs(t, statErr, os.ErrNotExist, "no reports directory without --reports")
}

func TestWorkflow_Run_Sharded(t *testing.T) {
	f := newWorkflowFixture(t, map[string]string{
		"a.test.js": plainTest,
		"b.test.js": plainTest,
		"c.test.js": plainTest,
	})
	ctx := context.Background()

	for index := range 2 {
		require.NoError(t, f.workflow.Run(ctx, domain.RunArgs{
			CheckArgs:       domain.CheckArgs{Paths: f.paths()},
			Reports:         f.reports,
			ShardIndex:      index,
			TotalShardCount: 2,
		}))
	}

	assert.Contains(t, f.output.String(), "(Shard 1/2)")

	first, err := f.store.LoadReports(ctx, adapter.ShardDir(f.reports, 0))
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := f.store.LoadReports(ctx, adapter.ShardDir(f.reports, 1))
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "b.test.js", filepath.Base(second[0].Source.Key()))

	require.NoError(t, f.workflow.Merge(ctx, domain.MergeArgs{Reports: f.reports}))

	merged, err := f.store.LoadReports(ctx, f.reports)
	require.NoError(t, err)
	assert.Len(t, merged, 3)
}

func TestWorkflow_Run_MissingPath(t *testing.T) {
	f := newWorkflowFixture(t, nil)

	err := f.workflow.Run(context.Background(), domain.RunArgs{
		CheckArgs: domain.CheckArgs{Paths: []m.Path{m.Path(filepath.Join(f.root, "missing"))}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collect sources")
}

func TestWorkflow_Check(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{name: "clean tree", files: map[string]string{"a.test.js": plainTest, "b.test.js": hoisted}},
		{name: "needs hoisting", files: map[string]string{"a.test.js": needsHoisting}, wantErr: domain.ErrNeedsHoisting},
		{name: "rejected", files: map[string]string{"a.test.js": outOfScope, "b.test.js": needsHoisting}, wantErr: domain.ErrRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWorkflowFixture(t, tt.files)

			err := f.workflow.Check(context.Background(), domain.CheckArgs{Paths: f.paths(), Threads: 2})
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}

			for name, content := range tt.files {
				assert.Equal(t, content, f.read(t, name), "check never writes")
			}

			assert.Contains(t, f.output.String(), "Checking")
		})
	}
}

func TestWorkflow_View(t *testing.T) {
	f := newWorkflowFixture(t, map[string]string{"a.test.js": needsHoisting, "b.test.js": outOfScope})
	ctx := context.Background()

	err := f.workflow.Run(ctx, domain.RunArgs{
		CheckArgs: domain.CheckArgs{Paths: f.paths()},
		Reports:   f.reports,
	})
	require.ErrorIs(t, err, domain.ErrRejected)

	f.output.Reset()

	require.NoError(t, f.workflow.View(ctx, domain.ViewArgs{Reports: f.reports}))

	out := f.output.String()
	assert.Contains(t, out, "TOTAL FILES 2")
	assert.Contains(t, out, "a.test.js")
	assert.Contains(t, out, "OutOfScopeReference at 2:22")
}

func TestWorkflow_View_LoadError(t *testing.T) {
	boom := errors.New("boom")

	ui := controllermocks.NewMockUI(t)
	ui.On("Start", mock.Anything, mock.Anything).Return(nil)
	ui.On("Close", mock.Anything).Return()

	store := adaptermocks.NewMockReportStore(t)
	store.On("LoadReports", mock.Anything, m.Path("out")).Return(nil, boom)

	fs := adaptermocks.NewMockSourceFSAdapter(t)
	wf := domain.NewWorkflow(fs, store, ui, domain.NewSourceStreamer(fs), domainTransformer(t))

	err := wf.View(context.Background(), domain.ViewArgs{Reports: "out"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load reports")
}

func TestWorkflow_Merge_Error(t *testing.T) {
	boom := errors.New("boom")

	store := adaptermocks.NewMockReportStore(t)
	store.On("MergeReports", mock.Anything, m.Path("out")).Return(boom)

	fs := adaptermocks.NewMockSourceFSAdapter(t)
	wf := domain.NewWorkflow(fs, store, controllermocks.NewMockUI(t), domain.NewSourceStreamer(fs), domainTransformer(t))

	err := wf.Merge(context.Background(), domain.MergeArgs{Reports: "out"})
	require.ErrorIs(t, err, boom)
}

func TestWorkflow_Run_TransformCancelled(t *testing.T) {
	sources := sourcesNamed("a.test.js")

	ui := controllermocks.NewMockUI(t)
	ui.On("Start", mock.Anything, mock.Anything).Return(nil)
	ui.On("Close", mock.Anything).Return()
	ui.On("DisplayRunInfo", mock.Anything, controller.RunInfo{Files: 1, Threads: 1}).Return()

	fs := adaptermocks.NewMockSourceFSAdapter(t)
	fs.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(sources, nil)

	tr := domainTransformer(t)
	tr.On("Transform", mock.Anything, sources[0]).Return(m.Report{}, nil, context.Canceled)

	wf := domain.NewWorkflow(fs, adaptermocks.NewMockReportStore(t), ui, domain.NewSourceStreamer(fs), tr)

	err := wf.Run(context.Background(), domain.RunArgs{CheckArgs: domain.CheckArgs{Paths: []m.Path{"src"}}})
	require.ErrorIs(t, err, context.Canceled)
}
