package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adaptermocks "mockhoist.dev/pkg/mockhoist/internal/adapter/mocks"
	"mockhoist.dev/pkg/mockhoist/internal/domain"
	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

func sourcesNamed(names ...string) []m.Source {
	sources := make([]m.Source, 0, len(names))
	for _, name := range names {
		sources = append(sources, m.Source{Origin: &m.File{FullPath: m.Path("/src/" + name), ShortPath: m.Path(name)}})
	}

	return sources
}

func collect(ch <-chan m.Source) []m.Source {
	var out []m.Source
	for s := range ch {
		out = append(out, s)
	}

	return out
}

func TestSourceStreamer_Get(t *testing.T) {
	paths := []m.Path{"./..."}
	want := sourcesNamed("a.test.js", "b.test.js", "c.test.js")

	fs := adaptermocks.NewMockSourceFSAdapter(t)
	fs.On("Get", mock.Anything, paths, []string{"vendor"}).Return(want, nil)

	sources, errs := domain.NewSourceStreamer(fs).Get(context.Background(), paths, []string{"vendor"}, 2)

	assert.Equal(t, want, collect(sources))
	require.NoError(t, <-errs)
}

func TestSourceStreamer_Get_Error(t *testing.T) {
	boom := errors.New("boom")

	fs := adaptermocks.NewMockSourceFSAdapter(t)
	fs.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)

	sources, errs := domain.NewSourceStreamer(fs).Get(context.Background(), nil, nil, 0)

	assert.Empty(t, collect(sources))

	err := <-errs
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "discover sources")
}

func TestSourceStreamer_Get_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	fs := adaptermocks.NewMockSourceFSAdapter(t)
	fs.On("Get", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(sourcesNamed("a", "b", "c", "d"), nil)

	// nothing reads before the error arrives
	sources, errs := domain.NewSourceStreamer(fs).Get(ctx, nil, nil, 1)

	require.ErrorIs(t, <-errs, context.Canceled)
	assert.LessOrEqual(t, len(collect(sources)), 1)
}

func TestSourceStreamer_ShardSources(t *testing.T) {
	all := sourcesNamed("0", "1", "2", "3", "4", "5", "6")

	feed := func() <-chan m.Source {
		ch := make(chan m.Source, len(all))
		for _, s := range all {
			ch <- s
		}

		close(ch)

		return ch
	}

	streamer := domain.NewSourceStreamer(adaptermocks.NewMockSourceFSAdapter(t))

	tests := []struct {
		name  string
		index int
		total int
		want  []m.Source
	}{
		{name: "disabled", index: 0, total: 0, want: all},
		{name: "single shard", index: 0, total: 1, want: all},
		{name: "first of three", index: 0, total: 3, want: []m.Source{all[0], all[3], all[6]}},
		{name: "second of three", index: 1, total: 3, want: []m.Source{all[1], all[4]}},
		{name: "third of three", index: 2, total: 3, want: []m.Source{all[2], all[5]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(streamer.ShardSources(context.Background(), feed(), 2, tt.index, tt.total))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceStreamer_ShardSources_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := make(chan m.Source)
	produced := make(chan struct{})

	go func() {
		defer close(produced)
		defer close(in)

		for _, s := range sourcesNamed("a", "b", "c") {
			in <- s
		}
	}()

	streamer := domain.NewSourceStreamer(adaptermocks.NewMockSourceFSAdapter(t))
	out := streamer.ShardSources(ctx, in, 1, 0, 1)

	select {
	case <-produced:
	case <-time.After(5 * time.Second):
		t.Fatal("producer was not drained")
	}

	assert.LessOrEqual(t, len(collect(out)), 1)
}
