package domain

import (
	"context"
	"fmt"
	"log/slog"

	"mockhoist.dev/pkg/mockhoist/internal/adapter"
	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

// SourceStreamer streams discovered sources to the transform workers.
type SourceStreamer interface {
	Get(ctx context.Context, paths []m.Path, exclude []string, threads int) (<-chan m.Source, <-chan error)
	ShardSources(ctx context.Context, sources <-chan m.Source, threads int, shardIndex, totalShardCount int) <-chan m.Source
}

type sourceStreamer struct {
	adapter.SourceFSAdapter
}

// NewSourceStreamer creates a new SourceStreamer backed by fsAdapter.
func NewSourceStreamer(fsAdapter adapter.SourceFSAdapter) SourceStreamer {
	return &sourceStreamer{SourceFSAdapter: fsAdapter}
}

// Get streams the sources matching paths in path order. Both channels close
// when done; at most one error is sent.
func (ss *sourceStreamer) Get(ctx context.Context, paths []m.Path, exclude []string, threads int) (<-chan m.Source, <-chan error) {
	slog.Debug("Starting source streaming", "paths", len(paths), "threads", threads)

	ch := make(chan m.Source, normalizeBufferSize(threads))
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		defer close(ch)

		sources, err := ss.SourceFSAdapter.Get(ctx, paths, exclude...)
		if err != nil {
			slog.Error("Failed to discover sources", "error", err)
			errCh <- fmt.Errorf("discover sources: %w", err)

			return
		}

		slog.Debug("Discovered sources", "count", len(sources))

		for _, source := range sources {
			select {
			case <-ctx.Done():
				slog.Debug("Source streaming cancelled")
				errCh <- ctx.Err()

				return
			case ch <- source:
			}
		}
	}()

	return ch, errCh
}

// normalizeBufferSize ensures the buffer size is at least 1.
func normalizeBufferSize(threads int) int {
	if threads <= 0 {
		return 1
	}

	return threads
}

// ShardSources keeps every totalShardCount-th source starting at
// shardIndex. A total of one or less passes everything through.
func (ss *sourceStreamer) ShardSources(ctx context.Context, sources <-chan m.Source, threads int, shardIndex, totalShardCount int) <-chan m.Source {
	ch := make(chan m.Source, normalizeBufferSize(threads))

	go func() {
		defer close(ch)

		if totalShardCount <= 1 {
			slog.Debug("Sharding disabled, passing through all sources")
		} else {
			slog.Debug("Starting source sharding", "shardIndex", shardIndex, "totalShardCount", totalShardCount)
		}

		index := 0

		for source := range sources {
			if totalShardCount > 1 && index%totalShardCount != shardIndex {
				index++
				continue
			}

			index++

			select {
			case <-ctx.Done():
				slog.Debug("Source sharding cancelled")
				drain(sources)

				return
			case ch <- source:
			}
		}
	}()

	return ch
}

// drain empties in so that its producer can finish.
func drain[T any](in <-chan T) {
	for range in {
	}
}
