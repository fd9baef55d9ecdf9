package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"mockhoist.dev/pkg/mockhoist/internal/adapter"
	"mockhoist.dev/pkg/mockhoist/internal/controller"
	m "mockhoist.dev/pkg/mockhoist/internal/model"
	"mockhoist.dev/pkg/mockhoist/pkg"
)

// KindWriteError marks a rewrite that could not be written back.
const KindWriteError = "WriteError"

var (
	// ErrRejected is returned when at least one file was rejected or failed.
	ErrRejected = errors.New("files were rejected or failed")
	// ErrNeedsHoisting is returned by Check when a file would be rewritten.
	ErrNeedsHoisting = errors.New("files need hoisting")
)

// CheckArgs selects the files to process.
type CheckArgs struct {
	Paths   []m.Path
	Exclude []string
	Threads int
	// Diff attaches a unified diff of every rewrite to its report.
	Diff bool
}

// RunArgs contains the arguments of a rewriting run.
type RunArgs struct {
	CheckArgs

	// Reports is the reports directory; empty disables reports and cache.
	Reports         m.Path
	UseCache        bool
	Write           bool
	ShardIndex      int
	TotalShardCount int
}

// ViewArgs contains the arguments for viewing stored reports.
type ViewArgs struct {
	Reports m.Path
}

// MergeArgs contains the arguments for merging sharded reports.
type MergeArgs struct {
	Reports m.Path
}

// Workflow is the entry point of every CLI command.
type Workflow interface {
	// Run rewrites the selected files, or reports what it would rewrite
	// when args.Write is false, and saves one report per file.
	Run(ctx context.Context, args RunArgs) error
	// Check transforms the selected files without writing anything and
	// fails when a file needs hoisting or is rejected.
	Check(ctx context.Context, args CheckArgs) error
	View(ctx context.Context, args ViewArgs) error
	Merge(ctx context.Context, args MergeArgs) error
}

type workflow struct {
	adapter.ReportStore
	adapter.SourceFSAdapter
	controller.UI
	Transformer

	streamer SourceStreamer
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	streamer SourceStreamer,
	transformer Transformer,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		Transformer:     transformer,
		streamer:        streamer,
	}
}

func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	if err := w.Start(ctx, controller.WithRunMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	threads := normalizeBufferSize(args.Threads)

	sources, err := w.collectSources(ctx, args.CheckArgs, threads, args.ShardIndex, args.TotalShardCount)
	if err != nil {
		return err
	}

	reportsPath := shardReportsPath(args)
	total := len(sources)

	if args.UseCache && reportsPath != "" {
		sources, err = w.changedSources(ctx, reportsPath, sources)
		if err != nil {
			slog.Error("Failed to check report cache", "error", err)
			return fmt.Errorf("check cache: %w", err)
		}
	}

	w.DisplayRunInfo(ctx, controller.RunInfo{
		Files:      len(sources),
		Cached:     total - len(sources),
		Threads:    threads,
		ShardIndex: args.ShardIndex,
		ShardCount: args.TotalShardCount,
	})

	reports, err := w.transformAll(ctx, sources, threads, args.Diff, args.Write)
	if err != nil {
		return err
	}

	defer func() {
		_ = reports.Remove()
	}()

	if reportsPath != "" {
		if err := w.SaveReports(ctx, reportsPath, reports); err != nil {
			slog.Error("Failed to save reports", "path", reportsPath, "error", err)
			return fmt.Errorf("save reports: %w", err)
		}
	}

	summary, err := w.summarize(ctx, reports)
	if err != nil {
		return err
	}

	if summary.Failed() {
		bad := summary.ByStatus[m.StatusRejected] + summary.ByStatus[m.StatusFailed]
		return fmt.Errorf("%d of %d file(s): %w", bad, summary.Files, ErrRejected)
	}

	return nil
}

func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	if err := w.Start(ctx, controller.WithCheckMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	threads := normalizeBufferSize(args.Threads)

	sources, err := w.collectSources(ctx, args, threads, 0, 1)
	if err != nil {
		return err
	}

	w.DisplayRunInfo(ctx, controller.RunInfo{Files: len(sources), Threads: threads, ShardCount: 1})

	reports, err := w.transformAll(ctx, sources, threads, args.Diff, false)
	if err != nil {
		return err
	}

	defer func() {
		_ = reports.Remove()
	}()

	summary, err := w.summarize(ctx, reports)
	if err != nil {
		return err
	}

	if summary.Failed() {
		bad := summary.ByStatus[m.StatusRejected] + summary.ByStatus[m.StatusFailed]
		return fmt.Errorf("%d of %d file(s): %w", bad, summary.Files, ErrRejected)
	}

	if n := summary.ByStatus[m.StatusTransformed]; n > 0 {
		return fmt.Errorf("%d of %d file(s): %w", n, summary.Files, ErrNeedsHoisting)
	}

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	reports, err := w.LoadReports(ctx, args.Reports)
	if err != nil {
		slog.Error("Failed to load reports", "path", args.Reports, "error", err)
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.DisplayReports(ctx, reports); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)

	return nil
}

func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	if err := w.MergeReports(ctx, args.Reports); err != nil {
		slog.Error("Failed to merge reports", "path", args.Reports, "error", err)
		return fmt.Errorf("merge reports: %w", err)
	}

	return nil
}

// shardReportsPath gives every shard of a sharded run its own directory,
// to be combined by Merge.
func shardReportsPath(args RunArgs) m.Path {
	if args.Reports == "" || args.TotalShardCount <= 1 {
		return args.Reports
	}

	return adapter.ShardDir(args.Reports, args.ShardIndex)
}

func (w *workflow) collectSources(ctx context.Context, args CheckArgs, threads, shardIndex, totalShardCount int) ([]m.Source, error) {
	sourcesChannel, errorChannel := w.streamer.Get(ctx, args.Paths, args.Exclude, threads)
	shardChannel := w.streamer.ShardSources(ctx, sourcesChannel, threads, shardIndex, totalShardCount)

	var sources []m.Source
	for source := range shardChannel {
		sources = append(sources, source)
	}

	if err := <-errorChannel; err != nil {
		slog.Error("Failed to collect sources", "error", err)
		return nil, fmt.Errorf("collect sources: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return sources, nil
}

// changedSources drops the sources whose stored report is up to date and
// removes the reports of deleted files.
func (w *workflow) changedSources(ctx context.Context, reports m.Path, sources []m.Source) ([]m.Source, error) {
	changed, err := w.CheckUpdates(ctx, reports, sources)
	if err != nil {
		return nil, err
	}

	currentByPath := buildSourcePathMap(sources)
	deleted, changedExisting := separateDeletedAndChanged(changed, currentByPath)

	if len(deleted) > 0 {
		if err := w.CleanReports(ctx, reports, deleted); err != nil {
			return nil, err
		}
	}

	return changedExisting, nil
}

func buildSourcePathMap(sources []m.Source) map[string]m.Source {
	currentByPath := map[string]m.Source{}

	for _, src := range sources {
		if src.Origin != nil && src.Origin.FullPath != "" {
			currentByPath[src.Key()] = src
		}
	}

	return currentByPath
}

func separateDeletedAndChanged(changed []m.Source, currentByPath map[string]m.Source) ([]m.Source, []m.Source) {
	deleted := make([]m.Source, 0)
	changedExisting := make([]m.Source, 0)

	for _, src := range changed {
		if src.Origin == nil || src.Origin.FullPath == "" {
			continue
		}

		if current, ok := currentByPath[src.Key()]; ok {
			changedExisting = append(changedExisting, current)
		} else {
			deleted = append(deleted, src)
		}
	}

	return deleted, changedExisting
}

// transformAll processes sources on up to threads workers and returns the
// closed spill of their reports.
func (w *workflow) transformAll(ctx context.Context, sources []m.Source, threads int, diff, write bool) (pkg.FileSpill[m.Report], error) {
	reports, err := pkg.NewFileSpill[m.Report]()
	if err != nil {
		return nil, fmt.Errorf("create report spill: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for _, source := range sources {
		group.Go(func() error {
			report, err := w.process(groupCtx, source, diff, write)
			if err != nil {
				return err
			}

			if err := reports.Append(report); err != nil {
				return fmt.Errorf("spill report: %w", err)
			}

			w.DisplayReport(groupCtx, report)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		_ = reports.Remove()
		slog.Error("Failed to transform sources", "error", err)

		return nil, fmt.Errorf("transform sources: %w", err)
	}

	if err := reports.Close(); err != nil {
		_ = reports.Remove()
		return nil, err
	}

	return reports, nil
}

func (w *workflow) process(ctx context.Context, source m.Source, diff, write bool) (m.Report, error) {
	report, out, err := w.Transform(ctx, source)
	if err != nil {
		return m.Report{}, err
	}

	if out == nil {
		return report, nil
	}

	path := source.Origin.FullPath

	if diff {
		if err := w.attachDiff(&report, out); err != nil {
			slog.Error("Failed to diff source", "path", path, "error", err)
		}
	}

	if !write {
		return report, nil
	}

	if err := w.WriteFile(path, out); err != nil {
		slog.Error("Failed to write source", "path", path, "error", err)

		report.Status = m.StatusFailed
		report.Diagnostic = &m.Diagnostic{Kind: KindWriteError, Message: err.Error()}

		return report, nil
	}

	// the cache compares against the contents now on disk
	origin := *source.Origin
	origin.Hash = adapter.HashBytes(out)
	report.Source.Origin = &origin
	report.Written = true

	slog.Debug("Wrote source", "path", path)

	return report, nil
}

func (w *workflow) attachDiff(report *m.Report, out []byte) error {
	original, err := w.ReadFile(report.Source.Origin.FullPath)
	if err != nil {
		return err
	}

	name := string(report.Source.Origin.ShortPath)
	if name == "" {
		name = string(report.Source.Origin.FullPath)
	}

	text, err := unifiedDiff(name, original, out)
	if err != nil {
		return err
	}

	report.Diff = text

	return nil
}

func (w *workflow) summarize(ctx context.Context, reports pkg.FileSpill[m.Report]) (m.Summary, error) {
	summary, err := summaryFromReports(reports)
	if err != nil {
		slog.Error("Failed to summarize reports", "error", err)
		return m.Summary{}, fmt.Errorf("summarize reports: %w", err)
	}

	w.DisplaySummary(ctx, summary)
	w.Wait(ctx)

	return summary, nil
}
