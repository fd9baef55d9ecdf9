package adapter

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	m "mockhoist.dev/pkg/mockhoist/internal/model"
	"mockhoist.dev/pkg/mockhoist/pkg"
)

const (
	reportExt       = ".yaml"
	shardDirPrefix  = "shard_"
	reportNameBytes = 8
)

// ReportStore persists one report per source file in a reports directory.
type ReportStore interface {
	// SaveReports writes every report of the spill, replacing older reports
	// of the same sources.
	SaveReports(ctx context.Context, path m.Path, reports pkg.FileSpill[m.Report]) error

	// LoadReports reads the reports of a directory, sorted by source path.
	LoadReports(ctx context.Context, path m.Path) ([]m.Report, error)

	// CheckUpdates returns the sources whose stored report is missing or
	// stale, followed by the stored sources whose file no longer exists.
	CheckUpdates(ctx context.Context, path m.Path, sources []m.Source) ([]m.Source, error)

	// CleanReports removes the stored reports of sources.
	CleanReports(ctx context.Context, path m.Path, sources []m.Source) error

	// MergeReports moves the reports of every shard_* subdirectory into path
	// and removes the shard directories.
	MergeReports(ctx context.Context, path m.Path) error
}

// ShardDir returns the reports directory of one shard.
func ShardDir(path m.Path, index int) m.Path {
	return m.Path(filepath.Join(string(path), fmt.Sprintf("%s%d", shardDirPrefix, index)))
}

type reportStore struct{}

// NewReportStore returns a ReportStore writing YAML files.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (rs *reportStore) SaveReports(ctx context.Context, path m.Path, reports pkg.FileSpill[m.Report]) error {
	if err := os.MkdirAll(string(path), 0o750); err != nil {
		return fmt.Errorf("create reports directory: %w", err)
	}

	return reports.Range(func(_ uint64, report m.Report) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		return rs.writeReport(path, report)
	})
}

func (rs *reportStore) writeReport(dir m.Path, report m.Report) error {
	if report.Source.Origin == nil {
		return errors.New("report without source")
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report for %s: %w", report.Source.Key(), err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode report for %s: %w", report.Source.Key(), err)
	}

	target := reportPath(dir, report.Source)
	if err := os.WriteFile(target, buf.Bytes(), 0o600); err != nil {
		slog.Error("failed to write report", "path", target, "error", err)
		return fmt.Errorf("write report %s: %w", target, err)
	}

	slog.Debug("saved report", "source", report.Source.Key(), "path", target)

	return nil
}

func (rs *reportStore) LoadReports(ctx context.Context, path m.Path) ([]m.Report, error) {
	entries, err := os.ReadDir(string(path))
	if err != nil {
		return nil, fmt.Errorf("read reports directory: %w", err)
	}

	reports := make([]m.Report, 0, len(entries))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if entry.IsDir() || filepath.Ext(entry.Name()) != reportExt {
			continue
		}

		report, err := readReport(filepath.Join(string(path), entry.Name()))
		if err != nil {
			return nil, err
		}

		reports = append(reports, report)
	}

	slices.SortFunc(reports, func(a, b m.Report) int {
		return strings.Compare(a.Source.Key(), b.Source.Key())
	})

	return reports, nil
}

func readReport(path string) (m.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return m.Report{}, fmt.Errorf("read report %s: %w", path, err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		slog.Error("failed to decode report", "path", path, "error", err)
		return m.Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}

func (rs *reportStore) CheckUpdates(ctx context.Context, path m.Path, sources []m.Source) ([]m.Source, error) {
	if _, err := os.Stat(string(path)); errors.Is(err, os.ErrNotExist) {
		return sources, nil
	}

	stored, err := rs.LoadReports(ctx, path)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]m.Report, len(stored))
	for _, r := range stored {
		byKey[r.Source.Key()] = r
	}

	var changed []m.Source

	for _, src := range sources {
		if src.Origin == nil {
			continue
		}

		r, ok := byKey[src.Key()]
		if !ok || !upToDate(r, src) {
			changed = append(changed, src)
		}
	}

	for _, r := range stored {
		if r.Source.Origin == nil {
			continue
		}

		if _, err := os.Stat(string(r.Source.Origin.FullPath)); errors.Is(err, os.ErrNotExist) {
			changed = append(changed, r.Source)
		}
	}

	slog.Debug("checked report cache", "sources", len(sources), "changed", len(changed))

	return changed, nil
}

// upToDate reports whether re-running src cannot change r: the file hash
// matches and the file needs no rewrite, either because it had nothing to
// hoist or because the rewrite was written.
func upToDate(r m.Report, src m.Source) bool {
	if r.Source.Origin == nil || r.Source.Origin.Hash != src.Origin.Hash {
		return false
	}

	return r.Status == m.StatusUnchanged || (r.Status == m.StatusTransformed && r.Written)
}

func (rs *reportStore) CleanReports(ctx context.Context, path m.Path, sources []m.Source) error {
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		target := reportPath(path, src)
		if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove report %s: %w", target, err)
		}

		slog.Debug("removed report", "source", src.Key(), "path", target)
	}

	return nil
}

func (rs *reportStore) MergeReports(ctx context.Context, path m.Path) error {
	shards, err := filepath.Glob(filepath.Join(string(path), shardDirPrefix+"*"))
	if err != nil {
		return fmt.Errorf("list shards: %w", err)
	}

	slices.Sort(shards)

	merged := 0

	for _, shard := range shards {
		if info, err := os.Stat(shard); err != nil || !info.IsDir() {
			continue
		}

		reports, err := rs.LoadReports(ctx, m.Path(shard))
		if err != nil {
			return err
		}

		for _, report := range reports {
			if err := rs.writeReport(path, report); err != nil {
				return err
			}
		}

		if err := os.RemoveAll(shard); err != nil {
			return fmt.Errorf("remove shard %s: %w", shard, err)
		}

		merged += len(reports)
	}

	if len(shards) == 0 {
		return fmt.Errorf("no %s* directories in %s", shardDirPrefix, path)
	}

	slog.Debug("merged shard reports", "shards", len(shards), "reports", merged)

	return nil
}

func reportPath(dir m.Path, src m.Source) string {
	sum := sha256.Sum256([]byte(src.Key()))
	return filepath.Join(string(dir), fmt.Sprintf("%x%s", sum[:reportNameBytes], reportExt))
}
