// Package adapter contains the infrastructure adapters of the mockhoist CLI:
// file discovery, JavaScript parsing and printing, and report persistence.
package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	m "mockhoist.dev/pkg/mockhoist/internal/model"
)

// DefaultExtensions are the file extensions scanned when none are configured.
var DefaultExtensions = []string{".js", ".mjs", ".cjs", ".jsx"}

// skippedDirs are never descended into while resolving recursive patterns.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"coverage":     true,
}

// SourceFSAdapter abstracts the filesystem operations the domain layer relies
// on, so the workflow can be tested without touching the disk.
//
//nolint:interfacebloat // one adapter for every filesystem concern
type SourceFSAdapter interface {
	// Get resolves path patterns into the test sources to transform. Exclude
	// holds regular expressions matched against each candidate path.
	Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile replaces the contents of path, keeping its permissions.
	WriteFile(path m.Path, content []byte) error

	// HashFile returns the SHA-256 of the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// SourceOption configures a LocalSourceFSAdapter.
type SourceOption func(*LocalSourceFSAdapter)

// WithExtensions restricts discovery to the given extensions.
func WithExtensions(exts ...string) SourceOption {
	return func(a *LocalSourceFSAdapter) {
		if len(exts) > 0 {
			a.extensions = normalizeExtensions(exts)
		}
	}
}

// WithTestsOnly controls whether only files following a test naming
// convention are returned for directory patterns.
func WithTestsOnly(testsOnly bool) SourceOption {
	return func(a *LocalSourceFSAdapter) {
		a.testsOnly = testsOnly
	}
}

// LocalSourceFSAdapter implements SourceFSAdapter on the local filesystem.
type LocalSourceFSAdapter struct {
	extensions []string
	testsOnly  bool
}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter. By default it
// picks test files with one of DefaultExtensions.
func NewLocalSourceFSAdapter(opts ...SourceOption) *LocalSourceFSAdapter {
	a := &LocalSourceFSAdapter{
		extensions: slices.Clone(DefaultExtensions),
		testsOnly:  true,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Get resolves Go-style patterns: `./...` scans recursively, a directory
// scans its own files and a file path selects that file. An empty list means
// the current directory, recursively. Sources are returned sorted by path
// and without duplicates.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error) {
	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	seen := make(map[string]bool)

	var sources []m.Source

	for _, pattern := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := a.resolve(ctx, string(pattern), excludes)
		if err != nil {
			return nil, err
		}

		for _, path := range found {
			if seen[path] {
				continue
			}

			seen[path] = true

			source, err := a.newSource(path)
			if err != nil {
				return nil, err
			}

			sources = append(sources, source)
		}
	}

	slices.SortFunc(sources, func(x, y m.Source) int {
		return strings.Compare(x.Key(), y.Key())
	})

	return sources, nil
}

func (a *LocalSourceFSAdapter) resolve(ctx context.Context, pattern string, excludes []*regexp.Regexp) ([]string, error) {
	root, recursive := splitPattern(pattern)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", pattern, err)
	}

	if !info.IsDir() {
		if !a.hasExtension(root) || isExcluded(root, excludes) {
			return nil, nil
		}

		return []string{filepath.Clean(root)}, nil
	}

	var found []string

	err = a.Walk(m.Path(root), recursive, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if info.IsDir() {
			if path != root && skipDir(info.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if a.accepts(path) && !isExcluded(path, excludes) {
			found = append(found, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return found, nil
}

func (a *LocalSourceFSAdapter) newSource(path string) (m.Source, error) {
	hash, err := a.HashFile(m.Path(path))
	if err != nil {
		return m.Source{}, fmt.Errorf("hash %s: %w", path, err)
	}

	short := path
	if wd, err := os.Getwd(); err == nil {
		if rel, err := a.RelPath(m.Path(wd), m.Path(path)); err == nil && !strings.HasPrefix(string(rel), "..") {
			short = string(rel)
		}
	}

	return m.Source{Origin: &m.File{
		FullPath:  m.Path(path),
		ShortPath: m.Path(short),
		Hash:      hash,
	}}, nil
}

func (a *LocalSourceFSAdapter) accepts(path string) bool {
	if !a.hasExtension(path) {
		return false
	}

	return !a.testsOnly || IsTestFile(path)
}

func (a *LocalSourceFSAdapter) hasExtension(path string) bool {
	return slices.Contains(a.extensions, strings.ToLower(filepath.Ext(path)))
}

// IsTestFile reports whether path follows a test naming convention:
// `name.test.js`, `name.spec.js`, or any file under a `__tests__` directory.
func IsTestFile(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		if part == "__tests__" {
			return true
		}
	}

	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return strings.HasSuffix(stem, ".test") || strings.HasSuffix(stem, ".spec")
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile replaces the file contents, keeping its permission bits.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(string(path)); err == nil {
		perm = info.Mode().Perm()
	}

	return os.WriteFile(string(path), content, perm)
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	baseAbs, err := filepath.Abs(string(base))
	if err != nil {
		return "", err
	}

	targetAbs, err := filepath.Abs(string(target))
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(baseAbs, targetAbs)
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// HashBytes returns the hex SHA-256 of content, matching HashFile.
func HashBytes(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

func splitPattern(pattern string) (string, bool) {
	if pattern == "" || pattern == "..." {
		return ".", true
	}

	if root, ok := strings.CutSuffix(pattern, "/..."); ok {
		if root == "" {
			root = "/"
		}

		return root, true
	}

	return pattern, false
}

func skipDir(name string) bool {
	return skippedDirs[name] || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	excludes := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}

		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}

		excludes = append(excludes, re)
	}

	return excludes, nil
}

func isExcluded(path string, excludes []*regexp.Regexp) bool {
	slashed := filepath.ToSlash(path)
	for _, re := range excludes {
		if re.MatchString(slashed) {
			return true
		}
	}

	return false
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))

	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		out = append(out, ext)
	}

	return out
}
