// Package pkg holds utilities that are independent of the mockhoist domain.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ErrSpillClosed is returned when appending to a closed spill.
var ErrSpillClosed = errors.New("spill is closed")

// FileSpill is an append-only sequence of T kept in a temporary file so that
// long runs do not hold every item in memory.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Close() error
	// Remove closes the spill and deletes its file.
	Remove() error
}

// SpillOption configures NewFileSpill.
type SpillOption func(*spillConfig)

type spillConfig struct {
	dir     string
	pattern string
}

// WithSpillDir places the spill file in dir instead of the system temp dir.
func WithSpillDir(dir string) SpillOption {
	return func(c *spillConfig) {
		c.dir = dir
	}
}

// WithSpillPattern sets the os.CreateTemp pattern of the spill file.
func WithSpillPattern(pattern string) SpillOption {
	return func(c *spillConfig) {
		c.pattern = pattern
	}
}

type gobSpill[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
	closed  bool
}

// NewFileSpill creates an empty spill for items of type T.
func NewFileSpill[T any](opts ...SpillOption) (FileSpill[T], error) {
	cfg := spillConfig{
		dir:     filepath.Join(os.TempDir(), "mockhoist-spill"),
		pattern: "spill-*.gob",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := os.MkdirAll(cfg.dir, 0o750); err != nil {
		slog.Error("failed to create spill directory", "path", cfg.dir, "error", err)
		return nil, fmt.Errorf("create spill directory: %w", err)
	}

	file, err := os.CreateTemp(cfg.dir, cfg.pattern)
	if err != nil {
		slog.Error("failed to create spill file", "path", cfg.dir, "error", err)
		return nil, fmt.Errorf("create spill file: %w", err)
	}

	slog.Debug("created spill", "path", file.Name())

	return &gobSpill[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

func (s *gobSpill[T]) Path() string {
	return s.path
}

func (s *gobSpill[T]) Len() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.length
}

func (s *gobSpill[T]) Append(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSpillClosed
	}

	if err := s.encoder.Encode(item); err != nil {
		slog.Error("failed to encode spill item", "path", s.path, "index", s.length, "error", err)
		return fmt.Errorf("encode item %d: %w", s.length, err)
	}

	s.length++

	return nil
}

func (s *gobSpill[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := s.Append(item); err != nil {
			return err
		}
	}

	return nil
}

func (s *gobSpill[T]) Get(index uint64) (T, error) {
	var found T

	err := s.Range(func(i uint64, item T) error {
		if i == index {
			found = item
			return errStopRange
		}

		return nil
	})

	switch {
	case errors.Is(err, errStopRange):
		return found, nil
	case err != nil:
		var zero T
		return zero, err
	}

	var zero T

	return zero, fmt.Errorf("index %d out of bounds (length %d)", index, s.Len())
}

var errStopRange = errors.New("stop range")

// Range decodes the items in append order. An error returned by f stops the
// iteration and is returned as is.
func (s *gobSpill[T]) Range(f func(index uint64, item T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		slog.Error("failed to open spill", "path", s.path, "error", err)
		return fmt.Errorf("open spill: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := gob.NewDecoder(file)

	for i := range s.length {
		// a fresh value per item, gob leaves absent fields untouched
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode spill item", "path", s.path, "index", i, "error", err)
			return fmt.Errorf("decode item %d: %w", i, err)
		}

		if err := f(i, item); err != nil {
			return err
		}
	}

	return nil
}

func (s *gobSpill[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	if err := s.file.Close(); err != nil {
		slog.Error("failed to close spill", "path", s.path, "error", err)
		return fmt.Errorf("close spill: %w", err)
	}

	slog.Debug("closed spill", "path", s.path, "length", s.length)

	return nil
}

func (s *gobSpill[T]) Remove() error {
	if err := s.Close(); err != nil {
		return err
	}

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove spill: %w", err)
	}

	return nil
}
