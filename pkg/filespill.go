// Package pkg provides shared utilities for winnow.
package pkg

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// FileSpill buffers items of type T on disk. Exhaustive base sets grow
// multiplicatively with parameter count, so the pipeline spills test cases
// and raw evaluation records instead of holding every stage resident.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Range(f func(index uint64, item T) error) error
	Close() error
}

type fileSpill[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewFileSpill creates a FileSpill backed by a fresh temporary file.
func NewFileSpill[T any]() (FileSpill[T], error) {
	file, err := os.CreateTemp("", "winnow-spill-*.gob")
	if err != nil {
		slog.Error("failed to create spill file", "error", err)
		return nil, fmt.Errorf("create spill file: %w", err)
	}

	return &fileSpill[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Len returns the number of items appended so far.
func (f *fileSpill[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

// Path returns the backing file path.
func (f *fileSpill[T]) Path() string {
	return f.path
}

// Append encodes one item to the backing file.
func (f *fileSpill[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("failed to encode spill item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("encode spill item: %w", err)
	}

	f.length++

	return nil
}

// AppendBatch appends every item in order.
func (f *fileSpill[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := f.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Range decodes the spilled items in append order and calls f for each.
// A non-nil error from f stops the iteration and is returned.
func (f *fileSpill[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	length := f.length
	f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open spill file", "path", f.path, "error", err)
		return fmt.Errorf("open spill file: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close spill file", "path", f.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := uint64(0); i < length; i++ {
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode spill item", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("decode spill item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close closes and removes the backing file.
func (f *fileSpill[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}

	if err := f.file.Close(); err != nil {
		slog.Error("failed to close spill file", "path", f.path, "error", err)
		return err
	}

	f.file = nil

	if err := os.Remove(f.path); err != nil {
		slog.Warn("failed to remove spill file", "path", f.path, "error", err)
	}

	return nil
}
