package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/club"
	"github.com/rs/zerolog"
)

// File stores the snapshot as an indented JSON document.
type File struct {
	path string
	log  zerolog.Logger
}

// NewFile returns a File store at path. The file is created on first save.
func NewFile(path string, log zerolog.Logger) *File {
	return &File{path: path, log: log}
}

// Load reads the snapshot, ErrNotFound if the file does not exist.
func (f *File) Load(ctx context.Context) (club.Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return club.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return club.Snapshot{}, fmt.Errorf("failed to read %q: %w", f.path, err)
	}
	s, err := club.DecodeSnapshot(bytes.NewReader(data))
	if err != nil {
		return club.Snapshot{}, fmt.Errorf("in %q: %w", f.path, err)
	}
	f.log.Debug().Str("path", f.path).Int("bytes", len(data)).Msg("snapshot loaded")
	return s, nil
}

// Save replaces the file content. The document is written to a temporary
// file in the same directory and renamed over the previous one.
func (f *File) Save(ctx context.Context, s club.Snapshot) error {
	var buf bytes.Buffer
	if err := club.EncodeSnapshot(&buf, s); err != nil {
		return err
	}
	if err := atomicWrite(f.path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %q: %w", f.path, err)
	}
	f.log.Debug().Str("path", f.path).Int("bytes", buf.Len()).Msg("snapshot saved")
	return nil
}

// Close is a no-op.
func (f *File) Close() error { return nil }

func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "tmp-*.json")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
