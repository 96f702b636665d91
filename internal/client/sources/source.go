// Package sources turns image arguments typed at the prompt into readable
// upload sources. Local paths and s3://bucket/key objects are supported.
package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotImage = errors.New("not an image file")
	ErrIsDir    = errors.New("path is a directory")
)

// Source is one image to attach.
type Source interface {
	// Name is the base file name sent with the upload.
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// IsImageName reports whether name has an image/* extension.
func IsImageName(name string) bool {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	return strings.HasPrefix(ct, "image/")
}

// FileSource reads from the local filesystem.
type FileSource struct {
	Path string
}

func (f FileSource) Name() string {
	return filepath.Base(f.Path)
}

func (f FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Path, err)
	}
	return file, nil
}

// ReaderSource wraps in-memory content, mainly for tests and piping.
type ReaderSource struct {
	FileName string
	Content  io.Reader
}

func (r ReaderSource) Name() string {
	return r.FileName
}

func (r ReaderSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return io.NopCloser(r.Content), nil
}
