package sources

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Resolver maps user-typed arguments to sources. The S3 client is built on
// first use.
type Resolver struct {
	s3cfg S3Config

	mu     sync.Mutex
	client ObjectGetter
}

func NewResolver(c S3Config) *Resolver {
	return &Resolver{s3cfg: c}
}

// Resolve validates spec and returns its source without reading content.
func (r *Resolver) Resolve(ctx context.Context, spec string) (Source, error) {
	if strings.HasPrefix(spec, s3Scheme) {
		bucket, key, err := parseS3URL(spec)
		if err != nil {
			return nil, err
		}
		if !IsImageName(key) {
			return nil, fmt.Errorf("%w: %s", ErrNotImage, spec)
		}
		client, err := r.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		return S3Source{Bucket: bucket, Key: key, client: client}, nil
	}

	info, err := os.Stat(spec)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", spec, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDir, spec)
	}
	if !IsImageName(spec) {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, spec)
	}
	return FileSource{Path: spec}, nil
}

// ResolveAll resolves every spec or fails on the first bad one.
func (r *Resolver) ResolveAll(ctx context.Context, specs []string) ([]Source, error) {
	out := make([]Source, 0, len(specs))
	for _, s := range specs {
		src, err := r.Resolve(ctx, s)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

func (r *Resolver) s3Client(ctx context.Context) (ObjectGetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}
	c, err := newS3Client(ctx, r.s3cfg)
	if err != nil {
		return nil, err
	}
	r.client = c
	return c, nil
}
