package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore writes uploads to a local directory served as static files.
type DiskStore struct {
	dir      string
	baseURL  string
	maxBytes int64
}

func NewDiskStore(dir, baseURL string, maxBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: baseURL, maxBytes: maxBytes}, nil
}

var ErrTooLarge = fmt.Errorf("file exceeds upload size limit")

func (s *DiskStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (*Upload, error) {
	name := uuid.New().String() + filepath.Ext(filename)
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing file: %w", err)
	}
	if n > s.maxBytes {
		os.Remove(path)
		return nil, ErrTooLarge
	}

	return &Upload{
		URL:  s.baseURL + "/" + name,
		Kind: KindOf(contentType),
	}, nil
}
