// Package media accepts uploaded files and hands back a durable URL plus
// a coarse kind. Transcoding and duration enforcement belong to the
// provider behind the Store, not to this package.
package media

import (
	"context"
	"io"
	"strings"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Upload is the result of a successful ingestion.
type Upload struct {
	URL  string `json:"url"`
	Kind Kind   `json:"kind"`
}

type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (*Upload, error)
}

// KindOf maps a MIME type to the coarse media kind.
func KindOf(contentType string) Kind {
	if strings.HasPrefix(contentType, "video") {
		return KindVideo
	}
	return KindImage
}
