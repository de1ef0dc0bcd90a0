// Package photos pages through a photo library. A Service keeps the cursor
// between calls so the strip only has to ask for "more" when it nears the end.
package photos

import (
	"context"
	"fmt"
	"sync"

	"github.com/depeter/photostrip/internal/geometry"
)

// DefaultPageSize is used when FetchPhotos is given a non-positive page size.
const DefaultPageSize = 40

// AssetKind filters the library by media type.
type AssetKind string

const (
	KindPhotos AssetKind = "photos"
	KindVideos AssetKind = "videos"
	KindAll    AssetKind = "all"
)

// ParseAssetKind validates a config value.
func ParseAssetKind(s string) (AssetKind, error) {
	switch k := AssetKind(s); k {
	case KindPhotos, KindVideos, KindAll:
		return k, nil
	case "":
		return KindPhotos, nil
	}
	return "", fmt.Errorf("unknown asset kind %q", s)
}

// Page is one slice of the library.
type Page struct {
	Images      []geometry.Image
	EndCursor   string
	HasNextPage bool
}

// Source is a library backend. after is the EndCursor of the previous page,
// or empty for the first page.
type Source interface {
	Photos(ctx context.Context, kind AssetKind, first int, after string) (Page, error)
}

// Service tracks pagination state for one Source. It is safe for concurrent
// use; at most one request is in flight at a time.
type Service struct {
	src Source

	mu       sync.Mutex
	kind     AssetKind
	pageSize int
	cursor   string
	hasNext  bool
	inflight bool
	gen      int
}

func NewService(src Source) *Service {
	return &Service{src: src}
}

// FetchPhotos starts over from after and returns the first page. Results of a
// Next still running from before the reset are discarded.
func (s *Service) FetchPhotos(ctx context.Context, kind AssetKind, pageSize int, after string) ([]geometry.Image, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	s.mu.Lock()
	s.gen++
	s.kind = kind
	s.pageSize = pageSize
	s.cursor = after
	s.hasNext = true
	s.inflight = true
	gen := s.gen
	s.mu.Unlock()

	return s.load(ctx, gen, kind, pageSize, after)
}

// Next returns the page after the last one loaded. It returns an empty slice
// once the library is exhausted, before FetchPhotos has been called, and
// while another request is still running.
func (s *Service) Next(ctx context.Context) ([]geometry.Image, error) {
	s.mu.Lock()
	if s.gen == 0 || !s.hasNext || s.inflight {
		s.mu.Unlock()
		return nil, nil
	}
	s.inflight = true
	gen, kind, size, after := s.gen, s.kind, s.pageSize, s.cursor
	s.mu.Unlock()

	return s.load(ctx, gen, kind, size, after)
}

// HasNextPage reports whether Next may return more images.
func (s *Service) HasNextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen > 0 && s.hasNext
}

func (s *Service) load(ctx context.Context, gen int, kind AssetKind, size int, after string) ([]geometry.Image, error) {
	page, err := s.src.Photos(ctx, kind, size, after)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil, nil
	}
	s.inflight = false
	if err != nil {
		return nil, fmt.Errorf("fetch photos after %q: %w", after, err)
	}
	s.cursor = page.EndCursor
	s.hasNext = page.HasNextPage
	return page.Images, nil
}
