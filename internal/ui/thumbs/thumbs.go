// Package thumbs tracks which thumbnails a view has requested and uploaded.
package thumbs

import "image"

// Loader is the part of the thumbnail cache a Set needs.
type Loader interface {
	LoadAsync(url string, callback func(image.Image))
	Failed(url string) error
	Forget(url string)
}

type loaded struct {
	uri string
	img image.Image
}

type entry[T any] struct {
	tex   T
	ready bool
}

// Set owns one uploaded texture per requested URI. Loads finish on other
// goroutines; Drain hands them to upload on the caller's goroutine.
type Set[T any] struct {
	loader  Loader
	upload  func(image.Image) T
	release func(T)

	entries map[string]*entry[T]
	ready   chan loaded
}

// New creates a Set. release may be nil.
func New[T any](loader Loader, upload func(image.Image) T, release func(T)) *Set[T] {
	return &Set[T]{
		loader:  loader,
		upload:  upload,
		release: release,
		entries: make(map[string]*entry[T]),
		ready:   make(chan loaded, 64),
	}
}

// Drain uploads every load that finished since the last call. Loads for
// URIs evicted in the meantime are dropped.
func (s *Set[T]) Drain() {
	for {
		select {
		case l := <-s.ready:
			e, ok := s.entries[l.uri]
			if !ok {
				s.loader.Forget(l.uri)
				continue
			}
			if e.ready {
				continue
			}
			e.tex = s.upload(l.img)
			e.ready = true
		default:
			return
		}
	}
}

// Request starts loading uri unless it is already requested.
func (s *Set[T]) Request(uri string) {
	if _, ok := s.entries[uri]; ok {
		return
	}
	s.entries[uri] = &entry[T]{}
	s.loader.LoadAsync(uri, func(img image.Image) {
		// memory hits call back on this goroutine
		go func() { s.ready <- loaded{uri: uri, img: img} }()
	})
}

// Get returns the texture for uri once it is uploaded.
func (s *Set[T]) Get(uri string) (T, bool) {
	e, ok := s.entries[uri]
	if !ok || !e.ready {
		var zero T
		return zero, false
	}
	return e.tex, true
}

// Evict releases the texture for uri and drops the decoded image from the
// loader's memory. A later Request loads it again.
func (s *Set[T]) Evict(uri string) {
	e, ok := s.entries[uri]
	if !ok {
		return
	}
	delete(s.entries, uri)
	if e.ready {
		if s.release != nil {
			s.release(e.tex)
		}
		s.loader.Forget(uri)
	}
}

// Retry forgets requests whose load failed so the next Request tries again.
// It returns how many were dropped.
func (s *Set[T]) Retry() int {
	n := 0
	for uri, e := range s.entries {
		if !e.ready && s.loader.Failed(uri) != nil {
			delete(s.entries, uri)
			n++
		}
	}
	return n
}

// Len is the number of requested URIs, loaded or not.
func (s *Set[T]) Len() int { return len(s.entries) }
