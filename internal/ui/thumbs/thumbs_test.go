package thumbs

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	mu        sync.Mutex
	calls     map[string]int
	callbacks map[string]func(image.Image)
	failed    map[string]error
	forgotten []string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		calls:     make(map[string]int),
		callbacks: make(map[string]func(image.Image)),
		failed:    make(map[string]error),
	}
}

func (f *fakeLoader) LoadAsync(url string, cb func(image.Image)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	f.callbacks[url] = cb
}

func (f *fakeLoader) Failed(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failed[url]
}

func (f *fakeLoader) Forget(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forgotten = append(f.forgotten, url)
}

func (f *fakeLoader) finish(url string, w int) {
	f.mu.Lock()
	cb := f.callbacks[url]
	f.mu.Unlock()
	cb(image.NewRGBA(image.Rect(0, 0, w, 1)))
}

func (f *fakeLoader) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

// newSet uploads an image as its width and records releases.
func newSet(l Loader) (*Set[int], *[]int) {
	var released []int
	s := New(l, func(img image.Image) int { return img.Bounds().Dx() }, func(tex int) {
		released = append(released, tex)
	})
	return s, &released
}

func waitReady(t *testing.T, s *Set[int], uri string) int {
	t.Helper()
	var tex int
	require.Eventually(t, func() bool {
		s.Drain()
		var ok bool
		tex, ok = s.Get(uri)
		return ok
	}, time.Second, time.Millisecond)
	return tex
}

func TestRequest_LoadsOnce(t *testing.T) {
	l := newFakeLoader()
	s, _ := newSet(l)

	s.Request("a")
	s.Request("a")
	assert.Equal(t, 1, l.callCount("a"))

	_, ok := s.Get("a")
	assert.False(t, ok, "not uploaded before the load finishes")

	l.finish("a", 7)
	assert.Equal(t, 7, waitReady(t, s, "a"))
	assert.Equal(t, 1, s.Len())
}

func TestEvict_ReleasesAndReloads(t *testing.T) {
	l := newFakeLoader()
	s, released := newSet(l)

	s.Request("a")
	l.finish("a", 3)
	waitReady(t, s, "a")

	s.Evict("a")
	assert.Equal(t, []int{3}, *released)
	assert.Equal(t, []string{"a"}, l.forgotten)
	assert.Equal(t, 0, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Request("a")
	assert.Equal(t, 2, l.callCount("a"))

	s.Evict("missing")
	assert.Len(t, *released, 1)
}

func TestEvict_LateLoadDropped(t *testing.T) {
	l := newFakeLoader()
	s, released := newSet(l)

	s.Request("a")
	s.Evict("a")
	assert.Empty(t, *released, "nothing uploaded yet")

	l.finish("a", 5)
	require.Eventually(t, func() bool {
		s.Drain()
		l.mu.Lock()
		defer l.mu.Unlock()
		return len(l.forgotten) == 1
	}, time.Second, time.Millisecond)

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestRetry_DropsOnlyFailed(t *testing.T) {
	l := newFakeLoader()
	s, _ := newSet(l)

	s.Request("ok")
	s.Request("pending")
	s.Request("broken")
	l.finish("ok", 1)
	waitReady(t, s, "ok")

	l.mu.Lock()
	l.failed["broken"] = errors.New("timeout")
	l.mu.Unlock()

	assert.Equal(t, 1, s.Retry())
	assert.Equal(t, 2, s.Len())

	s.Request("broken")
	assert.Equal(t, 2, l.callCount("broken"))
	s.Request("pending")
	assert.Equal(t, 1, l.callCount("pending"))
}
