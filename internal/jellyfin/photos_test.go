package jellyfin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depeter/photostrip/internal/photos"
)

const itemsPage = `{
  "Items": [
    {"Id": "p1", "Name": "beach", "Type": "Photo", "Width": 4000, "Height": 3000, "ImageTags": {"Primary": "t1"}},
    {"Id": "p2", "Name": "no image", "Type": "Photo"},
    {"Id": "p3", "Name": "portrait", "Type": "Photo", "PrimaryImageAspectRatio": 0.5, "ImageTags": {"Primary": "t3"}}
  ],
  "TotalRecordCount": 5,
  "StartIndex": 0
}`

func TestPhotos(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(itemsPage))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("tok", "u1")
	c.ThumbHeight = 600

	page, err := c.Photos(context.Background(), photos.KindPhotos, 3, "")
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/Items", got.URL.Path)
	assert.Equal(t, "tok", got.Header.Get("X-Emby-Token"))
	assert.Contains(t, got.Header.Get("X-Emby-Authorization"), `Client="PhotoStrip"`)
	assert.Contains(t, got.URL.RawQuery, "Photo")
	assert.NotContains(t, got.URL.RawQuery, "Video")

	require.Len(t, page.Images, 2, "items without a primary image are skipped")
	assert.Equal(t, 4000.0, page.Images[0].Width)
	assert.Equal(t, 3000.0, page.Images[0].Height)
	assert.InDelta(t, 0.5, page.Images[1].Width/page.Images[1].Height, 1e-9)

	u, err := url.Parse(page.Images[0].URI)
	require.NoError(t, err)
	assert.Equal(t, "/Items/p1/Images/Primary", u.Path)
	assert.Equal(t, "600", u.Query().Get("maxHeight"))
	assert.Equal(t, "t1", u.Query().Get("tag"))

	assert.Equal(t, "3", page.EndCursor, "cursor counts skipped items")
	assert.True(t, page.HasNextPage)
}

func TestPhotos_LastPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(itemsPage))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	page, err := c.Photos(context.Background(), photos.KindAll, 3, "2")
	require.NoError(t, err)
	assert.Equal(t, "5", page.EndCursor)
	assert.False(t, page.HasNextPage)

	_, err = c.Photos(context.Background(), photos.KindAll, 3, "next")
	assert.Error(t, err)
}

func TestPhotos_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Photos(context.Background(), photos.KindPhotos, 3, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://media.example", normalizeURL(" media.example/ "))
	assert.Equal(t, "http://10.0.0.2:8096", normalizeURL("http://10.0.0.2:8096"))
}

func TestImageURL(t *testing.T) {
	c := NewClient("http://jf")
	assert.Equal(t, "http://jf/Items/a%20b/Images/Primary?quality=90", c.ImageURL("a b", ImagePrimary, "", 0))
}
