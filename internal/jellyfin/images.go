package jellyfin

import (
	"fmt"
	"net/url"
)

// ImageType is a Jellyfin image slot.
type ImageType string

const (
	ImagePrimary ImageType = "Primary"
	ImageThumb   ImageType = "Thumb"
)

// ImageURL constructs a URL for an item's image. tag is the image tag the
// server reported; it changes whenever the image does, so URLs are safe to
// cache by value.
func (c *Client) ImageURL(itemID string, imgType ImageType, tag string, maxHeight int) string {
	u := fmt.Sprintf("%s/Items/%s/Images/%s", c.serverURL, url.PathEscape(itemID), string(imgType))
	params := url.Values{}
	if maxHeight > 0 {
		params.Set("maxHeight", fmt.Sprintf("%d", maxHeight))
	}
	if tag != "" {
		params.Set("tag", tag)
	}
	params.Set("quality", "90")
	return u + "?" + params.Encode()
}
