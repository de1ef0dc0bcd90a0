package jellyfin

import (
	"context"
	"fmt"
	"strconv"

	jellyfin "github.com/sj14/jellyfin-go/api"

	"github.com/depeter/photostrip/internal/geometry"
	"github.com/depeter/photostrip/internal/photos"
)

var _ photos.Source = (*Client)(nil)

func itemKinds(kind photos.AssetKind) []jellyfin.BaseItemKind {
	switch kind {
	case photos.KindVideos:
		return []jellyfin.BaseItemKind{jellyfin.BASEITEMKIND_VIDEO}
	case photos.KindAll:
		return []jellyfin.BaseItemKind{jellyfin.BASEITEMKIND_PHOTO, jellyfin.BASEITEMKIND_VIDEO}
	}
	return []jellyfin.BaseItemKind{jellyfin.BASEITEMKIND_PHOTO}
}

// Photos returns up to first items of the given kind, newest first. The
// cursor is the decimal start index of the next page.
func (c *Client) Photos(ctx context.Context, kind photos.AssetKind, first int, after string) (photos.Page, error) {
	start := 0
	if after != "" {
		n, err := strconv.Atoi(after)
		if err != nil || n < 0 {
			return photos.Page{}, fmt.Errorf("invalid cursor %q", after)
		}
		start = n
	}

	result, resp, err := c.api.ItemsAPI.GetItems(ctx).
		UserId(c.userID).
		StartIndex(int32(start)).
		Limit(int32(first)).
		Recursive(true).
		IncludeItemTypes(itemKinds(kind)).
		Fields([]jellyfin.ItemFields{jellyfin.ITEMFIELDS_PRIMARY_IMAGE_ASPECT_RATIO}).
		EnableImageTypes([]jellyfin.ImageType{jellyfin.IMAGETYPE_PRIMARY}).
		ImageTypeLimit(1).
		SortBy([]jellyfin.ItemSortBy{jellyfin.ITEMSORTBY_DATE_CREATED}).
		SortOrder([]jellyfin.SortOrder{jellyfin.SORTORDER_DESCENDING}).
		Execute()
	if err != nil {
		return photos.Page{}, fmt.Errorf("get photos: %w (status: %s)", err, respStatus(resp))
	}

	images := make([]geometry.Image, 0, len(result.Items))
	for _, item := range result.Items {
		if img, ok := c.convertItem(&item); ok {
			images = append(images, img)
		}
	}

	end := start + len(result.Items)
	total := int(result.GetTotalRecordCount())
	return photos.Page{
		Images:      images,
		EndCursor:   strconv.Itoa(end),
		HasNextPage: len(result.Items) > 0 && end < total,
	}, nil
}

// convertItem maps an item with a primary image to a strip image. Items
// without known dimensions fall back to the primary image aspect ratio, then
// to a square.
func (c *Client) convertItem(item *jellyfin.BaseItemDto) (geometry.Image, bool) {
	tag, ok := item.ImageTags[string(ImagePrimary)]
	if !ok || item.GetId() == "" {
		return geometry.Image{}, false
	}

	w, h := float64(item.GetWidth()), float64(item.GetHeight())
	if w <= 0 || h <= 0 {
		w, h = 1000, 1000
		if ar := item.GetPrimaryImageAspectRatio(); ar > 0 {
			w = ar * h
		}
	}
	return geometry.Image{
		URI:    c.ImageURL(item.GetId(), ImagePrimary, tag, c.ThumbHeight),
		Width:  w,
		Height: h,
	}, true
}
