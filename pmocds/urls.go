package pmocds

import (
	"net/url"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/dlna"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmocover"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmostore"
)

// serverURLs builds the HTTP URLs advertised in DIDL resources.
type serverURLs struct {
	base string
}

// NewURLProvider returns a provider rooted at the server base URL.
func NewURLProvider(base string) pmostore.URLProvider {
	return serverURLs{base: base}
}

func (u serverURLs) MediaURL(i *pmostore.Item) string {
	return u.base + "/media/" + url.PathEscape(i.ID)
}

func (u serverURLs) ImageURL(i *pmostore.Item, profile dlna.ImageProfile) string {
	source := i.FileName
	if source == "" {
		return ""
	}
	return u.base + "/thumbs/images/" + pmocover.KeyFor(source) + "/" + profile.String()
}

func (u serverURLs) ThumbnailURL(r pmostore.Resource, profile dlna.ImageProfile) string {
	source := thumbSource(r)
	if source == "" {
		return ""
	}
	return u.base + "/thumbs/images/" + pmocover.KeyFor(source) + "/" + profile.String()
}

func (u serverURLs) SubtitleURL(i *pmostore.Item) string {
	format := "srt"
	if i.Subtitle != nil && i.Subtitle.Format != "" {
		format = i.Subtitle.Format
	}
	return u.base + "/subs/" + url.PathEscape(i.ID) + "." + format
}

// thumbSource names the image the cover cache would hold for a
// resource: the media file itself for items, a folder key otherwise.
// Resources that cannot have a thumbnail yield "".
func thumbSource(r pmostore.Resource) string {
	switch v := r.(type) {
	case *pmostore.Item:
		if v.ThumbnailImageInfo() == nil && (v.Media == nil || v.Media.Image == nil) {
			return ""
		}
		return v.FileName
	case *pmostore.Container:
		if v.ThumbnailImageInfo() == nil {
			return ""
		}
		return "folder:" + v.ID
	}
	return ""
}
