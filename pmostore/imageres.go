package pmostore

import (
	"fmt"
	"sort"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/dlna"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmomedia"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmorender"
)

// imageResElement is one candidate image rendition before it becomes a
// didl.Res: a DLNA image profile plus the source it would be produced
// from.
type imageResElement struct {
	profile dlna.ImageProfile
	info    *pmomedia.ImageInfo
	// thumbnail selects the cached thumbnail as source instead of the
	// full image.
	thumbnail bool

	hypothetical dlna.Hypothetical
}

func newImageResElement(profile dlna.ImageProfile, info *pmomedia.ImageInfo, thumbnail bool) imageResElement {
	return imageResElement{
		profile:      profile,
		info:         info,
		thumbnail:    thumbnail,
		hypothetical: profile.CalculateHypothetical(info),
	}
}

// profilePriority orders image renditions the way renderers expect to
// find them: the DLNA mandated JPEG_TN first, exotic profiles last.
func profilePriority(p dlna.ImageProfile) int {
	if p.IsJPEGResHV() {
		return 4
	}
	switch p.String() {
	case "JPEG_TN":
		return 0
	case "JPEG_SM":
		return 1
	case "PNG_TN":
		return 2
	case "PNG_LRG":
		return 3
	case "GIF_LRG":
		return 5
	case "JPEG_MED":
		return 6
	default: // JPEG_LRG
		return 7
	}
}

func sortImageResElements(elements []imageResElement) {
	sort.SliceStable(elements, func(i, j int) bool {
		return profilePriority(elements[i].profile) < profilePriority(elements[j].profile)
	})
}

// albumArtProfiles is the fixed allow-list of profiles ever advertised
// through upnp:albumArtURI.
var albumArtProfiles = map[string]bool{
	"GIF_LRG": true,
	"JPEG_SM": true,
	"JPEG_TN": true,
	"PNG_LRG": true,
	"PNG_TN":  true,
}

func allowedAsAlbumArt(renderer *pmorender.Profile, profile dlna.ImageProfile) bool {
	if !albumArtProfiles[profile.String()] {
		return false
	}
	if renderer != nil && renderer.AlbumArtProfile != "" && renderer.AlbumArtProfile != profile.String() {
		return false
	}
	return true
}

// imageElements builds the rendition list for an image item. Any size
// at or below the cached thumbnail is produced from the thumbnail; the
// bigger ones decode the image itself.
func imageElements(renderer *pmorender.Profile, image, thumb *pmomedia.ImageInfo) []imageResElement {
	supported := func(name string) bool { return renderer.IsImageProfileSupported(name) }

	tnSource := thumb
	if tnSource == nil {
		tnSource = image
	}

	var elements []imageResElement
	// JPEG_TN is mandated by DLNA and always offered.
	elements = append(elements, newImageResElement(dlna.JPEGTn, tnSource, true))
	if supported("PNG_TN") {
		elements = append(elements, newImageResElement(dlna.PNGTn, tnSource, true))
	}

	if image == nil {
		// Parsing failed or has not happened, make a generic offer.
		elements = append(elements, newImageResElement(dlna.JPEGSm, nil, false))
		if supported("JPEG_LRG") {
			elements = append(elements, newImageResElement(dlna.JPEGLrg, nil, false))
		}
		if supported("PNG_LRG") {
			elements = append(elements, newImageResElement(dlna.PNGLrg, nil, false))
		}
		sortImageResElements(elements)
		return elements
	}

	if supported("JPEG_RES_H_V") && image.Width > 0 && image.Height > 0 {
		exact := dlna.NewJPEGResHV(image.Width, image.Height)
		elements = append(elements, newImageResElement(exact, image, exact.UseThumbnailSource(image, thumb)))
	}
	elements = append(elements, newImageResElement(dlna.JPEGSm, image, dlna.JPEGSm.UseThumbnailSource(image, thumb)))
	if !dlna.PNGTn.ResolutionCorrect(image) {
		if supported("PNG_LRG") {
			elements = append(elements, newImageResElement(dlna.PNGLrg, image, dlna.PNGLrg.UseThumbnailSource(image, thumb)))
		}
		if image.Format == "gif" && supported("GIF_LRG") {
			elements = append(elements, newImageResElement(dlna.GIFLrg, image, dlna.GIFLrg.UseThumbnailSource(image, thumb)))
		}
		if !dlna.JPEGSm.ResolutionCorrect(image) {
			if supported("JPEG_MED") {
				elements = append(elements, newImageResElement(dlna.JPEGMed, image, dlna.JPEGMed.UseThumbnailSource(image, thumb)))
			}
			if !dlna.JPEGMed.ResolutionCorrect(image) && supported("JPEG_LRG") {
				elements = append(elements, newImageResElement(dlna.JPEGLrg, image, dlna.JPEGLrg.UseThumbnailSource(image, thumb)))
			}
		}
	}

	sortImageResElements(elements)
	return elements
}

// thumbnailElements builds the rendition list for the thumbnail of a
// non-image resource (video poster, album cover). Everything renders
// from the cached thumbnail.
func thumbnailElements(renderer *pmorender.Profile, thumb *pmomedia.ImageInfo) []imageResElement {
	supported := func(name string) bool { return renderer.IsImageProfileSupported(name) }

	var elements []imageResElement
	elements = append(elements, newImageResElement(dlna.JPEGTn, thumb, true))
	if supported("JPEG_SM") {
		elements = append(elements, newImageResElement(dlna.JPEGSm, thumb, true))
	}
	if supported("PNG_TN") {
		elements = append(elements, newImageResElement(dlna.PNGTn, thumb, true))
	}
	if supported("PNG_LRG") {
		elements = append(elements, newImageResElement(dlna.PNGLrg, thumb, true))
	}

	if thumb != nil {
		if supported("JPEG_RES_H_V") && thumb.Width > 0 && thumb.Height > 0 {
			elements = append(elements, newImageResElement(dlna.NewJPEGResHV(thumb.Width, thumb.Height), thumb, true))
		}
		if thumb.Format == "gif" && supported("GIF_LRG") {
			elements = append(elements, newImageResElement(dlna.GIFLrg, thumb, true))
		}
		if !dlna.JPEGSm.ResolutionCorrect(thumb) {
			if supported("JPEG_MED") {
				elements = append(elements, newImageResElement(dlna.JPEGMed, thumb, true))
			}
			if !dlna.JPEGMed.ResolutionCorrect(thumb) && supported("JPEG_LRG") {
				elements = append(elements, newImageResElement(dlna.JPEGLrg, thumb, true))
			}
		}
	}

	sortImageResElements(elements)
	return elements
}

func (e imageResElement) resolution() string {
	if e.hypothetical.Width > 0 && e.hypothetical.Height > 0 {
		return fmt.Sprintf("%dx%d", e.hypothetical.Width, e.hypothetical.Height)
	}
	return ""
}

func (e imageResElement) size() int64 {
	if e.info != nil && !e.hypothetical.ConversionNeeded {
		return e.info.Size
	}
	return 0
}
