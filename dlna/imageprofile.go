package dlna

import (
	"fmt"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmomedia"
)

// ImageProfile identifies one of the DLNA still-image media format
// profiles. Apart from JPEG_RES_H_V, which carries the exact source
// resolution, all profiles are fixed-size singletons.
type ImageProfile struct {
	name      string
	format    string // "jpeg", "png" or "gif"
	maxWidth  int
	maxHeight int
}

var (
	// GIFLrg is GIF_LRG: max 1600x1200.
	GIFLrg = ImageProfile{"GIF_LRG", "gif", 1600, 1200}
	// JPEGLrg is JPEG_LRG: max 4096x4096.
	JPEGLrg = ImageProfile{"JPEG_LRG", "jpeg", 4096, 4096}
	// JPEGMed is JPEG_MED: max 1024x768.
	JPEGMed = ImageProfile{"JPEG_MED", "jpeg", 1024, 768}
	// JPEGSm is JPEG_SM: max 640x480.
	JPEGSm = ImageProfile{"JPEG_SM", "jpeg", 640, 480}
	// JPEGTn is JPEG_TN: max 160x160, the DLNA-mandated thumbnail.
	JPEGTn = ImageProfile{"JPEG_TN", "jpeg", 160, 160}
	// PNGLrg is PNG_LRG: max 4096x4096.
	PNGLrg = ImageProfile{"PNG_LRG", "png", 4096, 4096}
	// PNGTn is PNG_TN: max 160x160.
	PNGTn = ImageProfile{"PNG_TN", "png", 160, 160}
)

// NewJPEGResHV creates a JPEG_RES_H_V profile for the exact resolution.
// Constructing one without a known resolution is a programming error and
// panics immediately rather than producing a broken wire document later.
func NewJPEGResHV(width, height int) ImageProfile {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("dlna: JPEG_RES_H_V requires a known resolution, got %dx%d", width, height))
	}
	return ImageProfile{
		name:      fmt.Sprintf("JPEG_RES_%d_%d", width, height),
		format:    "jpeg",
		maxWidth:  width,
		maxHeight: height,
	}
}

// IsJPEGResHV reports whether the profile is an exact-resolution
// JPEG_RES_H_V instance.
func (p ImageProfile) IsJPEGResHV() bool {
	return len(p.name) > 9 && p.name[:9] == "JPEG_RES_"
}

func (p ImageProfile) String() string { return p.name }

// Format returns the image format this profile mandates.
func (p ImageProfile) Format() string { return p.format }

// MimeType returns the MIME type for the profile's format.
func (p ImageProfile) MimeType() string {
	switch p.format {
	case "png":
		return pmomedia.MimePNG
	case "gif":
		return pmomedia.MimeGIF
	default:
		return pmomedia.MimeJPEG
	}
}

// MaxWidth and MaxHeight bound the resolution of a compliant image.
func (p ImageProfile) MaxWidth() int  { return p.maxWidth }
func (p ImageProfile) MaxHeight() int { return p.maxHeight }

// ResolutionFits reports whether an image of the given size complies
// with the profile without scaling.
func (p ImageProfile) ResolutionFits(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	return width <= p.maxWidth && height <= p.maxHeight
}

// ResolutionCorrect is ResolutionFits on an ImageInfo; a nil or
// unparsed image never fits.
func (p ImageProfile) ResolutionCorrect(info *pmomedia.ImageInfo) bool {
	if info == nil {
		return false
	}
	return p.ResolutionFits(info.Width, info.Height)
}

// Hypothetical is the result of asking what serving an image under this
// profile would take, without doing any conversion work.
type Hypothetical struct {
	Width            int
	Height           int
	ConversionNeeded bool
}

// CalculateHypothetical determines the size an image would be delivered
// at under this profile and whether that delivery requires converting
// the source (scaling down or changing format).
func (p ImageProfile) CalculateHypothetical(info *pmomedia.ImageInfo) Hypothetical {
	if info == nil || info.Width <= 0 || info.Height <= 0 {
		return Hypothetical{ConversionNeeded: false}
	}
	h := Hypothetical{Width: info.Width, Height: info.Height}
	if info.Format != p.format {
		h.ConversionNeeded = true
	}
	if !p.ResolutionFits(info.Width, info.Height) {
		h.Width, h.Height = scaleToFit(info.Width, info.Height, p.maxWidth, p.maxHeight)
		h.ConversionNeeded = true
	}
	return h
}

// UseThumbnailSource reports whether the cached thumbnail is a
// sufficient source for this profile, sparing a decode of the full
// image: anything delivered at or below the thumbnail's size can be
// produced from the thumbnail.
func (p ImageProfile) UseThumbnailSource(image, thumbnail *pmomedia.ImageInfo) bool {
	if thumbnail == nil || thumbnail.Width <= 0 || thumbnail.Height <= 0 {
		return false
	}
	if image == nil || image.Width <= 0 || image.Height <= 0 {
		return true
	}
	w, h := image.Width, image.Height
	if !p.ResolutionFits(w, h) {
		w, h = scaleToFit(w, h, p.maxWidth, p.maxHeight)
	}
	return w <= thumbnail.Width && h <= thumbnail.Height
}

func scaleToFit(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}
