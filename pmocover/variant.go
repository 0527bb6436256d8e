package pmocover

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/dlna"
)

// encodeWebP produces the lossless master encoding.
func encodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: true}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Variant renders the master identified by pk into the given DLNA image
// profile: the profile's format, within the profile's bounds. Variants
// are generated once and reused from disk.
func (c *Cache) Variant(pk string, profile dlna.ImageProfile) ([]byte, error) {
	variantPath := filepath.Join(c.dir, pk+"."+strings.ToLower(profile.String())+variantExt(profile))

	if data, err := os.ReadFile(variantPath); err == nil {
		return data, nil
	}

	origPath := filepath.Join(c.dir, pk+".orig.webp")
	data, err := os.ReadFile(origPath)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	scaled := scaleToProfile(img, profile)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, scaled, variantFormat(profile), imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encoding %s variant: %w", profile, err)
	}
	if err := os.WriteFile(variantPath, buf.Bytes(), 0o644); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// scaleToProfile fits the image inside the profile bounds. The
// exact-resolution profile is special: its name promises the renderer
// precise dimensions, so the image is resampled to exactly those.
func scaleToProfile(img image.Image, profile dlna.ImageProfile) image.Image {
	w, h := profile.MaxWidth(), profile.MaxHeight()
	if profile.IsJPEGResHV() {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
		return dst
	}
	bounds := img.Bounds()
	if bounds.Dx() <= w && bounds.Dy() <= h {
		return img
	}
	return imaging.Fit(img, w, h, imaging.CatmullRom)
}

func variantFormat(profile dlna.ImageProfile) imaging.Format {
	switch profile.MimeType() {
	case "image/png":
		return imaging.PNG
	case "image/gif":
		return imaging.GIF
	}
	return imaging.JPEG
}

func variantExt(profile dlna.ImageProfile) string {
	switch profile.MimeType() {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	}
	return ".jpg"
}
