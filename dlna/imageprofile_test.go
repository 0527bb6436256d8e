package dlna

import (
	"testing"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmomedia"
)

func TestImageProfileNamesAndMimes(t *testing.T) {
	cases := []struct {
		profile ImageProfile
		name    string
		mime    string
	}{
		{GIFLrg, "GIF_LRG", pmomedia.MimeGIF},
		{JPEGLrg, "JPEG_LRG", pmomedia.MimeJPEG},
		{JPEGMed, "JPEG_MED", pmomedia.MimeJPEG},
		{JPEGSm, "JPEG_SM", pmomedia.MimeJPEG},
		{JPEGTn, "JPEG_TN", pmomedia.MimeJPEG},
		{PNGLrg, "PNG_LRG", pmomedia.MimePNG},
		{PNGTn, "PNG_TN", pmomedia.MimePNG},
	}
	for _, c := range cases {
		if c.profile.String() != c.name {
			t.Errorf("profile name = %q, want %q", c.profile.String(), c.name)
		}
		if c.profile.MimeType() != c.mime {
			t.Errorf("%s mime = %q, want %q", c.name, c.profile.MimeType(), c.mime)
		}
	}
}

func TestJPEGResHV(t *testing.T) {
	p := NewJPEGResHV(1920, 1080)
	if p.String() != "JPEG_RES_1920_1080" {
		t.Errorf("name = %q", p.String())
	}
	if !p.IsJPEGResHV() {
		t.Error("IsJPEGResHV() = false")
	}
	if !p.ResolutionFits(1920, 1080) || p.ResolutionFits(1921, 1080) {
		t.Error("JPEG_RES_H_V must bound exactly at its own resolution")
	}
	if JPEGLrg.IsJPEGResHV() {
		t.Error("JPEG_LRG misdetected as JPEG_RES_H_V")
	}
}

func TestJPEGResHVPanicsOnUnknownResolution(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewJPEGResHV(0, 0) did not panic")
		}
	}()
	NewJPEGResHV(0, 0)
}

func TestResolutionFits(t *testing.T) {
	if !JPEGMed.ResolutionFits(1024, 768) {
		t.Error("1024x768 must fit JPEG_MED")
	}
	if JPEGMed.ResolutionFits(1025, 768) {
		t.Error("1025x768 must not fit JPEG_MED")
	}
	if JPEGTn.ResolutionFits(0, 0) {
		t.Error("unknown resolution can never fit")
	}
}

func TestCalculateHypothetical(t *testing.T) {
	small := &pmomedia.ImageInfo{Format: "jpeg", Width: 320, Height: 240}
	h := JPEGSm.CalculateHypothetical(small)
	if h.ConversionNeeded || h.Width != 320 || h.Height != 240 {
		t.Errorf("compliant image: %+v", h)
	}

	// Wrong format needs converting even when the size fits.
	png := &pmomedia.ImageInfo{Format: "png", Width: 320, Height: 240}
	if h := JPEGSm.CalculateHypothetical(png); !h.ConversionNeeded {
		t.Error("format mismatch must need conversion")
	}

	// Oversized image is scaled down preserving aspect ratio.
	big := &pmomedia.ImageInfo{Format: "jpeg", Width: 3200, Height: 2400}
	h = JPEGSm.CalculateHypothetical(big)
	if !h.ConversionNeeded {
		t.Error("oversized image must need conversion")
	}
	if h.Width != 640 || h.Height != 480 {
		t.Errorf("scaled size = %dx%d, want 640x480", h.Width, h.Height)
	}
}

func TestUseThumbnailSource(t *testing.T) {
	image := &pmomedia.ImageInfo{Format: "jpeg", Width: 4000, Height: 3000}
	thumb := &pmomedia.ImageInfo{Format: "jpeg", Width: 640, Height: 480}

	if !JPEGTn.UseThumbnailSource(image, thumb) {
		t.Error("a 160x160 target should be produced from the thumbnail")
	}
	if JPEGLrg.UseThumbnailSource(image, thumb) {
		t.Error("a full size target cannot come from the thumbnail")
	}
	if JPEGTn.UseThumbnailSource(image, nil) {
		t.Error("no thumbnail, no thumbnail source")
	}
}
