package pmocover

import (
	"image"
	"testing"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/dlna"
)

func TestScaleToProfileFits(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 120, 90))
	out := scaleToProfile(img, dlna.JPEGTn)
	if out != image.Image(img) {
		t.Error("an image inside the bounds must pass through unscaled")
	}
}

func TestScaleToProfileDownscales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3200, 2400))
	out := scaleToProfile(img, dlna.JPEGSm)
	b := out.Bounds()
	if b.Dx() > 640 || b.Dy() > 480 {
		t.Errorf("scaled to %dx%d, exceeds JPEG_SM bounds", b.Dx(), b.Dy())
	}
	// Aspect ratio 4:3 matches the profile box exactly.
	if b.Dx() != 640 || b.Dy() != 480 {
		t.Errorf("scaled to %dx%d, want 640x480", b.Dx(), b.Dy())
	}
}

func TestScaleToProfileExactResolution(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 800, 600))
	out := scaleToProfile(img, dlna.NewJPEGResHV(320, 240))
	b := out.Bounds()
	if b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("exact profile produced %dx%d", b.Dx(), b.Dy())
	}
}

func TestProfileByName(t *testing.T) {
	p, ok := profileByName("JPEG_TN")
	if !ok || p != dlna.JPEGTn {
		t.Errorf("JPEG_TN = %v, %v", p, ok)
	}
	p, ok = profileByName("JPEG_RES_1920_1080")
	if !ok || !p.IsJPEGResHV() || p.MaxWidth() != 1920 || p.MaxHeight() != 1080 {
		t.Errorf("JPEG_RES_1920_1080 = %v, %v", p, ok)
	}
	if _, ok := profileByName("JPEG_RES_X_Y"); ok {
		t.Error("malformed exact-resolution name accepted")
	}
	if _, ok := profileByName("BMP_HUGE"); ok {
		t.Error("unknown profile accepted")
	}
}

func TestKeyForStable(t *testing.T) {
	a := KeyFor("/music/cover.jpg")
	b := KeyFor("/music/cover.jpg")
	if a != b {
		t.Error("key must be deterministic")
	}
	if len(a) != 16 {
		t.Errorf("key length = %d", len(a))
	}
	if a == KeyFor("/music/other.jpg") {
		t.Error("different sources must get different keys")
	}
}
