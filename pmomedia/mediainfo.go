package pmomedia

import "fmt"

// MediaType is the coarse classification of a parsed file.
type MediaType int

const (
	TypeUnknown MediaType = iota
	TypeAudio
	TypeVideo
	TypeImage
)

// ImageInfo describes a still image (or an embedded thumbnail).
type ImageInfo struct {
	Format string // "jpeg", "png", "gif", "webp", ...
	Width  int
	Height int
	Size   int64
}

// Resolution returns "WxH", or "" when the resolution is unknown.
func (i *ImageInfo) Resolution() string {
	if i == nil || i.Width <= 0 || i.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}

// MediaInfo carries the facts extracted by the (external) metadata
// parser for one media file. It is immutable once handed to us; every
// field may be zero when parsing failed or has not happened yet.
type MediaInfo struct {
	Type     MediaType
	MimeType string
	Parsed   bool

	Size     int64
	Duration float64 // seconds
	BitRate  int

	VideoTrack *VideoTrack
	AudioTrack *AudioTrack
	Subtitles  []*SubtitleTrack

	FrameRate string

	// MpegTS is set when the container is MPEG-TS multiplexed even if
	// the advertised MIME type is the generic MPEG one (HLS, m2ts
	// disguised as video/mpeg).
	MpegTS bool

	// DVDTrack is non-empty for titles played out of a DVD image.
	DVDTrack string

	Image     *ImageInfo
	Thumbnail *ImageInfo
}

func (m *MediaInfo) IsVideo() bool { return m != nil && m.Type == TypeVideo }
func (m *MediaInfo) IsAudio() bool { return m != nil && m.Type == TypeAudio }
func (m *MediaInfo) IsImage() bool { return m != nil && m.Type == TypeImage }

func (m *MediaInfo) IsMpegTS() bool { return m != nil && m.MpegTS }

// DefaultVideoTrack returns the default video stream, or nil.
func (m *MediaInfo) DefaultVideoTrack() *VideoTrack {
	if m == nil {
		return nil
	}
	return m.VideoTrack
}

// DefaultAudioTrack returns the default audio stream, or nil.
func (m *MediaInfo) DefaultAudioTrack() *AudioTrack {
	if m == nil {
		return nil
	}
	return m.AudioTrack
}

// ExternalSubtitles reports whether at least one sidecar subtitle file
// was found next to the media.
func (m *MediaInfo) ExternalSubtitles() bool {
	if m == nil {
		return false
	}
	for _, s := range m.Subtitles {
		if s.IsExternal() {
			return true
		}
	}
	return false
}

// DurationString formats the duration as H:MM:SS.mmm, the form required
// for the res@duration attribute.
func (m *MediaInfo) DurationString() string {
	if m == nil {
		return ""
	}
	return FormatDLNADuration(m.Duration)
}

// FormatDLNADuration renders seconds as H:MM:SS.mmm. The format is
// wire-significant: some renderers reject durations without the
// millisecond part.
func FormatDLNADuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int64(seconds*1000 + 0.5)
	h := ms / 3600000
	ms %= 3600000
	m := ms / 60000
	ms %= 60000
	s := ms / 1000
	ms %= 1000
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms)
}
