package pmomedia

import (
	"strconv"
	"strings"
)

// Codec identifiers as reported by the metadata parser. The parser is an
// external collaborator; we only consume its normalized names.
const (
	CodecH264  = "h264"
	CodecH265  = "h265"
	CodecMPEG2 = "mpeg2"
	CodecVC1   = "vc1"

	CodecAACLC  = "aac-lc"
	CodecHEAAC  = "he-aac"
	CodecAC3    = "ac3"
	CodecEAC3   = "eac3"
	CodecDTS    = "dts"
	CodecDTSHD  = "dtshd"
	CodecMP3    = "mp3"
	CodecLPCM   = "lpcm"
	CodecWMA    = "wma"
	CodecWMAPro = "wmapro"
	CodecWMA10  = "wma10"
)

// VideoTrack describes the default video stream of a media file.
type VideoTrack struct {
	Codec string
	// FormatProfile is the codec profile string, e.g. "high@l4.1",
	// lowercased by the parser.
	FormatProfile string
	Width         int
	Height        int
	BitDepth      int
	HD            bool
}

func (v *VideoTrack) IsH264() bool  { return v != nil && v.Codec == CodecH264 }
func (v *VideoTrack) IsH265() bool  { return v != nil && v.Codec == CodecH265 }
func (v *VideoTrack) IsMpeg2() bool { return v != nil && v.Codec == CodecMPEG2 }
func (v *VideoTrack) IsVC1() bool   { return v != nil && v.Codec == CodecVC1 }

func (v *VideoTrack) IsHDVideo() bool { return v != nil && v.HD }

// ProfileContains reports whether the codec profile string contains the
// given fragment ("high", "baseline", ...).
func (v *VideoTrack) ProfileContains(s string) bool {
	return v != nil && strings.Contains(v.FormatProfile, s)
}

// Resolution returns the "WxH" string, or "" when unknown.
func (v *VideoTrack) Resolution() string {
	if v == nil || v.Width <= 0 || v.Height <= 0 {
		return ""
	}
	return strconv.Itoa(v.Width) + "x" + strconv.Itoa(v.Height)
}

// AudioTrack describes the default audio stream of a media file.
type AudioTrack struct {
	Codec      string
	Lang       string
	Channels   int
	SampleRate int
	BitDepth   int
}

func (a *AudioTrack) IsAACLC() bool  { return a != nil && a.Codec == CodecAACLC }
func (a *AudioTrack) IsHEAAC() bool  { return a != nil && a.Codec == CodecHEAAC }
func (a *AudioTrack) IsAC3() bool    { return a != nil && a.Codec == CodecAC3 }
func (a *AudioTrack) IsEAC3() bool   { return a != nil && a.Codec == CodecEAC3 }
func (a *AudioTrack) IsDTS() bool    { return a != nil && a.Codec == CodecDTS }
func (a *AudioTrack) IsDTSHD() bool  { return a != nil && a.Codec == CodecDTSHD }
func (a *AudioTrack) IsWMA() bool    { return a != nil && a.Codec == CodecWMA }
func (a *AudioTrack) IsWMAPro() bool { return a != nil && a.Codec == CodecWMAPro }
func (a *AudioTrack) IsWMA10() bool  { return a != nil && a.Codec == CodecWMA10 }

// SubtitleTrack describes one subtitle stream or sidecar file.
type SubtitleTrack struct {
	ID       int
	Lang     string
	Format   string // "srt", "ass", "vobsub", ...
	External bool
	FileName string
}

func (s *SubtitleTrack) IsExternal() bool { return s != nil && s.External }
func (s *SubtitleTrack) IsEmbedded() bool { return s != nil && !s.External }
