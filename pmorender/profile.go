// Package pmorender holds the per-renderer capability profiles that
// drive DLNA negotiation. A profile is loaded once per device and never
// mutated afterwards; resolution code treats it as read-only.
package pmorender

import "strings"

// Profile describes what one renderer model accepts and which
// workarounds it needs. Every quirk is an explicit field here: the
// negotiation code never tests renderer identity by name.
type Profile struct {
	Name string `yaml:"name"`

	// DLNA.ORG_PN signalling.
	DLNAOrgPNUsed     bool `yaml:"dlna_org_pn_used"`
	AccurateDLNAOrgPN bool `yaml:"accurate_dlna_org_pn"`
	SendDLNAOrgFlags  bool `yaml:"send_dlna_org_flags"`

	// DLNALocalization makes us emit one res element per DLNA locale
	// (EU/NA/JP) instead of a single one.
	DLNALocalization bool `yaml:"dlna_localization"`

	// ProfileOverrides remaps a computed generic DLNA.ORG_PN to the
	// renderer-specific value it actually accepts.
	ProfileOverrides map[string]string `yaml:"profile_overrides"`

	// Seeking.
	SeekByTime          bool `yaml:"seek_by_time"`
	SeekByTimeExclusive bool `yaml:"seek_by_time_exclusive"`

	// Thumbnails and album art.
	Thumbnails           bool     `yaml:"thumbnails"`
	SendFolderThumbnails bool     `yaml:"send_folder_thumbnails"`
	NeedAlbumArtHack     bool     `yaml:"need_album_art_hack"`
	AlbumArtProfile      string   `yaml:"album_art_profile"`
	ImageProfiles        []string `yaml:"image_profiles"`

	// Subtitles.
	OfferSubtitlesByProtocolInfo bool     `yaml:"offer_subtitles_by_protocol_info"`
	OfferSubtitlesAsResource     bool     `yaml:"offer_subtitles_as_resource"`
	UseClosedCaption             bool     `yaml:"use_closed_caption"`
	StreamSubsForTranscodedVideo bool     `yaml:"stream_subs_for_transcoded_video"`
	DisableSubtitles             bool     `yaml:"disable_subtitles"`
	SubtitleFormats              []string `yaml:"subtitle_formats"`

	// MPEG-TS remux behaviour.
	MencoderMuxWhenCompatible          bool `yaml:"mencoder_mux_when_compatible"`
	FFmpegMuxWithTsMuxerWhenCompatible bool `yaml:"ffmpeg_mux_with_tsmuxer_when_compatible"`

	// MuxableVideoCodecs are remuxable without re-encoding at all;
	// TSMuxableVideoCodecs are the ones the renderer then accepts
	// inside an MPEG-TS container. Both must match for a remux.
	MuxableVideoCodecs   []string `yaml:"muxable_video_codecs"`
	TSMuxableVideoCodecs []string `yaml:"ts_muxable_video_codecs"`

	// VirtualFolderQuirk marks the legacy consoles whose own virtual
	// folder ids collide with ours; their object ids get a "$" suffix
	// and their fake parent ids remap the container class.
	VirtualFolderQuirk bool `yaml:"virtual_folder_quirk"`

	// Metadata presentation.
	PrependTrackNumbers          bool `yaml:"prepend_track_numbers"`
	SendDateMetadata             bool `yaml:"send_date_metadata"`
	SendDateMetadataYearForAudio bool `yaml:"send_date_metadata_year_for_audio"`
	SamsungBookmark              bool `yaml:"samsung_bookmark"`

	// Transcoded stream advertisement.
	TranscodedSize      int64 `yaml:"transcoded_size"`
	AudioChannelCount   int   `yaml:"audio_channel_count"`
	AudioResample       bool  `yaml:"audio_resample"`
	TranscodeAudioTo441 bool  `yaml:"transcode_audio_to_441"`
	KeepAspectRatio     bool  `yaml:"keep_aspect_ratio"`
}

// DlnaProfileID applies the override table to a computed generic
// profile id. Unknown ids pass through unchanged.
func (p *Profile) DlnaProfileID(generic string) string {
	if p == nil || p.ProfileOverrides == nil {
		return generic
	}
	if override, ok := p.ProfileOverrides[generic]; ok {
		return override
	}
	return generic
}

// IsImageProfileSupported reports whether the renderer advertised
// support for the given DLNA image profile name. An empty list means
// the renderer never told us, which per DLNA is treated as "supports
// everything".
func (p *Profile) IsImageProfileSupported(profile string) bool {
	if p == nil || len(p.ImageProfiles) == 0 {
		return true
	}
	if strings.HasPrefix(profile, "JPEG_RES") {
		profile = "JPEG_RES_H_V"
	}
	for _, supported := range p.ImageProfiles {
		if supported == profile {
			return true
		}
	}
	return false
}

// IsExternalSubtitlesFormatSupported reports whether the renderer can
// play the sidecar subtitle format natively.
func (p *Profile) IsExternalSubtitlesFormatSupported(format string) bool {
	if p == nil {
		return false
	}
	for _, f := range p.SubtitleFormats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

// IsVideoStreamTypeSupportedInTranscodingContainer reports whether the
// renderer accepts the codec inside an MPEG-TS container, which gates
// the mux-when-compatible path.
func (p *Profile) IsVideoStreamTypeSupportedInTranscodingContainer(codec string) bool {
	if p == nil {
		return false
	}
	for _, c := range p.TSMuxableVideoCodecs {
		if c == codec {
			return true
		}
	}
	return false
}

// IsMuxable reports whether the codec may be remuxed without
// re-encoding for this renderer.
func (p *Profile) IsMuxable(codec string) bool {
	if p == nil {
		return false
	}
	for _, c := range p.MuxableVideoCodecs {
		if c == codec {
			return true
		}
	}
	return false
}
