package dlna

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmomedia"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmorender"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmotrans"
)

// DLNA localization indexes. The index selects the regional variant of
// the MPEG profile names (NTSC vs PAL, _NA/_JP/_EU suffixes).
const (
	LocaleEU = 0
	LocaleNA = 1
	LocaleJP = 2

	// LocaleCount bounds the localization loop when a renderer wants
	// one res element per locale.
	LocaleCount = 3

	// DefaultLocale is used when the renderer gave us no hint.
	DefaultLocale = LocaleNA
)

// ItemFacts bundles everything the profile resolution looks at for one
// playable item. Transcoding is nil when the file is streamed as is.
type ItemFacts struct {
	// MimeType is the MIME type as sent to this renderer, after any
	// renderer-specific remapping.
	MimeType string

	Media       *pmomedia.MediaInfo
	Transcoding *pmotrans.Settings

	// Subtitle is the subtitle stream already selected for playback,
	// nil when none was picked yet.
	Subtitle *pmomedia.SubtitleTrack

	// ResolveSubtitle lazily works out which subtitle stream playback
	// would pick. Only consulted on the accurate-ORG_PN remux path,
	// because the resolution is expensive. May be nil.
	ResolveSubtitle func() *pmomedia.SubtitleTrack
}

func (f *ItemFacts) transcoded() bool { return f.Transcoding != nil }

// ResolveProfileID computes the DLNA.ORG_PN value for an item, after the
// renderer's override table. The empty string means no ORG_PN token is
// sent at all: either the renderer opted out or the format has no
// recognised profile.
func ResolveProfileID(renderer *pmorender.Profile, facts *ItemFacts, locale int) string {
	if renderer != nil && !renderer.DLNAOrgPNUsed && !renderer.AccurateDLNAOrgPN {
		return ""
	}

	pn := genericProfileID(renderer, facts, locale)
	if pn == "" {
		return ""
	}
	return renderer.DlnaProfileID(pn)
}

func genericProfileID(renderer *pmorender.Profile, facts *ItemFacts, locale int) string {
	mime := facts.MimeType
	media := facts.Media
	format := facts.Transcoding.EncodingFormat()
	videoTrack := media.DefaultVideoTrack()
	audioTrack := media.DefaultAudioTrack()

	switch {
	case mime == pmomedia.MimeDivX:
		return "AVI"

	case mime == pmomedia.MimeWMV && videoTrack.IsHDVideo():
		return wmvProfileID(media, format)

	case mime == pmomedia.MimeMPEG || mime == pmomedia.MimeHLS || mime == pmomedia.MimeHLSApple:
		return mpegProfileID(renderer, facts, locale)

	case media != nil && mime == pmomedia.MimeMPEGTS:
		// Sony BDPs refuse to list m2ts clips without an exact PN.
		switch {
		case (!facts.transcoded() && videoTrack.IsH264()) || format.IsTranscodeToH264():
			return mpegTSH264ProfileID(locale, !facts.transcoded())
		case (!facts.transcoded() && videoTrack.IsMpeg2()) || format.IsTranscodeToMPEG2():
			return mpegTSMpeg2ProfileID(locale, media, !facts.transcoded())
		}
		return ""

	case media != nil && mime == pmomedia.MimeMP4:
		if !facts.transcoded() && videoTrack.IsH265() && audioTrack != nil &&
			(audioTrack.IsAC3() || audioTrack.IsEAC3() || audioTrack.IsHEAAC()) {
			return "DASH_HEVC_MP4_UHD_NA"
		}
		if !facts.transcoded() && videoTrack.IsH264() {
			return mp4H264ProfileID(media, format)
		}
		return ""

	case media != nil && mime == pmomedia.MimeMatroska:
		if !facts.transcoded() && videoTrack.IsH264() {
			return mkvH264ProfileID(media, nil)
		}
		return ""

	case media != nil && mime == pmomedia.MimeASF:
		if !facts.transcoded() && videoTrack.IsVC1() && audioTrack.IsWMA() {
			if videoTrack.IsHDVideo() {
				return "VC1_ASF_AP_L2_WMA"
			}
			return "VC1_ASF_AP_L1_WMA"
		}
		return ""

	case media != nil && mime == pmomedia.MimeJPEG:
		return jpegProfileID(media.Image)

	case mime == pmomedia.MimeMP3:
		return "MP3"

	case strings.HasPrefix(mime, pmomedia.MimeLPCM) || mime == pmomedia.MimeWAV:
		return "LPCM"
	}

	return ""
}

// mpegProfileID handles the generic video/mpeg MIME type, which is the
// catch-all for both streamed MPEG-PS and every transcode target. The
// tricky part is predicting whether the output will really be MPEG-TS:
// some engines always produce it, some honour the requested container,
// and the mux-when-compatible renderer options make it depend on the
// media itself.
func mpegProfileID(renderer *pmorender.Profile, facts *ItemFacts, locale int) string {
	pn := mpegPSProfileID(locale)
	media := facts.Media
	videoTrack := media.DefaultVideoTrack()

	if !facts.transcoded() {
		if media.IsMpegTS() && videoTrack != nil {
			switch {
			case videoTrack.IsH264():
				return mpegTSH264ProfileID(locale, true)
			case videoTrack.IsMpeg2():
				return mpegTSMpeg2ProfileID(locale, media, true)
			}
		}
		return pn
	}

	engine := facts.Transcoding.EngineID()
	format := facts.Transcoding.EncodingFormat()

	outputsMPEGTS := engine.AlwaysOutputsMPEGTS()
	if !outputsMPEGTS && format.IsTranscodeToMPEGTS() && engine.HonoursMPEGTSFlag() {
		outputsMPEGTS = true
	}

	if !outputsMPEGTS && renderer != nil &&
		((renderer.MencoderMuxWhenCompatible && engine == pmotrans.EngineMEncoder) ||
			(renderer.FFmpegMuxWithTsMuxerWhenCompatible && engine == pmotrans.EngineFFmpeg)) {
		outputsMPEGTS = remuxToMPEGTS(renderer, facts)
	}

	if outputsMPEGTS {
		switch {
		case format.IsTranscodeToH264() && engine != pmotrans.EngineVLCVideoStream:
			return mpegTSH264ProfileID(locale, false)
		case format.IsTranscodeToMPEG2():
			return mpegTSMpeg2ProfileID(locale, media, false)
		}
	}
	return pn
}

// remuxToMPEGTS predicts whether the mux-when-compatible option will
// kick in: no subtitle wanted, no DVD source, the video codec remuxable
// and accepted by the renderer inside MPEG-TS. This duplicates the
// engine's own decision, which is why it is only evaluated for the
// renderers that need an accurate answer up front.
func remuxToMPEGTS(renderer *pmorender.Profile, facts *ItemFacts) bool {
	media := facts.Media
	subtitle := facts.Subtitle
	if subtitle == nil && renderer.AccurateDLNAOrgPN && facts.ResolveSubtitle != nil {
		subtitle = facts.ResolveSubtitle()
		if subtitle == nil {
			log.Tracef("no subtitle wanted for a %s remux candidate", facts.MimeType)
		} else {
			log.Tracef("subtitle %s wanted, no remux", subtitle.Format)
		}
	}

	if subtitle != nil || media == nil {
		return false
	}
	videoTrack := media.DefaultVideoTrack()
	return !media.ExternalSubtitles() &&
		media.DVDTrack == "" &&
		videoTrack != nil &&
		renderer.IsMuxable(videoTrack.Codec) &&
		renderer.IsVideoStreamTypeSupportedInTranscodingContainer(videoTrack.Codec)
}

func mpegPSProfileID(locale int) string {
	if locale == LocaleNA || locale == LocaleJP {
		return "MPEG_PS_NTSC"
	}
	return "MPEG_PS_PAL"
}

func localeSuffix(locale int) string {
	switch locale {
	case LocaleNA:
		return "_NA"
	case LocaleJP:
		return "_JP"
	default:
		return "_EU"
	}
}

func mpegTSH264ProfileID(locale int, streaming bool) string {
	pn := "AVC_TS" + localeSuffix(locale)
	if !streaming {
		pn += "_ISO"
	}
	return pn
}

func mpegTSMpeg2ProfileID(locale int, media *pmomedia.MediaInfo, streaming bool) string {
	pn := "MPEG_TS_SD"
	if media.DefaultVideoTrack().IsHDVideo() {
		pn = "MPEG_TS_HD"
	}
	pn += localeSuffix(locale)
	if !streaming {
		pn += "_ISO"
	}
	return pn
}

func mkvH264ProfileID(media *pmomedia.MediaInfo, format *pmotrans.EncodingFormat) string {
	pn := "AVC_MKV"

	videoTrack := media.DefaultVideoTrack()
	if videoTrack == nil || videoTrack.FormatProfile == "" || videoTrack.ProfileContains("high") {
		pn += "_HP"
	} else {
		pn += "_MP"
	}
	pn += "_HD"

	audioTrack := media.DefaultAudioTrack()
	if audioTrack == nil {
		return pn
	}
	switch {
	case (format == nil && audioTrack.IsAACLC()) || format.IsTranscodeToAAC():
		pn += "_AAC_MULT5"
	case (format == nil && audioTrack.IsAC3()) || format.IsTranscodeToAC3():
		pn += "_AC3"
	case format == nil && audioTrack.IsDTS():
		pn += "_DTS"
	case format == nil && audioTrack.IsEAC3():
		pn += "_EAC3"
	case format == nil && audioTrack.IsHEAAC():
		pn += "_HEAAC_L4"
	}
	return pn
}

func mp4H264ProfileID(media *pmomedia.MediaInfo, format *pmotrans.EncodingFormat) string {
	pn := "AVC_MP4"

	videoTrack := media.DefaultVideoTrack()
	audioTrack := media.DefaultAudioTrack()
	switch {
	case videoTrack != nil && videoTrack.ProfileContains("high"):
		if format == nil && audioTrack.IsHEAAC() {
			pn += "_HD_HEAACv2_L6"
		} else {
			pn += "_HP_HD"
		}
	case videoTrack != nil && videoTrack.ProfileContains("baseline"):
		pn += "_BL"
	default:
		pn += "_MP_SD"
	}

	if audioTrack == nil {
		return pn
	}
	switch {
	case (format == nil && (audioTrack.IsAC3() || audioTrack.IsEAC3())) || format.IsTranscodeToAC3():
		pn += "_EAC3"
	case format == nil && audioTrack.IsDTS():
		pn += "_DTS"
	case format == nil && audioTrack.IsDTSHD():
		pn += "_DTSHD"
	}
	return pn
}

func wmvProfileID(media *pmomedia.MediaInfo, format *pmotrans.EncodingFormat) string {
	pn := "WMV"
	if media.DefaultVideoTrack().IsHDVideo() {
		pn += "HIGH"
	} else {
		pn += "MED"
	}

	audioTrack := media.DefaultAudioTrack()
	if audioTrack == nil {
		return pn
	}
	switch {
	case (format == nil && audioTrack.IsWMA()) || format.IsTranscodeToWMV():
		pn += "_FULL"
	case format == nil && (audioTrack.IsWMAPro() || audioTrack.IsWMA10()):
		pn += "_PRO"
	}
	return pn
}

// jpegProfileID classifies a JPEG by resolution tier. Boundaries are
// strict: an image exactly at 1024x768 is still JPEG_MED.
func jpegProfileID(image *pmomedia.ImageInfo) string {
	if image == nil {
		return "JPEG_TN"
	}
	switch {
	case image.Width > 1024 || image.Height > 768:
		return "JPEG_LRG"
	case image.Width > 640 || image.Height > 480:
		return "JPEG_MED"
	case image.Width > 160 || image.Height > 160:
		return "JPEG_SM"
	default:
		return "JPEG_TN"
	}
}
