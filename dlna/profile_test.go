package dlna

import (
	"testing"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmomedia"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmorender"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmotrans"
)

func pnRenderer() *pmorender.Profile {
	return &pmorender.Profile{
		Name:             "test",
		DLNAOrgPNUsed:    true,
		SendDLNAOrgFlags: true,
	}
}

func h264Video(hd bool) *pmomedia.VideoTrack {
	return &pmomedia.VideoTrack{Codec: pmomedia.CodecH264, FormatProfile: "high@l4.1", HD: hd}
}

func TestResolveProfileIDDivX(t *testing.T) {
	facts := &ItemFacts{MimeType: pmomedia.MimeDivX}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "AVI" {
		t.Errorf("DivX profile = %q, want AVI", pn)
	}
}

func TestResolveProfileIDRendererOptedOut(t *testing.T) {
	renderer := &pmorender.Profile{Name: "mute"}
	facts := &ItemFacts{MimeType: pmomedia.MimeDivX}
	if pn := ResolveProfileID(renderer, facts, LocaleNA); pn != "" {
		t.Errorf("profile for opted-out renderer = %q, want empty", pn)
	}
}

func TestResolveProfileIDUnknownContainer(t *testing.T) {
	facts := &ItemFacts{MimeType: "video/x-flv", Media: &pmomedia.MediaInfo{Type: pmomedia.TypeVideo}}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "" {
		t.Errorf("profile for unknown container = %q, want empty", pn)
	}
}

func TestResolveProfileIDMpegPSLocales(t *testing.T) {
	facts := &ItemFacts{MimeType: pmomedia.MimeMPEG, Media: &pmomedia.MediaInfo{Type: pmomedia.TypeVideo}}
	cases := []struct {
		locale int
		want   string
	}{
		{LocaleNA, "MPEG_PS_NTSC"},
		{LocaleJP, "MPEG_PS_NTSC"},
		{LocaleEU, "MPEG_PS_PAL"},
	}
	for _, c := range cases {
		if pn := ResolveProfileID(pnRenderer(), facts, c.locale); pn != c.want {
			t.Errorf("locale %d: profile = %q, want %q", c.locale, pn, c.want)
		}
	}
}

func TestResolveProfileIDStreamedMpegTS(t *testing.T) {
	media := &pmomedia.MediaInfo{
		Type:       pmomedia.TypeVideo,
		MpegTS:     true,
		VideoTrack: h264Video(true),
	}
	facts := &ItemFacts{MimeType: pmomedia.MimeMPEG, Media: media}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleEU); pn != "AVC_TS_EU" {
		t.Errorf("streamed H.264 TS = %q, want AVC_TS_EU", pn)
	}

	media.VideoTrack = &pmomedia.VideoTrack{Codec: pmomedia.CodecMPEG2, HD: true}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "MPEG_TS_HD_NA" {
		t.Errorf("streamed MPEG-2 HD TS = %q, want MPEG_TS_HD_NA", pn)
	}

	media.VideoTrack.HD = false
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleJP); pn != "MPEG_TS_SD_JP" {
		t.Errorf("streamed MPEG-2 SD TS = %q, want MPEG_TS_SD_JP", pn)
	}
}

func TestResolveProfileIDTranscodedToMpegTS(t *testing.T) {
	facts := &ItemFacts{
		MimeType: pmomedia.MimeMPEG,
		Media:    &pmomedia.MediaInfo{Type: pmomedia.TypeVideo, VideoTrack: h264Video(true)},
		Transcoding: &pmotrans.Settings{
			Engine: pmotrans.EngineTsMuxeR,
			Format: &pmotrans.EncodingFormat{Container: pmotrans.ContainerMPEGTS, VideoCodec: pmomedia.CodecH264},
		},
	}
	// tsMuxeR always outputs MPEG-TS and the output is not streamed, so
	// the profile carries the _ISO suffix.
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleEU); pn != "AVC_TS_EU_ISO" {
		t.Errorf("tsMuxeR output = %q, want AVC_TS_EU_ISO", pn)
	}

	// An engine honouring the MPEG-TS container flag.
	facts.Transcoding.Engine = pmotrans.EngineFFmpeg
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "AVC_TS_NA_ISO" {
		t.Errorf("ffmpeg MPEG-TS output = %q, want AVC_TS_NA_ISO", pn)
	}

	// The legacy VLC web streamer outputs MPEG-TS but never H.264 worth
	// advertising; the MPEG-2 target still resolves.
	facts.Transcoding.Engine = pmotrans.EngineVLCVideoStream
	facts.Transcoding.Format = &pmotrans.EncodingFormat{Container: pmotrans.ContainerMPEGTS, VideoCodec: pmomedia.CodecMPEG2}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleEU); pn != "MPEG_TS_HD_EU_ISO" {
		t.Errorf("vlc web MPEG-2 output = %q, want MPEG_TS_HD_EU_ISO", pn)
	}

	// MPEG-PS target keeps the PS profile.
	facts.Transcoding.Engine = pmotrans.EngineMEncoder
	facts.Transcoding.Format = &pmotrans.EncodingFormat{Container: pmotrans.ContainerMPEGPS, VideoCodec: pmomedia.CodecMPEG2}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleEU); pn != "MPEG_PS_PAL" {
		t.Errorf("MPEG-PS target = %q, want MPEG_PS_PAL", pn)
	}
}

func TestResolveProfileIDRemuxWhenCompatible(t *testing.T) {
	renderer := pnRenderer()
	renderer.AccurateDLNAOrgPN = true
	renderer.MencoderMuxWhenCompatible = true
	renderer.MuxableVideoCodecs = []string{pmomedia.CodecH264}
	renderer.TSMuxableVideoCodecs = []string{pmomedia.CodecH264}

	media := &pmomedia.MediaInfo{Type: pmomedia.TypeVideo, VideoTrack: h264Video(true)}
	facts := &ItemFacts{
		MimeType: pmomedia.MimeMPEG,
		Media:    media,
		Transcoding: &pmotrans.Settings{
			Engine: pmotrans.EngineMEncoder,
			Format: &pmotrans.EncodingFormat{Container: pmotrans.ContainerMPEGPS, VideoCodec: pmomedia.CodecH264},
		},
	}

	// Compatible: MEncoder will remux via tsMuxeR, so the answer is TS.
	if pn := ResolveProfileID(renderer, facts, LocaleNA); pn != "AVC_TS_NA_ISO" {
		t.Errorf("remux candidate = %q, want AVC_TS_NA_ISO", pn)
	}

	// A wanted subtitle forces a real transcode to MPEG-PS.
	resolved := false
	facts.ResolveSubtitle = func() *pmomedia.SubtitleTrack {
		resolved = true
		return &pmomedia.SubtitleTrack{Format: "srt", External: true}
	}
	if pn := ResolveProfileID(renderer, facts, LocaleNA); pn != "MPEG_PS_NTSC" {
		t.Errorf("remux with subtitle = %q, want MPEG_PS_NTSC", pn)
	}
	if !resolved {
		t.Error("accurate ORG_PN renderer did not resolve the subtitle stream")
	}
	facts.ResolveSubtitle = nil

	// A DVD source never remuxes.
	media.DVDTrack = "1"
	if pn := ResolveProfileID(renderer, facts, LocaleNA); pn != "MPEG_PS_NTSC" {
		t.Errorf("remux of DVD track = %q, want MPEG_PS_NTSC", pn)
	}
	media.DVDTrack = ""

	// A codec the renderer refuses inside MPEG-TS never remuxes.
	renderer.TSMuxableVideoCodecs = nil
	if pn := ResolveProfileID(renderer, facts, LocaleNA); pn != "MPEG_PS_NTSC" {
		t.Errorf("remux of non-TS-muxable codec = %q, want MPEG_PS_NTSC", pn)
	}
}

func TestResolveProfileIDMp4(t *testing.T) {
	media := &pmomedia.MediaInfo{
		Type:       pmomedia.TypeVideo,
		VideoTrack: h264Video(true),
		AudioTrack: &pmomedia.AudioTrack{Codec: pmomedia.CodecHEAAC},
	}
	facts := &ItemFacts{MimeType: pmomedia.MimeMP4, Media: media}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "AVC_MP4_HD_HEAACv2_L6" {
		t.Errorf("high profile HE-AAC MP4 = %q, want AVC_MP4_HD_HEAACv2_L6", pn)
	}

	media.AudioTrack = &pmomedia.AudioTrack{Codec: pmomedia.CodecAC3}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "AVC_MP4_HP_HD_EAC3" {
		t.Errorf("high profile AC-3 MP4 = %q, want AVC_MP4_HP_HD_EAC3", pn)
	}

	media.VideoTrack = &pmomedia.VideoTrack{Codec: pmomedia.CodecH264, FormatProfile: "baseline@l3.0"}
	media.AudioTrack = &pmomedia.AudioTrack{Codec: pmomedia.CodecDTS}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "AVC_MP4_BL_DTS" {
		t.Errorf("baseline DTS MP4 = %q, want AVC_MP4_BL_DTS", pn)
	}

	media.VideoTrack = &pmomedia.VideoTrack{Codec: pmomedia.CodecH264, FormatProfile: "main@l3.1"}
	media.AudioTrack = &pmomedia.AudioTrack{Codec: pmomedia.CodecDTSHD}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "AVC_MP4_MP_SD_DTSHD" {
		t.Errorf("main profile DTS-HD MP4 = %q, want AVC_MP4_MP_SD_DTSHD", pn)
	}

	// HEVC with a compatible audio track is the UHD DASH profile.
	media.VideoTrack = &pmomedia.VideoTrack{Codec: pmomedia.CodecH265, HD: true}
	media.AudioTrack = &pmomedia.AudioTrack{Codec: pmomedia.CodecEAC3}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "DASH_HEVC_MP4_UHD_NA" {
		t.Errorf("HEVC MP4 = %q, want DASH_HEVC_MP4_UHD_NA", pn)
	}
}

func TestResolveProfileIDMkv(t *testing.T) {
	media := &pmomedia.MediaInfo{
		Type:       pmomedia.TypeVideo,
		VideoTrack: h264Video(true),
		AudioTrack: &pmomedia.AudioTrack{Codec: pmomedia.CodecAACLC},
	}
	facts := &ItemFacts{MimeType: pmomedia.MimeMatroska, Media: media}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "AVC_MKV_HP_HD_AAC_MULT5" {
		t.Errorf("MKV AAC = %q, want AVC_MKV_HP_HD_AAC_MULT5", pn)
	}

	media.VideoTrack = &pmomedia.VideoTrack{Codec: pmomedia.CodecH264, FormatProfile: "main@l4.0"}
	media.AudioTrack = &pmomedia.AudioTrack{Codec: pmomedia.CodecEAC3}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "AVC_MKV_MP_HD_EAC3" {
		t.Errorf("MKV E-AC-3 = %q, want AVC_MKV_MP_HD_EAC3", pn)
	}

	// An unknown video profile is assumed high.
	media.VideoTrack = &pmomedia.VideoTrack{Codec: pmomedia.CodecH264}
	media.AudioTrack = &pmomedia.AudioTrack{Codec: pmomedia.CodecDTS}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "AVC_MKV_HP_HD_DTS" {
		t.Errorf("MKV DTS = %q, want AVC_MKV_HP_HD_DTS", pn)
	}
}

func TestResolveProfileIDWmvAndASF(t *testing.T) {
	media := &pmomedia.MediaInfo{
		Type:       pmomedia.TypeVideo,
		VideoTrack: &pmomedia.VideoTrack{Codec: pmomedia.CodecVC1, HD: true},
		AudioTrack: &pmomedia.AudioTrack{Codec: pmomedia.CodecWMA},
	}
	facts := &ItemFacts{MimeType: pmomedia.MimeWMV, Media: media}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "WMVHIGH_FULL" {
		t.Errorf("HD WMV = %q, want WMVHIGH_FULL", pn)
	}

	media.AudioTrack = &pmomedia.AudioTrack{Codec: pmomedia.CodecWMAPro}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "WMVHIGH_PRO" {
		t.Errorf("HD WMV Pro = %q, want WMVHIGH_PRO", pn)
	}

	// SD WMV gets no profile at all.
	media.VideoTrack.HD = false
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "" {
		t.Errorf("SD WMV = %q, want empty", pn)
	}

	facts.MimeType = pmomedia.MimeASF
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "VC1_ASF_AP_L1_WMA" {
		t.Errorf("SD ASF = %q, want VC1_ASF_AP_L1_WMA", pn)
	}
	media.VideoTrack.HD = true
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "VC1_ASF_AP_L2_WMA" {
		t.Errorf("HD ASF = %q, want VC1_ASF_AP_L2_WMA", pn)
	}
}

func TestResolveProfileIDJpegTiers(t *testing.T) {
	cases := []struct {
		w, h int
		want string
	}{
		{4000, 3000, "JPEG_LRG"},
		{1025, 768, "JPEG_LRG"},
		{1024, 768, "JPEG_MED"},
		{641, 480, "JPEG_MED"},
		{640, 480, "JPEG_SM"},
		{161, 120, "JPEG_SM"},
		{160, 160, "JPEG_TN"},
		{100, 100, "JPEG_TN"},
	}
	for _, c := range cases {
		facts := &ItemFacts{
			MimeType: pmomedia.MimeJPEG,
			Media: &pmomedia.MediaInfo{
				Type:  pmomedia.TypeImage,
				Image: &pmomedia.ImageInfo{Format: "jpeg", Width: c.w, Height: c.h},
			},
		}
		if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != c.want {
			t.Errorf("%dx%d JPEG = %q, want %q", c.w, c.h, pn, c.want)
		}
	}
}

func TestResolveProfileIDAudio(t *testing.T) {
	facts := &ItemFacts{MimeType: pmomedia.MimeMP3}
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "MP3" {
		t.Errorf("MP3 = %q, want MP3", pn)
	}

	facts.MimeType = "audio/L16;rate=44100;channels=2"
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "LPCM" {
		t.Errorf("LPCM = %q, want LPCM", pn)
	}

	facts.MimeType = pmomedia.MimeWAV
	if pn := ResolveProfileID(pnRenderer(), facts, LocaleNA); pn != "LPCM" {
		t.Errorf("WAV = %q, want LPCM", pn)
	}
}

func TestResolveProfileIDOverride(t *testing.T) {
	renderer := pnRenderer()
	renderer.ProfileOverrides = map[string]string{"MPEG_PS_PAL": "MPEG_PS_PAL_XAC3"}
	facts := &ItemFacts{MimeType: pmomedia.MimeMPEG, Media: &pmomedia.MediaInfo{Type: pmomedia.TypeVideo}}
	if pn := ResolveProfileID(renderer, facts, LocaleEU); pn != "MPEG_PS_PAL_XAC3" {
		t.Errorf("overridden profile = %q, want MPEG_PS_PAL_XAC3", pn)
	}
	if pn := ResolveProfileID(renderer, facts, LocaleNA); pn != "MPEG_PS_NTSC" {
		t.Errorf("non-overridden profile = %q, want MPEG_PS_NTSC", pn)
	}
}
