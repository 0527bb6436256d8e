// Package pmotrans describes the active transcoding setup for a stream.
// The transcoding itself happens elsewhere; this package only carries
// the facts the DLNA negotiation needs: which engine runs and what it
// will output.
package pmotrans

import "gargoton.petite-maison-orange.fr/eric/pmoserv/pmomedia"

// Container is the output container target of a transcode.
type Container string

const (
	ContainerMPEGPS Container = "mpegps"
	ContainerMPEGTS Container = "mpegts"
	ContainerMP4    Container = "mp4"
	ContainerHLS    Container = "hls"
	ContainerWMV    Container = "wmv"
	ContainerMP3    Container = "mp3"
	ContainerWAV    Container = "wav"
	ContainerLPCM   Container = "lpcm"
)

// EncodingFormat is the full output target: container plus the video and
// audio codecs the engine was asked to produce. Codec fields may be
// empty when the engine default applies.
type EncodingFormat struct {
	Container  Container
	VideoCodec string // pmomedia codec id, e.g. pmomedia.CodecH264
	AudioCodec string
}

func (f *EncodingFormat) IsTranscodeToMPEGTS() bool {
	return f != nil && (f.Container == ContainerMPEGTS || f.Container == ContainerHLS)
}

func (f *EncodingFormat) IsTranscodeToHLS() bool { return f != nil && f.Container == ContainerHLS }
func (f *EncodingFormat) IsTranscodeToMP4() bool { return f != nil && f.Container == ContainerMP4 }
func (f *EncodingFormat) IsTranscodeToWMV() bool { return f != nil && f.Container == ContainerWMV }
func (f *EncodingFormat) IsTranscodeToMP3() bool { return f != nil && f.Container == ContainerMP3 }
func (f *EncodingFormat) IsTranscodeToWAV() bool { return f != nil && f.Container == ContainerWAV }

func (f *EncodingFormat) IsTranscodeToH264() bool {
	return f != nil && f.VideoCodec == pmomedia.CodecH264
}

func (f *EncodingFormat) IsTranscodeToMPEG2() bool {
	return f != nil && f.VideoCodec == pmomedia.CodecMPEG2
}

func (f *EncodingFormat) IsTranscodeToAAC() bool {
	return f != nil && (f.AudioCodec == pmomedia.CodecAACLC || f.AudioCodec == pmomedia.CodecHEAAC)
}

func (f *EncodingFormat) IsTranscodeToAC3() bool {
	return f != nil && f.AudioCodec == pmomedia.CodecAC3
}
