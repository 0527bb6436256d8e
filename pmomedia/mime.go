package pmomedia

// MIME types as sent to renderers. Several renderers key their playback
// decision on these exact strings, so they are not normalized further.
const (
	MimeDivX     = "video/x-divx"
	MimeAVI      = "video/avi"
	MimeWMV      = "video/x-ms-wmv"
	MimeASF      = "video/x-ms-asf"
	MimeMPEG     = "video/mpeg"
	MimeMPEGTS   = "video/mp2t"
	MimeMP4      = "video/mp4"
	MimeMatroska = "video/x-matroska"
	MimeHLS      = "application/x-mpegURL"
	MimeHLSApple = "application/vnd.apple.mpegurl"

	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeGIF  = "image/gif"

	MimeMP3  = "audio/mpeg"
	MimeWAV  = "audio/wav"
	MimeLPCM = "audio/L16"
)
