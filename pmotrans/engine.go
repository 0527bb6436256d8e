package pmotrans

// EngineID identifies a transcoding engine. The ids match the engine
// registry of the transcode subsystem.
type EngineID string

const (
	EngineTsMuxeR         EngineID = "tsmuxer"
	EngineVLCWebLegacy    EngineID = "vlcwebvideo"
	EngineMEncoder        EngineID = "mencoder"
	EngineFFmpeg          EngineID = "ffmpegvideo"
	EngineVLC             EngineID = "vlctranscoder"
	EngineAviSynthFFmpeg  EngineID = "avsffmpeg"
	EngineAviSynthMEnc    EngineID = "avsmencoder"
	EngineFFmpegAudio     EngineID = "ffmpegaudio"
	EngineTsMuxeRAudio    EngineID = "tsmuxeraudio"
	EngineVLCVideoStream  EngineID = "vlcvideo"
)

// timeSeekable lists the engines able to honour TimeSeekRange requests
// mid-transcode.
var timeSeekable = map[EngineID]bool{
	EngineMEncoder:       true,
	EngineFFmpeg:         true,
	EngineVLC:            true,
	EngineAviSynthFFmpeg: true,
	EngineAviSynthMEnc:   true,
	EngineFFmpegAudio:    true,
}

// alwaysOutputsMPEGTS lists the engines whose output container is
// MPEG-TS no matter what the nominal encoding format says.
var alwaysOutputsMPEGTS = map[EngineID]bool{
	EngineTsMuxeR:        true,
	EngineVLCVideoStream: true,
}

// honoursMPEGTSFlag lists the engines that produce MPEG-TS when the
// encoding format asks for it.
var honoursMPEGTSFlag = map[EngineID]bool{
	EngineMEncoder:       true,
	EngineFFmpeg:         true,
	EngineVLC:            true,
	EngineAviSynthFFmpeg: true,
	EngineAviSynthMEnc:   true,
}

func (id EngineID) IsTimeSeekable() bool      { return timeSeekable[id] }
func (id EngineID) AlwaysOutputsMPEGTS() bool { return alwaysOutputsMPEGTS[id] }
func (id EngineID) HonoursMPEGTSFlag() bool   { return honoursMPEGTSFlag[id] }

// Settings is attached to an item while it is being transcoded. A nil
// *Settings means the stream is passed through unmodified.
type Settings struct {
	Engine EngineID
	Format *EncodingFormat
}

// EncodingFormat returns the output target, or nil.
func (s *Settings) EncodingFormat() *EncodingFormat {
	if s == nil {
		return nil
	}
	return s.Format
}

// EngineID returns the engine identity, or "" when not transcoding.
func (s *Settings) EngineID() EngineID {
	if s == nil {
		return ""
	}
	return s.Engine
}
