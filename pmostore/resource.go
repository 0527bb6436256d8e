// Package pmostore holds the browsable media tree the ContentDirectory
// service exposes and the mapping from tree entries to DIDL-Lite
// objects. The store itself is fed by the library scanner; mapping is a
// pure function of one entry, one renderer profile and one request.
package pmostore

import (
	"math"
	"sync"
	"time"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmomedia"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmotrans"
)

// TransSize is the advertised size of streams whose real size is
// unknowable (live transcodes, unparsed media). The value is the
// largest size legacy renderers accept without arithmetic overflow.
const TransSize = int64(math.MaxInt64 - math.MaxInt32 - 1)

// Resource is one entry of the media tree.
type Resource interface {
	ResourceID() string
	ResourceParentID() string
	DisplayName() string
	// ThumbnailImageInfo returns the parsed facts of the cached
	// thumbnail, or nil when none exists yet.
	ThumbnailImageInfo() *pmomedia.ImageInfo
}

// Resume marks an item the user stopped partway through.
type Resume struct {
	// Offset into the stream, in seconds.
	Offset float64
}

// PlaybackStatus is the per-item playback bookkeeping.
type PlaybackStatus struct {
	PlaybackCount        int
	LastPlaybackTime     string
	LastPlaybackPosition string
	// Bookmark is the Samsung resume position in seconds.
	Bookmark int
}

// Container is a browsable folder. Children are attached lazily: a
// container fresh out of the scanner has Discovered false and no
// children until a renderer opens it.
type Container struct {
	mu sync.RWMutex

	ID       string
	ParentID string
	Name     string

	// Class overrides the default storageFolder class for virtual
	// folders backed by library queries (albums, artists, genres).
	Class    string
	Playlist bool
	DVDImage bool

	// FakeParentID is set when a legacy console browses us through one
	// of its own hardwired music folder ids.
	FakeParentID string

	Thumbnail *pmomedia.ImageInfo

	discovered bool
	children   []Resource
}

func (c *Container) ResourceID() string       { return c.ID }
func (c *Container) ResourceParentID() string { return c.ParentID }
func (c *Container) DisplayName() string      { return c.Name }

func (c *Container) ThumbnailImageInfo() *pmomedia.ImageInfo { return c.Thumbnail }

// Discovered reports whether the container's children were scanned.
func (c *Container) Discovered() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.discovered
}

// ChildrenCount returns the number of attached children.
func (c *Container) ChildrenCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.children)
}

// Children returns a snapshot of the attached children.
func (c *Container) Children() []Resource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Resource, len(c.children))
	copy(out, c.children)
	return out
}

// AddChild attaches a child resource.
func (c *Container) AddChild(r Resource) {
	if r == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children = append(c.children, r)
}

// SetDiscovered marks the container as scanned.
func (c *Container) SetDiscovered() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discovered = true
}

// Item is a playable entry.
type Item struct {
	ID       string
	ParentID string
	Name     string
	FileName string

	LastModified time.Time

	Media     *pmomedia.MediaInfo
	AudioMeta *pmomedia.AudioMetadata
	VideoMeta *pmomedia.VideoMetadata

	// Subtitle is the subtitle stream selected for this item, nil when
	// none applies.
	Subtitle *pmomedia.SubtitleTrack

	// Transcoding is nil when the item streams unmodified.
	Transcoding *pmotrans.Settings

	Resume      *Resume
	FullyPlayed bool
	Status      *PlaybackStatus

	// Thumbnail overrides the parser-embedded thumbnail facts when the
	// cover cache produced its own.
	Thumbnail *pmomedia.ImageInfo
}

func (i *Item) ResourceID() string       { return i.ID }
func (i *Item) ResourceParentID() string { return i.ParentID }
func (i *Item) DisplayName() string      { return i.Name }

// Transcoded reports whether the item is delivered through an engine.
func (i *Item) Transcoded() bool { return i.Transcoding != nil }

func (i *Item) ThumbnailImageInfo() *pmomedia.ImageInfo {
	if i.Thumbnail != nil {
		return i.Thumbnail
	}
	if i.Media != nil {
		return i.Media.Thumbnail
	}
	return nil
}

// MediaType classifies the item, falling back on the MIME type when the
// parser never ran.
func (i *Item) MediaType() pmomedia.MediaType {
	if i.Media != nil && i.Media.Type != pmomedia.TypeUnknown {
		return i.Media.Type
	}
	mime := ""
	if i.Media != nil {
		mime = i.Media.MimeType
	}
	switch {
	case len(mime) >= 6 && mime[:6] == "audio/":
		return pmomedia.TypeAudio
	case len(mime) >= 6 && mime[:6] == "image/":
		return pmomedia.TypeImage
	case len(mime) >= 6 && mime[:6] == "video/":
		return pmomedia.TypeVideo
	}
	return pmomedia.TypeUnknown
}

// RendererMimeType is the MIME type the renderer will actually get:
// the source type when streaming, the transcode target's otherwise.
func (i *Item) RendererMimeType() string {
	format := i.Transcoding.EncodingFormat()
	if format == nil {
		if i.Media != nil && i.Media.MimeType != "" {
			return i.Media.MimeType
		}
		return "*"
	}
	switch format.Container {
	case pmotrans.ContainerHLS:
		return pmomedia.MimeHLS
	case pmotrans.ContainerMPEGTS, pmotrans.ContainerMPEGPS:
		return pmomedia.MimeMPEG
	case pmotrans.ContainerMP4:
		return pmomedia.MimeMP4
	case pmotrans.ContainerWMV:
		return pmomedia.MimeWMV
	case pmotrans.ContainerMP3:
		return pmomedia.MimeMP3
	case pmotrans.ContainerWAV:
		return pmomedia.MimeWAV
	case pmotrans.ContainerLPCM:
		return pmomedia.MimeLPCM + ";rate=44100;channels=2"
	}
	return pmomedia.MimeMPEG
}
