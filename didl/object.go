package didl

// UPnP class strings. The class is what renderers actually dispatch on.
const (
	ClassContainer         = "object.container"
	ClassStorageFolder     = "object.container.storageFolder"
	ClassPlaylistContainer = "object.container.playlistContainer"
	ClassMusicAlbum        = "object.container.album.musicAlbum"
	ClassMusicArtist       = "object.container.person.musicArtist"
	ClassMusicGenre        = "object.container.genre.musicGenre"

	ClassItem       = "object.item"
	ClassPhoto      = "object.item.imageItem.photo"
	ClassMusicTrack = "object.item.audioItem.musicTrack"
	ClassVideoItem  = "object.item.videoItem"
	ClassMovie      = "object.item.videoItem.movie"
)

// ObjectKind tags the concrete shape of a DIDL object. The kind is
// decided once at construction and never changes.
type ObjectKind int

const (
	KindContainer ObjectKind = iota
	KindStorageFolder
	KindPlaylistContainer
	KindMusicAlbum
	KindMusicArtist
	KindMusicGenre

	KindItem
	KindPhoto
	KindMusicTrack
	KindVideoItem
	KindMovie
)

var kindClasses = map[ObjectKind]string{
	KindContainer:         ClassContainer,
	KindStorageFolder:     ClassStorageFolder,
	KindPlaylistContainer: ClassPlaylistContainer,
	KindMusicAlbum:        ClassMusicAlbum,
	KindMusicArtist:       ClassMusicArtist,
	KindMusicGenre:        ClassMusicGenre,
	KindItem:              ClassItem,
	KindPhoto:             ClassPhoto,
	KindMusicTrack:        ClassMusicTrack,
	KindVideoItem:         ClassVideoItem,
	KindMovie:             ClassMovie,
}

// Class returns the upnp:class string for the kind.
func (k ObjectKind) Class() string { return kindClasses[k] }

// IsContainer reports whether the kind is a container shape.
func (k ObjectKind) IsContainer() bool { return k <= KindMusicGenre }

// KindForClass classifies a upnp:class string, picking the most
// specific known kind. Unknown subclasses degrade to the generic
// container or item kind; a completely foreign class becomes KindItem.
func KindForClass(class string) ObjectKind {
	switch class {
	case ClassStorageFolder:
		return KindStorageFolder
	case ClassPlaylistContainer:
		return KindPlaylistContainer
	case ClassMusicAlbum:
		return KindMusicAlbum
	case ClassMusicArtist:
		return KindMusicArtist
	case ClassMusicGenre:
		return KindMusicGenre
	case ClassPhoto:
		return KindPhoto
	case ClassMusicTrack:
		return KindMusicTrack
	case ClassVideoItem:
		return KindVideoItem
	case ClassMovie:
		return KindMovie
	}
	if len(class) >= len(ClassContainer) && class[:len(ClassContainer)] == ClassContainer {
		return KindContainer
	}
	return KindItem
}

// Res is one <res> element: a playable or downloadable rendition of the
// object. A Res belongs to exactly one object and is never shared.
type Res struct {
	// Value is the element text, the URL of the rendition.
	Value string

	// ProtocolInfo is the four-field protocol string including the
	// DLNA content features.
	ProtocolInfo string

	// Size in bytes; values <= 0 leave the attribute out.
	Size int64

	// Duration formatted H:MM:SS.mmm.
	Duration string

	// Resolution formatted WxH.
	Resolution string

	Bitrate         int
	SampleFrequency int
	BitsPerSample   int
	NrAudioChannels int
	ColorDepth      int

	// FrameRate as reported by the parser, e.g. "23.976".
	FrameRate string

	// Extra carries vendor attributes with no dedicated field, such as
	// the pv: subtitle hints.
	Extra []Attr
}

// Desc is a <desc> metadata block: an opaque, namespace-qualified
// extension payload renderers may or may not understand. The content is
// kept as raw inner XML, we never interpret it.
type Desc struct {
	ID        string
	Type      string
	Namespace string
	Content   string
}

// Object is one DIDL-Lite container or item. The Kind tag replaces a
// class hierarchy: container-only fields are meaningful only when
// Kind.IsContainer().
type Object struct {
	Kind ObjectKind

	ID       string
	ParentID string
	// Restricted means the renderer may not modify the object. We
	// always emit true, but the parser preserves what it read.
	Restricted bool
	// RefID points to the main object when this item is a reference
	// (items only).
	RefID string

	Title   string
	Creator string
	// Class overrides Kind.Class() when non-empty; the parser stores
	// the exact class it read here.
	Class string

	Props     PropertyList
	Resources []*Res
	Descs     []*Desc

	// Container fields.

	// ChildCount below zero means unknown and omits the attribute.
	ChildCount int
	Searchable bool
}

// NewContainer builds a container of the given kind with an unknown
// child count.
func NewContainer(kind ObjectKind, id, parentID, title string) *Object {
	return &Object{
		Kind:       kind,
		ID:         id,
		ParentID:   parentID,
		Title:      title,
		Restricted: true,
		ChildCount: -1,
	}
}

// NewItem builds an item of the given kind.
func NewItem(kind ObjectKind, id, parentID, title string) *Object {
	return &Object{
		Kind:       kind,
		ID:         id,
		ParentID:   parentID,
		Title:      title,
		Restricted: true,
		ChildCount: -1,
	}
}

// UpnpClass returns the effective upnp:class: the parsed one when
// present, the kind's canonical one otherwise.
func (o *Object) UpnpClass() string {
	if o.Class != "" {
		return o.Class
	}
	return o.Kind.Class()
}

// IsContainer reports whether the object serializes as <container>.
func (o *Object) IsContainer() bool { return o.Kind.IsContainer() }

// AddRes appends a resource, ignoring nil.
func (o *Object) AddRes(r *Res) {
	if r != nil {
		o.Resources = append(o.Resources, r)
	}
}

// AddDesc appends a metadata block, ignoring nil.
func (o *Object) AddDesc(d *Desc) {
	if d != nil {
		o.Descs = append(o.Descs, d)
	}
}

// Document is the content of one DIDL-Lite element: the top level
// objects plus any document level desc blocks.
type Document struct {
	Objects []*Object
	Descs   []*Desc
}
