// Package didl models DIDL-Lite documents: the containers, items,
// resources and namespaced properties exchanged with renderers through
// the ContentDirectory service. Objects are built fresh for every
// response, handed to the generator and thrown away; nothing in here is
// shared or mutated after serialization starts.
package didl

// XML namespaces of a DIDL-Lite document.
const (
	NamespaceDIDL = "urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/"
	NamespaceDC   = "http://purl.org/dc/elements/1.1/"
	NamespaceUPnP = "urn:schemas-upnp-org:metadata-1-0/upnp/"
	NamespaceDLNA = "urn:schemas-dlna-org:metadata-1-0/"
	NamespaceSEC  = "http://www.sec.co.kr/"
	NamespacePV   = "http://www.pv.com/pvns/"
)

// PropertyKind enumerates every namespaced property we read or write.
// The kind fixes the namespace and qualified name once; callers never
// deal in raw element names.
type PropertyKind int

const (
	PropUnknown PropertyKind = iota

	// dc: properties.
	PropTitle
	PropCreator
	PropDate
	PropDescription
	PropPublisher
	PropLanguage

	// upnp: properties.
	PropClass
	PropArtist
	PropAlbum
	PropAlbumArtURI
	PropGenre
	PropOriginalTrackNumber
	PropActor
	PropDirector
	PropLongDescription
	PropRating
	PropEpisodeNumber
	PropEpisodeSeason
	PropSeriesTitle
	PropProgramTitle
	PropAuthor
	PropPlaybackCount
	PropLastPlaybackTime
	PropLastPlaybackPosition

	// sec: properties (Samsung extensions).
	PropCaptionInfoEx
	PropDCMInfo

	// pv: properties.
	PropModificationDate
)

type propertyName struct {
	space  string
	prefix string
	local  string
}

var propertyNames = map[PropertyKind]propertyName{
	PropTitle:       {NamespaceDC, "dc", "title"},
	PropCreator:     {NamespaceDC, "dc", "creator"},
	PropDate:        {NamespaceDC, "dc", "date"},
	PropDescription: {NamespaceDC, "dc", "description"},
	PropPublisher:   {NamespaceDC, "dc", "publisher"},
	PropLanguage:    {NamespaceDC, "dc", "language"},

	PropClass:                {NamespaceUPnP, "upnp", "class"},
	PropArtist:               {NamespaceUPnP, "upnp", "artist"},
	PropAlbum:                {NamespaceUPnP, "upnp", "album"},
	PropAlbumArtURI:          {NamespaceUPnP, "upnp", "albumArtURI"},
	PropGenre:                {NamespaceUPnP, "upnp", "genre"},
	PropOriginalTrackNumber:  {NamespaceUPnP, "upnp", "originalTrackNumber"},
	PropActor:                {NamespaceUPnP, "upnp", "actor"},
	PropDirector:             {NamespaceUPnP, "upnp", "director"},
	PropLongDescription:      {NamespaceUPnP, "upnp", "longDescription"},
	PropRating:               {NamespaceUPnP, "upnp", "rating"},
	PropEpisodeNumber:        {NamespaceUPnP, "upnp", "episodeNumber"},
	PropEpisodeSeason:        {NamespaceUPnP, "upnp", "episodeSeason"},
	PropSeriesTitle:          {NamespaceUPnP, "upnp", "seriesTitle"},
	PropProgramTitle:         {NamespaceUPnP, "upnp", "programTitle"},
	PropAuthor:               {NamespaceUPnP, "upnp", "author"},
	PropPlaybackCount:        {NamespaceUPnP, "upnp", "playbackCount"},
	PropLastPlaybackTime:     {NamespaceUPnP, "upnp", "lastPlaybackTime"},
	PropLastPlaybackPosition: {NamespaceUPnP, "upnp", "lastPlaybackPosition"},

	PropCaptionInfoEx: {NamespaceSEC, "sec", "CaptionInfoEx"},
	PropDCMInfo:       {NamespaceSEC, "sec", "dcmInfo"},

	PropModificationDate: {NamespacePV, "pv", "modificationDate"},
}

// kindByName is the reverse lookup used by the parser.
var kindByName = func() map[propertyName]PropertyKind {
	m := make(map[propertyName]PropertyKind, len(propertyNames))
	for kind, name := range propertyNames {
		m[propertyName{name.space, "", name.local}] = kind
	}
	return m
}()

// KindForElement maps a namespace URI and local element name to the
// property kind, or PropUnknown.
func KindForElement(space, local string) PropertyKind {
	return kindByName[propertyName{space, "", local}]
}

// Namespace returns the namespace URI the kind serializes under.
func (k PropertyKind) Namespace() string { return propertyNames[k].space }

// Prefix returns the conventional namespace prefix.
func (k PropertyKind) Prefix() string { return propertyNames[k].prefix }

// LocalName returns the unqualified element name.
func (k PropertyKind) LocalName() string { return propertyNames[k].local }

// QualifiedName returns "prefix:local" as written on the wire.
func (k PropertyKind) QualifiedName() string {
	n := propertyNames[k]
	if n.prefix == "" {
		return n.local
	}
	return n.prefix + ":" + n.local
}

// Attr is a dependent property: it serializes as an attribute on its
// owning property element rather than as a child element. The
// dlna:profileID attribute of upnp:albumArtURI is the canonical case.
type Attr struct {
	// Name as written on the wire, prefix included ("dlna:profileID").
	Name  string
	Value string
}

// Property is one namespaced value plus its dependent attributes.
type Property struct {
	Kind  PropertyKind
	Value string
	Attrs []Attr
}

// NewProperty builds a plain property.
func NewProperty(kind PropertyKind, value string) *Property {
	return &Property{Kind: kind, Value: value}
}

// WithAttr appends a dependent attribute and returns the property, for
// chaining during mapping.
func (p *Property) WithAttr(name, value string) *Property {
	p.Attrs = append(p.Attrs, Attr{Name: name, Value: value})
	return p
}

// PropertyList is an ordered collection of properties. Set replaces by
// kind, Add always appends; both are linear scans, fine for the handful
// of properties a DIDL object carries.
type PropertyList struct {
	props []*Property
}

// Set upserts: the first property of the same kind is replaced in
// place, keeping its position; otherwise the property is appended.
func (l *PropertyList) Set(p *Property) {
	if p == nil {
		return
	}
	for i, existing := range l.props {
		if existing.Kind == p.Kind {
			l.props[i] = p
			return
		}
	}
	l.props = append(l.props, p)
}

// Add appends unconditionally, allowing several properties of the same
// kind (multiple upnp:artist entries for instance).
func (l *PropertyList) Add(p *Property) {
	if p == nil {
		return
	}
	l.props = append(l.props, p)
}

// Get returns the first property of the kind, or nil.
func (l *PropertyList) Get(kind PropertyKind) *Property {
	for _, p := range l.props {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

// Value returns the value of the first property of the kind, "" when
// absent.
func (l *PropertyList) Value(kind PropertyKind) string {
	if p := l.Get(kind); p != nil {
		return p.Value
	}
	return ""
}

// All returns every property of the kind, in insertion order.
func (l *PropertyList) All(kind PropertyKind) []*Property {
	var out []*Property
	for _, p := range l.props {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// ByNamespace returns every property living in the namespace, in
// insertion order.
func (l *PropertyList) ByNamespace(space string) []*Property {
	var out []*Property
	for _, p := range l.props {
		if p.Kind.Namespace() == space {
			out = append(out, p)
		}
	}
	return out
}

// Properties exposes the backing slice for iteration. Callers must not
// mutate it.
func (l *PropertyList) Properties() []*Property { return l.props }

// Len returns the number of properties.
func (l *PropertyList) Len() int { return len(l.props) }
