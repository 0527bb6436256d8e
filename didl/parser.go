package didl

import (
	"errors"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	log "github.com/sirupsen/logrus"
)

// ErrNotDIDL is returned when the document's root element is not
// DIDL-Lite. Anything past the root is handled leniently, but a wrong
// root means we were handed the wrong document altogether.
var ErrNotDIDL = errors.New("didl: root element is not DIDL-Lite")

// Parse reconstructs a document from DIDL-Lite XML. The parser is
// deliberately forgiving: malformed attributes are dropped, unknown
// elements are logged and skipped, and a missing title or class is only
// warned about. One bad item must never take down the whole listing.
func Parse(data []byte) (*Document, error) {
	xmlDoc := etree.NewDocument()
	if err := xmlDoc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	root := xmlDoc.Root()
	if root == nil || root.Tag != "DIDL-Lite" {
		return nil, ErrNotDIDL
	}

	doc := &Document{}
	for _, child := range root.ChildElements() {
		switch child.Tag {
		case "container":
			doc.Objects = append(doc.Objects, parseObject(child, true))
		case "item":
			doc.Objects = append(doc.Objects, parseObject(child, false))
		case "desc":
			doc.Descs = append(doc.Descs, parseDesc(child))
		default:
			log.Debugf("ignoring unknown DIDL-Lite element <%s>", child.Tag)
		}
	}
	return doc, nil
}

func parseObject(elem *etree.Element, container bool) *Object {
	obj := &Object{ChildCount: -1}
	obj.ID = elem.SelectAttrValue("id", "")
	obj.ParentID = elem.SelectAttrValue("parentID", "")
	obj.Restricted = parseBool(elem.SelectAttrValue("restricted", ""))
	if container {
		obj.Kind = KindContainer
		if v, ok := parseInt(elem.SelectAttrValue("childCount", "")); ok {
			obj.ChildCount = v
		}
		obj.Searchable = parseBool(elem.SelectAttrValue("searchable", ""))
	} else {
		obj.Kind = KindItem
		obj.RefID = elem.SelectAttrValue("refID", "")
	}

	for _, child := range elem.ChildElements() {
		parseObjectChild(obj, child, container)
	}

	if obj.Class != "" {
		obj.Kind = KindForClass(obj.Class)
		if container && !obj.Kind.IsContainer() {
			// An item class inside <container> is the document's bug,
			// keep the container shape we saw on the wire.
			obj.Kind = KindContainer
		}
	}

	if obj.Title == "" {
		log.Warnf("❌ parsed DIDL object %s has no dc:title", obj.ID)
	}
	if obj.Class == "" {
		log.Warnf("❌ parsed DIDL object %s has no upnp:class", obj.ID)
	}
	return obj
}

func parseObjectChild(obj *Object, child *etree.Element, container bool) {
	space := child.NamespaceURI()
	switch {
	case child.Tag == "res" && (space == "" || space == NamespaceDIDL):
		obj.AddRes(parseRes(child))
		return
	case child.Tag == "desc" && (space == "" || space == NamespaceDIDL):
		obj.AddDesc(parseDesc(child))
		return
	case container && child.Tag == "container" && (space == "" || space == NamespaceDIDL):
		// Nested containers are legal DIDL but nothing we produce or
		// consume; skip the subtree.
		log.Debugf("ignoring nested container under %s", obj.ID)
		return
	case container && child.Tag == "item" && (space == "" || space == NamespaceDIDL):
		log.Debugf("ignoring nested item under %s", obj.ID)
		return
	}

	switch {
	case space == NamespaceDC && child.Tag == "title":
		obj.Title = child.Text()
		return
	case space == NamespaceDC && child.Tag == "creator":
		obj.Creator = child.Text()
		return
	case space == NamespaceUPnP && child.Tag == "class":
		obj.Class = child.Text()
		return
	}

	kind := KindForElement(space, child.Tag)
	if kind == PropUnknown {
		log.Debugf("dropping unknown element <%s> (namespace %s) on object %s", child.Tag, space, obj.ID)
		return
	}
	p := NewProperty(kind, child.Text())
	for _, attr := range child.Attr {
		if attr.Space == "xmlns" || attr.Key == "xmlns" {
			continue
		}
		p.WithAttr(attr.FullKey(), attr.Value)
	}
	obj.Props.Add(p)
}

func parseRes(elem *etree.Element) *Res {
	r := &Res{Value: strings.TrimSpace(elem.Text())}
	r.ProtocolInfo = elem.SelectAttrValue("protocolInfo", "")
	r.Duration = elem.SelectAttrValue("duration", "")
	r.Resolution = elem.SelectAttrValue("resolution", "")
	if v, ok := parseInt64(elem.SelectAttrValue("size", "")); ok {
		r.Size = v
	}
	if v, ok := parseInt(elem.SelectAttrValue("bitrate", "")); ok {
		r.Bitrate = v
	}
	if v, ok := parseInt(elem.SelectAttrValue("sampleFrequency", "")); ok {
		r.SampleFrequency = v
	}
	if v, ok := parseInt(elem.SelectAttrValue("bitsPerSample", "")); ok {
		r.BitsPerSample = v
	}
	if v, ok := parseInt(elem.SelectAttrValue("nrAudioChannels", "")); ok {
		r.NrAudioChannels = v
	}
	if v, ok := parseInt(elem.SelectAttrValue("colorDepth", "")); ok {
		r.ColorDepth = v
	}
	r.FrameRate = elem.SelectAttrValue("framerate", "")
	return r
}

func parseDesc(elem *etree.Element) *Desc {
	d := &Desc{
		ID:        elem.SelectAttrValue("id", ""),
		Type:      elem.SelectAttrValue("type", ""),
		Namespace: elem.SelectAttrValue("nameSpace", ""),
	}
	children := elem.ChildElements()
	if len(children) == 0 {
		d.Content = strings.TrimSpace(elem.Text())
		return d
	}
	inner := etree.NewDocument()
	for _, child := range children {
		inner.AddChild(child.Copy())
	}
	if s, err := inner.WriteToString(); err == nil {
		d.Content = s
	}
	return d
}

// parseBool accepts the DIDL spellings of a boolean. Anything else is
// false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// parseInt coerces an attribute, dropping the value on malformed input
// instead of failing the parse.
func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func parseInt64(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
