package didl

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	log "github.com/sirupsen/logrus"
)

// ErrMissingClass is returned when an object reaches the generator
// without any upnp:class, which happens only for an ObjectKind outside
// the known set. Emitting a classless container would be rejected by
// every renderer, so this is treated as an upstream programming error
// rather than degraded output.
var ErrMissingClass = errors.New("didl: object without upnp:class")

// Generate serializes a document to DIDL-Lite XML. The output carries
// no XML prolog: several renderers reject SOAP bodies with an embedded
// prolog.
func Generate(doc *Document) (string, error) {
	xmlDoc := etree.NewDocument()
	root := xmlDoc.CreateElement("DIDL-Lite")
	root.CreateAttr("xmlns", NamespaceDIDL)
	root.CreateAttr("xmlns:upnp", NamespaceUPnP)
	root.CreateAttr("xmlns:dc", NamespaceDC)
	root.CreateAttr("xmlns:dlna", NamespaceDLNA)
	root.CreateAttr("xmlns:sec", NamespaceSEC)
	root.CreateAttr("xmlns:pv", NamespacePV)

	if doc != nil {
		for _, obj := range doc.Objects {
			if obj == nil {
				continue
			}
			elem, err := obj.ToXMLElement()
			if err != nil {
				return "", err
			}
			root.AddChild(elem)
		}
		for _, d := range doc.Descs {
			if d == nil {
				continue
			}
			root.AddChild(d.toXMLElement())
		}
	}

	return xmlDoc.WriteToString()
}

// ToXMLElement serializes one object as its <container> or <item>
// element.
func (o *Object) ToXMLElement() (*etree.Element, error) {
	class := o.UpnpClass()
	if class == "" {
		return nil, fmt.Errorf("%w (id=%s)", ErrMissingClass, o.ID)
	}
	if o.Title == "" {
		log.Warnf("❌ DIDL object %s has no dc:title", o.ID)
	}

	name := "item"
	if o.IsContainer() {
		name = "container"
	}
	elem := etree.NewElement(name)
	elem.CreateAttr("id", o.ID)
	elem.CreateAttr("parentID", o.ParentID)
	elem.CreateAttr("restricted", boolAttr(o.Restricted))
	if o.IsContainer() {
		if o.ChildCount >= 0 {
			elem.CreateAttr("childCount", strconv.Itoa(o.ChildCount))
		}
		if o.Searchable {
			elem.CreateAttr("searchable", "1")
		}
	} else if o.RefID != "" {
		elem.CreateAttr("refID", o.RefID)
	}

	title := elem.CreateElement("dc:title")
	title.SetText(o.Title)
	if o.Creator != "" {
		creator := elem.CreateElement("dc:creator")
		creator.SetText(o.Creator)
	}
	appendProperties(elem, o.Props.ByNamespace(NamespaceDC))

	classElem := elem.CreateElement("upnp:class")
	classElem.SetText(class)
	appendProperties(elem, o.Props.ByNamespace(NamespaceUPnP))

	if !o.IsContainer() {
		appendProperties(elem, o.Props.ByNamespace(NamespaceSEC))
		appendProperties(elem, o.Props.ByNamespace(NamespacePV))
	}

	for _, r := range o.Resources {
		if r != nil {
			elem.AddChild(r.ToXMLElement())
		}
	}
	for _, d := range o.Descs {
		if d != nil {
			elem.AddChild(d.toXMLElement())
		}
	}
	return elem, nil
}

func appendProperties(elem *etree.Element, props []*Property) {
	for _, p := range props {
		child := elem.CreateElement(p.Kind.QualifiedName())
		for _, attr := range p.Attrs {
			child.CreateAttr(attr.Name, attr.Value)
		}
		child.SetText(p.Value)
	}
}

// ToXMLElement serializes a <res> element. Zero-valued attributes are
// left out entirely.
func (r *Res) ToXMLElement() *etree.Element {
	elem := etree.NewElement("res")
	if r.ProtocolInfo != "" {
		elem.CreateAttr("protocolInfo", r.ProtocolInfo)
	}
	if r.Size > 0 {
		elem.CreateAttr("size", strconv.FormatInt(r.Size, 10))
	}
	if r.Duration != "" {
		elem.CreateAttr("duration", r.Duration)
	}
	if r.Resolution != "" {
		elem.CreateAttr("resolution", r.Resolution)
	}
	if r.Bitrate > 0 {
		elem.CreateAttr("bitrate", strconv.Itoa(r.Bitrate))
	}
	if r.SampleFrequency > 0 {
		elem.CreateAttr("sampleFrequency", strconv.Itoa(r.SampleFrequency))
	}
	if r.BitsPerSample > 0 {
		elem.CreateAttr("bitsPerSample", strconv.Itoa(r.BitsPerSample))
	}
	if r.NrAudioChannels > 0 {
		elem.CreateAttr("nrAudioChannels", strconv.Itoa(r.NrAudioChannels))
	}
	if r.ColorDepth > 0 {
		elem.CreateAttr("colorDepth", strconv.Itoa(r.ColorDepth))
	}
	if r.FrameRate != "" {
		elem.CreateAttr("framerate", r.FrameRate)
	}
	for _, attr := range r.Extra {
		elem.CreateAttr(attr.Name, attr.Value)
	}
	elem.SetText(r.Value)
	return elem
}

func (d *Desc) toXMLElement() *etree.Element {
	elem := etree.NewElement("desc")
	if d.ID != "" {
		elem.CreateAttr("id", d.ID)
	}
	if d.Type != "" {
		elem.CreateAttr("type", d.Type)
	}
	if d.Namespace != "" {
		elem.CreateAttr("nameSpace", d.Namespace)
	}
	if d.Content != "" {
		// Content may hold several sibling elements, wrap it to parse.
		inner := etree.NewDocument()
		if err := inner.ReadFromString("<x>" + d.Content + "</x>"); err == nil && inner.Root() != nil && len(inner.Root().ChildElements()) > 0 {
			for _, child := range inner.Root().ChildElements() {
				elem.AddChild(child.Copy())
			}
		} else {
			elem.SetText(d.Content)
		}
	}
	return elem
}

func boolAttr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
