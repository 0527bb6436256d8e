package didl

import (
	"testing"
)

const sampleDoc = `<DIDL-Lite xmlns="urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/" xmlns:upnp="urn:schemas-upnp-org:metadata-1-0/upnp/" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dlna="urn:schemas-dlna-org:metadata-1-0/" xmlns:sec="http://www.sec.co.kr/" xmlns:pv="http://www.pv.com/pvns/">` +
	`<container id="1$4" parentID="1" restricted="1" childCount="3" searchable="1">` +
	`<dc:title>An Album</dc:title>` +
	`<upnp:class>object.container.album.musicAlbum</upnp:class>` +
	`<upnp:artist>Somebody</upnp:artist>` +
	`</container>` +
	`<item id="1$4$1" parentID="1$4" restricted="1">` +
	`<dc:title>Track One</dc:title>` +
	`<dc:creator>Somebody</dc:creator>` +
	`<upnp:class>object.item.audioItem.musicTrack</upnp:class>` +
	`<upnp:albumArtURI dlna:profileID="JPEG_TN">http://10.0.0.2:5002/thumb/1</upnp:albumArtURI>` +
	`<res protocolInfo="http-get:*:audio/mpeg:DLNA.ORG_PN=MP3" size="5120" duration="0:03:25.000" bitrate="320000">http://10.0.0.2:5002/media/1</res>` +
	`</item>` +
	`</DIDL-Lite>`

func TestParseSampleDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Objects) != 2 {
		t.Fatalf("parsed %d objects, want 2", len(doc.Objects))
	}

	album := doc.Objects[0]
	if !album.IsContainer() || album.Kind != KindMusicAlbum {
		t.Errorf("album kind = %v", album.Kind)
	}
	if album.ID != "1$4" || album.ParentID != "1" || album.Title != "An Album" {
		t.Errorf("album identity = %q/%q/%q", album.ID, album.ParentID, album.Title)
	}
	if album.ChildCount != 3 || !album.Searchable {
		t.Errorf("album childCount/searchable = %d/%v", album.ChildCount, album.Searchable)
	}
	if v := album.Props.Value(PropArtist); v != "Somebody" {
		t.Errorf("album artist = %q", v)
	}

	track := doc.Objects[1]
	if track.IsContainer() || track.Kind != KindMusicTrack {
		t.Errorf("track kind = %v", track.Kind)
	}
	if len(track.Resources) != 1 {
		t.Fatalf("track has %d resources, want 1", len(track.Resources))
	}
	res := track.Resources[0]
	if res.Value != "http://10.0.0.2:5002/media/1" || res.Size != 5120 || res.Bitrate != 320000 {
		t.Errorf("res = %+v", res)
	}
	art := track.Props.Get(PropAlbumArtURI)
	if art == nil || len(art.Attrs) != 1 || art.Attrs[0].Value != "JPEG_TN" {
		t.Errorf("albumArtURI = %+v", art)
	}
}

func TestParseRejectsForeignRoot(t *testing.T) {
	if _, err := Parse([]byte(`<notdidl/>`)); err == nil {
		t.Error("foreign root must be rejected")
	}
}

func TestParseMalformedAttributesAreDropped(t *testing.T) {
	xml := `<DIDL-Lite xmlns="urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:upnp="urn:schemas-upnp-org:metadata-1-0/upnp/">` +
		`<container id="1" parentID="0" restricted="maybe" childCount="lots">` +
		`<dc:title>Odd</dc:title><upnp:class>object.container</upnp:class>` +
		`</container></DIDL-Lite>`
	doc, err := Parse([]byte(xml))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := doc.Objects[0]
	if c.Restricted {
		t.Error("unparseable restricted must default to false")
	}
	if c.ChildCount != -1 {
		t.Errorf("unparseable childCount = %d, want -1 (unknown)", c.ChildCount)
	}
}

func TestParseDropsUnknownElements(t *testing.T) {
	xml := `<DIDL-Lite xmlns="urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:upnp="urn:schemas-upnp-org:metadata-1-0/upnp/">` +
		`<item id="1" parentID="0" restricted="1">` +
		`<dc:title>X</dc:title><upnp:class>object.item</upnp:class>` +
		`<upnp:noSuchElement>ignored</upnp:noSuchElement>` +
		`</item></DIDL-Lite>`
	doc, err := Parse([]byte(xml))
	if err != nil {
		t.Fatalf("unknown element must not abort the parse: %v", err)
	}
	if doc.Objects[0].Props.Len() != 0 {
		t.Error("unknown element must be dropped, not stored")
	}
}

func TestParseIgnoresNestedContainers(t *testing.T) {
	xml := `<DIDL-Lite xmlns="urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:upnp="urn:schemas-upnp-org:metadata-1-0/upnp/">` +
		`<container id="1" parentID="0" restricted="1">` +
		`<dc:title>Outer</dc:title><upnp:class>object.container</upnp:class>` +
		`<container id="2" parentID="1" restricted="1"><dc:title>Inner</dc:title></container>` +
		`</container></DIDL-Lite>`
	doc, err := Parse([]byte(xml))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Objects) != 1 {
		t.Errorf("nested container must not surface as a top level object")
	}
}

func TestRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	xml, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	doc2, err := Parse([]byte(xml))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	if len(doc2.Objects) != len(doc.Objects) {
		t.Fatalf("round trip changed object count: %d != %d", len(doc2.Objects), len(doc.Objects))
	}
	for i := range doc.Objects {
		a, b := doc.Objects[i], doc2.Objects[i]
		if a.ID != b.ID || a.ParentID != b.ParentID || a.Title != b.Title || a.UpnpClass() != b.UpnpClass() {
			t.Errorf("object %d identity drifted: %+v vs %+v", i, a, b)
		}
		if len(a.Resources) != len(b.Resources) {
			t.Errorf("object %d resource count drifted", i)
		}
	}
}
