package didl

import "testing"

func TestPropertyListSetUpserts(t *testing.T) {
	var list PropertyList
	list.Set(NewProperty(PropGenre, "Rock"))
	list.Set(NewProperty(PropArtist, "Someone"))
	list.Set(NewProperty(PropGenre, "Jazz"))

	if list.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", list.Len())
	}
	if v := list.Value(PropGenre); v != "Jazz" {
		t.Errorf("genre = %q, want Jazz", v)
	}
	// Replacement keeps the original position.
	if list.Properties()[0].Kind != PropGenre {
		t.Error("Set must replace in place, not reorder")
	}
}

func TestPropertyListAddKeepsDuplicates(t *testing.T) {
	var list PropertyList
	list.Add(NewProperty(PropArtist, "First"))
	list.Add(NewProperty(PropArtist, "Second"))

	all := list.All(PropArtist)
	if len(all) != 2 {
		t.Fatalf("All(artist) = %d entries, want 2", len(all))
	}
	if all[0].Value != "First" || all[1].Value != "Second" {
		t.Error("Add must preserve insertion order")
	}
}

func TestPropertyListByNamespace(t *testing.T) {
	var list PropertyList
	list.Add(NewProperty(PropDate, "2024-01-01"))
	list.Add(NewProperty(PropAlbum, "Album"))
	list.Add(NewProperty(PropCreator, "Creator"))

	dc := list.ByNamespace(NamespaceDC)
	if len(dc) != 2 {
		t.Fatalf("dc namespace = %d entries, want 2", len(dc))
	}
	if dc[0].Kind != PropDate || dc[1].Kind != PropCreator {
		t.Error("ByNamespace must preserve insertion order")
	}
}

func TestKindForElement(t *testing.T) {
	if k := KindForElement(NamespaceUPnP, "albumArtURI"); k != PropAlbumArtURI {
		t.Errorf("albumArtURI kind = %v", k)
	}
	if k := KindForElement(NamespaceSEC, "CaptionInfoEx"); k != PropCaptionInfoEx {
		t.Errorf("CaptionInfoEx kind = %v", k)
	}
	if k := KindForElement(NamespaceUPnP, "noSuchThing"); k != PropUnknown {
		t.Errorf("unknown element kind = %v, want PropUnknown", k)
	}
}

func TestQualifiedName(t *testing.T) {
	if q := PropAlbumArtURI.QualifiedName(); q != "upnp:albumArtURI" {
		t.Errorf("QualifiedName() = %q", q)
	}
	if q := PropDCMInfo.QualifiedName(); q != "sec:dcmInfo" {
		t.Errorf("QualifiedName() = %q", q)
	}
}

func TestKindForClass(t *testing.T) {
	cases := []struct {
		class string
		want  ObjectKind
	}{
		{ClassMusicAlbum, KindMusicAlbum},
		{ClassStorageFolder, KindStorageFolder},
		{ClassMovie, KindMovie},
		{"object.container.album.photoAlbum", KindContainer},
		{"object.item.textItem", KindItem},
		{"something.else", KindItem},
	}
	for _, c := range cases {
		if got := KindForClass(c.class); got != c.want {
			t.Errorf("KindForClass(%q) = %v, want %v", c.class, got, c.want)
		}
	}
}
