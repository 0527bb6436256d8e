package pmostore

import "testing"

func testTree() (*Store, *Container) {
	root := &Container{ID: "0", ParentID: "-1", Name: "root"}
	store := NewStore(root)

	films := &Container{ID: "1", ParentID: "0", Name: "Films"}
	store.Attach(root, films)
	store.Attach(films, videoItem("1$1"))
	store.Attach(films, &Item{ID: "1$2", ParentID: "1", Name: "holiday.mp4"})
	films.SetDiscovered()
	return store, films
}

func TestStoreGet(t *testing.T) {
	store, films := testTree()

	if r, ok := store.Get("1"); !ok || r != Resource(films) {
		t.Error("lookup by id failed")
	}
	if _, ok := store.Get("nope"); ok {
		t.Error("unknown id found")
	}
}

func TestStoreGetStripsQuirkSuffix(t *testing.T) {
	store, films := testTree()
	if r, ok := store.Get("1$"); !ok || r != Resource(films) {
		t.Error("decorated id must resolve to the plain resource")
	}
}

func TestStoreUpdateID(t *testing.T) {
	root := &Container{ID: "0", ParentID: "-1", Name: "root"}
	store := NewStore(root)
	if store.SystemUpdateID() != 0 {
		t.Error("fresh store must start at update 0")
	}
	store.Attach(root, &Item{ID: "a", ParentID: "0", Name: "a.mp3"})
	store.Attach(root, &Item{ID: "b", ParentID: "0", Name: "b.mp3"})
	if got := store.SystemUpdateID(); got != 2 {
		t.Errorf("SystemUpdateID = %d, want 2", got)
	}
}

func TestStoreSearch(t *testing.T) {
	store, _ := testTree()

	if got := store.Search("HOLIDAY"); len(got) != 1 || got[0].ResourceID() != "1$2" {
		t.Errorf("search = %v", got)
	}
	if got := store.Search("films"); len(got) != 1 {
		t.Errorf("container search = %v", got)
	}
	if got := store.Search("zzz"); len(got) != 0 {
		t.Errorf("no-match search = %v", got)
	}
}
