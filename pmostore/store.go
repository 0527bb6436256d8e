package pmostore

import (
	"strings"
	"sync"
	"sync/atomic"
)

// Store indexes the media tree by object id for Browse lookups.
type Store struct {
	mu   sync.RWMutex
	root *Container
	byID map[string]Resource

	updateID atomic.Uint32
}

// NewStore builds a store around the given root container.
func NewStore(root *Container) *Store {
	s := &Store{
		root: root,
		byID: make(map[string]Resource),
	}
	s.byID[root.ID] = root
	return s
}

// Root returns the tree root.
func (s *Store) Root() *Container { return s.root }

// Attach appends a resource under a parent and indexes it.
func (s *Store) Attach(parent *Container, r Resource) {
	if r == nil {
		return
	}
	parent.AddChild(r)

	s.mu.Lock()
	s.byID[r.ResourceID()] = r
	s.mu.Unlock()

	s.updateID.Add(1)
}

// Get looks a resource up by object id. Ids decorated with the legacy
// console suffix resolve to the undecorated resource.
func (s *Store) Get(id string) (Resource, bool) {
	id = strings.TrimSuffix(id, "$")
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	return r, ok
}

// SystemUpdateID returns the monotonically increasing tree version.
func (s *Store) SystemUpdateID() uint32 {
	return s.updateID.Load()
}

// Search walks the whole tree and returns the items and containers whose
// display name contains the term, case-insensitively.
func (s *Store) Search(term string) []Resource {
	term = strings.ToLower(term)
	var out []Resource
	s.walk(s.root, func(r Resource) {
		if strings.Contains(strings.ToLower(r.DisplayName()), term) {
			out = append(out, r)
		}
	})
	return out
}

func (s *Store) walk(c *Container, fn func(Resource)) {
	for _, child := range c.Children() {
		fn(child)
		if sub, ok := child.(*Container); ok {
			s.walk(sub, fn)
		}
	}
}
