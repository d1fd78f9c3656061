package cache

import "sync"

// Cache tags. Mutations and webhooks invalidate these selectively so related
// cached responses drop together without clearing the whole store.
const (
	TagProducts    = "products"
	TagCollections = "collections"
	TagCart        = "cart"
)

// Store is an in-memory response cache with tag-indexed invalidation. It is
// the stand-in for a hosting framework's tagged revalidation primitive:
// responses are stored under a key and associated with zero or more tags, and
// invalidating a tag drops exactly the entries carrying it.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	byTag   map[string]map[string]struct{}
}

type entry struct {
	body []byte
	tags []string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		byTag:   make(map[string]map[string]struct{}),
	}
}

// Get returns the cached body for key, if present.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.body, true
}

// Set stores body under key and indexes it by the given tags. An existing
// entry under the same key is replaced and unlinked from its old tags.
func (s *Store) Set(key string, body []byte, tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.entries[key]; ok {
		s.unlink(key, old.tags)
	}
	s.entries[key] = entry{body: body, tags: tags}
	for _, tag := range tags {
		keys, ok := s.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			s.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// InvalidateTag drops every entry carrying the tag and returns how many were
// removed.
func (s *Store) InvalidateTag(tag string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := s.byTag[tag]
	if !ok {
		return 0
	}
	n := 0
	for key := range keys {
		e, ok := s.entries[key]
		if !ok {
			continue
		}
		delete(s.entries, key)
		s.unlink(key, e.tags)
		n++
	}
	delete(s.byTag, tag)
	return n
}

// Len reports the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// unlink removes key from the tag index. Caller holds the write lock.
func (s *Store) unlink(key string, tags []string) {
	for _, tag := range tags {
		if keys, ok := s.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(s.byTag, tag)
			}
		}
	}
}
