package registry

import (
	"slices"
)

type typeRecord struct {
	extensions   []string
	aliases      []string
	descriptions []string
}

type extensionRecord struct {
	// types may contain aliases that were made the default of the extension.
	types []string
}

type aliasRecord struct {
	canonical  string
	extensions []string
}

// orderedMap is a map that remembers the order in which keys were added.
type orderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{values: make(map[string]V)}
}

func (m *orderedMap[V]) get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *orderedMap[V]) has(key string) bool {
	_, ok := m.values[key]
	return ok
}

func (m *orderedMap[V]) set(key string, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *orderedMap[V]) delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}

	delete(m.values, key)
	m.keys, _ = removeValue(m.keys, key)
	return true
}

func (m *orderedMap[V]) len() int {
	return len(m.keys)
}

// state holds the three record sets. It is cloned as a whole for backups.
type state struct {
	types      *orderedMap[*typeRecord]
	extensions *orderedMap[*extensionRecord]
	aliases    *orderedMap[*aliasRecord]
}

func newState() *state {
	return &state{
		types:      newOrderedMap[*typeRecord](),
		extensions: newOrderedMap[*extensionRecord](),
		aliases:    newOrderedMap[*aliasRecord](),
	}
}

func (s *state) clone() *state {
	c := newState()
	for _, k := range s.types.keys {
		t := s.types.values[k]
		c.types.set(k, &typeRecord{
			extensions:   slices.Clone(t.extensions),
			aliases:      slices.Clone(t.aliases),
			descriptions: slices.Clone(t.descriptions),
		})
	}
	for _, k := range s.extensions.keys {
		c.extensions.set(k, &extensionRecord{types: slices.Clone(s.extensions.values[k].types)})
	}
	for _, k := range s.aliases.keys {
		a := s.aliases.values[k]
		c.aliases.set(k, &aliasRecord{canonical: a.canonical, extensions: slices.Clone(a.extensions)})
	}

	return c
}

type keyKind int

const (
	kindUnknown keyKind = iota
	kindType
	kindAlias
)

// resolvedKey is a normalized type key tagged with what it refers to.
type resolvedKey struct {
	kind keyKind
	key  string

	// canonical is the type an alias refers to, or key itself for plain types.
	canonical string
}

func (s *state) resolve(key string) resolvedKey {
	if s.types.has(key) {
		return resolvedKey{kind: kindType, key: key, canonical: key}
	}
	if a, ok := s.aliases.get(key); ok {
		return resolvedKey{kind: kindAlias, key: key, canonical: a.canonical}
	}

	return resolvedKey{kind: kindUnknown, key: key}
}

// unlinkExtension removes the link between the type or alias key and ext.
// The extension record is dropped once no type refers to it anymore.
// Reports whether both directions of the link existed.
func (s *state) unlinkExtension(owner *[]string, key string, ext string) bool {
	var fromOwner, fromExt bool
	*owner, fromOwner = removeValue(*owner, ext)

	if e, ok := s.extensions.get(ext); ok {
		e.types, fromExt = removeValue(e.types, key)
		if len(e.types) == 0 {
			s.extensions.delete(ext)
		}
	}

	return fromOwner && fromExt
}

// appendUnique appends value if list does not contain it yet.
func appendUnique(list []string, value string) []string {
	if slices.Contains(list, value) {
		return list
	}

	return append(list, value)
}

// removeValue removes the first occurrence of value and reports whether it was found.
func removeValue(list []string, value string) ([]string, bool) {
	i := slices.Index(list, value)
	if i < 0 {
		return list, false
	}

	return slices.Delete(list, i, i+1), true
}

// moveToFront moves value to index 0, keeping the order of the other values.
func moveToFront(list []string, value string) bool {
	i := slices.Index(list, value)
	if i < 0 {
		return false
	}

	copy(list[1:i+1], list[:i])
	list[0] = value
	return true
}

// copyList returns a copy that does not share memory with the registry, nil if empty.
func copyList(list []string) []string {
	if len(list) == 0 {
		return nil
	}

	return slices.Clone(list)
}
