package registry

import (
	"slices"
)

// Snapshot is a point in time copy of all relations of a registry.
// Its shape matches the persisted form {t: {...}, e: {...}, a: {...}}.
type Snapshot struct {
	Types      map[string]TypeEntry      `json:"t" yaml:"t"`
	Extensions map[string]ExtensionEntry `json:"e" yaml:"e"`
	Aliases    map[string]AliasEntry     `json:"a" yaml:"a"`
}

type TypeEntry struct {
	Extensions   []string `json:"e,omitempty" yaml:"e,omitempty"`
	Aliases      []string `json:"a,omitempty" yaml:"a,omitempty"`
	Descriptions []string `json:"desc,omitempty" yaml:"desc,omitempty"`
}

type ExtensionEntry struct {
	Types []string `json:"t" yaml:"t"`
}

type AliasEntry struct {
	// Types holds exactly one element, the canonical type.
	Types      []string `json:"t" yaml:"t"`
	Extensions []string `json:"e,omitempty" yaml:"e,omitempty"`
}

// Snapshot returns a copy of all relations.
// The order of the keys is not part of a snapshot, the order of the lists is.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Snapshot{
		Types:      make(map[string]TypeEntry, r.state.types.len()),
		Extensions: make(map[string]ExtensionEntry, r.state.extensions.len()),
		Aliases:    make(map[string]AliasEntry, r.state.aliases.len()),
	}

	for k, t := range r.state.types.values {
		s.Types[k] = TypeEntry{
			Extensions:   copyList(t.extensions),
			Aliases:      copyList(t.aliases),
			Descriptions: copyList(t.descriptions),
		}
	}
	for k, e := range r.state.extensions.values {
		s.Extensions[k] = ExtensionEntry{Types: copyList(e.types)}
	}
	for k, a := range r.state.aliases.values {
		s.Aliases[k] = AliasEntry{Types: []string{a.canonical}, Extensions: copyList(a.extensions)}
	}

	return s
}

// NewFromSnapshot returns a registry holding the relations of s.
func NewFromSnapshot(s Snapshot, opts ...Option) (*Registry, error) {
	r := New(opts...)
	if err := r.Load(s); err != nil {
		return nil, err
	}

	return r, nil
}

// Load replaces all relations with those of s. Keys are added in alphabetical order.
// A snapshot that is not consistent, e.g. an extension listing a type that does not list
// the extension, is rejected and the registry is left unchanged.
func (r *Registry) Load(s Snapshot) error {
	loaded, err := stateFromSnapshot(s)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = loaded
	return nil
}

func stateFromSnapshot(s Snapshot) (*state, error) {
	const op = "Load"
	st := newState()

	for _, k := range sortedKeys(s.Types) {
		t := s.Types[k]
		st.types.set(normalizeType(k), &typeRecord{
			extensions:   normalizeList(t.Extensions, normalizeExtension),
			aliases:      normalizeList(t.Aliases, normalizeType),
			descriptions: slices.Clone(t.Descriptions),
		})
	}
	for _, k := range sortedKeys(s.Extensions) {
		st.extensions.set(normalizeExtension(k), &extensionRecord{
			types: normalizeList(s.Extensions[k].Types, normalizeType),
		})
	}
	for _, k := range sortedKeys(s.Aliases) {
		a := s.Aliases[k]
		if len(a.Types) != 1 {
			return nil, mappingError(op, k, "", ErrInconsistent)
		}
		st.aliases.set(normalizeType(k), &aliasRecord{
			canonical:  normalizeType(a.Types[0]),
			extensions: normalizeList(a.Extensions, normalizeExtension),
		})
	}

	if err := st.validate(); err != nil {
		return nil, err
	}

	return st, nil
}

// validate checks that every association is present in both directions and that aliases
// and types do not overlap.
func (s *state) validate() error {
	const op = "Load"

	for _, k := range s.types.keys {
		t := s.types.values[k]
		if s.aliases.has(k) {
			return mappingError(op, k, "", ErrIsAlias)
		}
		for _, ext := range t.extensions {
			e, ok := s.extensions.get(ext)
			if !ok || !slices.Contains(e.types, k) {
				return mappingError(op, k, ext, ErrInconsistent)
			}
		}
		for _, alias := range t.aliases {
			a, ok := s.aliases.get(alias)
			if !ok || a.canonical != k {
				return mappingError(op, k, alias, ErrInconsistent)
			}
		}
	}

	for _, k := range s.aliases.keys {
		a := s.aliases.values[k]
		t, ok := s.types.get(a.canonical)
		if !ok || !slices.Contains(t.aliases, k) {
			return mappingError(op, k, a.canonical, ErrInconsistent)
		}
		for _, ext := range a.extensions {
			e, ok := s.extensions.get(ext)
			if !ok || !slices.Contains(e.types, k) || !slices.Contains(t.extensions, ext) {
				return mappingError(op, k, ext, ErrInconsistent)
			}
		}
	}

	for _, k := range s.extensions.keys {
		for _, typ := range s.extensions.values[k].types {
			var owned []string
			if t, ok := s.types.get(typ); ok {
				owned = t.extensions
			} else if a, ok := s.aliases.get(typ); ok {
				owned = a.extensions
			}
			if !slices.Contains(owned, k) {
				return mappingError(op, k, typ, ErrInconsistent)
			}
		}
	}

	return nil
}

// Backup stores a copy of all relations which can be restored with [Registry.Reset].
// Only one backup is kept, a new backup replaces the previous one.
func (r *Registry) Backup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backup = r.state.clone()
}

// Reset restores the relations stored by the last [Registry.Backup], including the order of
// keys and lists. The backup is kept so Reset can be called again.
// Returns [ErrNoCheckpoint] if there is no backup.
func (r *Registry) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backup == nil {
		return ErrNoCheckpoint
	}

	r.state = r.backup.clone()
	return nil
}

// Sort orders all keys and the lists of extensions, aliases and types alphabetically.
// Descriptions keep their order.
//
// Sorting discards which extension or type is the default. Call it after importing and
// before setting defaults, not in between.
func (r *Registry) Sort() {
	r.mu.Lock()
	defer r.mu.Unlock()

	slices.Sort(r.state.types.keys)
	slices.Sort(r.state.extensions.keys)
	slices.Sort(r.state.aliases.keys)

	for _, t := range r.state.types.values {
		slices.Sort(t.extensions)
		slices.Sort(t.aliases)
	}
	for _, e := range r.state.extensions.values {
		slices.Sort(e.types)
	}
	for _, a := range r.state.aliases.values {
		slices.Sort(a.extensions)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

func normalizeList(list []string, normalize func(string) string) []string {
	var result []string
	for _, v := range list {
		result = appendUnique(result, normalize(v))
	}

	return result
}
