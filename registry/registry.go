// Package registry relates media types to file extensions and aliases.
//
// A [Registry] holds three record sets, types, extensions and aliases, that refer to each
// other. Every association is stored in both directions and the order of each list is
// meaningful: the first entry is the default. For example, the default extension of
// image/jpeg is the first entry of [Registry.TypeExtensions].
//
// An alias is a synonym of exactly one registered type and is never a type itself.
// Removing a type removes its extensions and aliases with it.
//
// Keys are compared case-insensitively. Extensions are given without leading dot.
package registry

import (
	"go.uber.org/zap"
	"regexp"
	"strings"
	"sync"
)

// Registry is an in-memory store of types, extensions and aliases.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	state  *state
	backup *state
	logger *zap.Logger
}

// Option configures a [Registry].
type Option func(*Registry)

// WithLogger sets the logger used to report cascading removals at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		state:  newState(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// normalizeType returns the lookup key of a type or alias.
func normalizeType(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// normalizeExtension returns the lookup key of an extension, e.g. .JPG becomes jpg.
func normalizeExtension(ext string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
}

// HasType reports whether key is a registered type. Aliases are not types.
func (r *Registry) HasType(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state.types.has(normalizeType(key))
}

// HasAlias reports whether key is an alias of a registered type.
func (r *Registry) HasAlias(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state.aliases.has(normalizeType(key))
}

// HasExtension reports whether any type or alias is associated with ext.
func (r *Registry) HasExtension(ext string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state.extensions.has(normalizeExtension(ext))
}

// Types returns the registered types in the order they were added.
// When pattern is non-empty, only the types matching it are returned. In the pattern,
// * matches any sequence of characters, e.g. image/*.
func (r *Registry) Types(pattern string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return filterKeys(r.state.types.keys, pattern)
}

// Aliases returns the aliases in the order they were added, see [Registry.Types] for pattern.
func (r *Registry) Aliases(pattern string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return filterKeys(r.state.aliases.keys, pattern)
}

// Extensions returns the extensions in the order they were added, see [Registry.Types] for
// pattern.
func (r *Registry) Extensions(pattern string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return filterKeys(r.state.extensions.keys, pattern)
}

func filterKeys(keys []string, pattern string) []string {
	if pattern == "" {
		return copyList(keys)
	}

	re := compilePattern(pattern)

	var result []string
	for _, k := range keys {
		if re.MatchString(k) {
			result = append(result, k)
		}
	}

	return result
}

// compilePattern turns a pattern where only * is special into an anchored regular
// expression matching lower-cased keys.
func compilePattern(pattern string) *regexp.Regexp {
	parts := strings.Split(strings.ToLower(pattern), "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}

	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}

// TypeDescriptions returns the descriptions of a type. The first is the short description,
// the optional second one a longer description.
func (r *Registry) TypeDescriptions(key string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.state.types.get(normalizeType(key)); ok {
		return copyList(t.descriptions)
	}

	return nil
}

// TypeAliases returns the aliases of a type.
func (r *Registry) TypeAliases(key string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.state.types.get(normalizeType(key)); ok {
		return copyList(t.aliases)
	}

	return nil
}

// TypeExtensions returns the extensions of a type, the default extension first.
// Aliases have no type extensions, see [Registry.AliasExtensions].
func (r *Registry) TypeExtensions(key string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.state.types.get(normalizeType(key)); ok {
		return copyList(t.extensions)
	}

	return nil
}

// AliasTypes returns the canonical type of an alias as a single element list.
func (r *Registry) AliasTypes(key string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.state.aliases.get(normalizeType(key)); ok {
		return []string{a.canonical}
	}

	return nil
}

// AliasExtensions returns the extensions associated directly with an alias, which happens
// when the alias is made the default type of an extension.
func (r *Registry) AliasExtensions(key string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.state.aliases.get(normalizeType(key)); ok {
		return copyList(a.extensions)
	}

	return nil
}

// ExtensionTypes returns the types, or aliases, associated with an extension, the default
// type first.
func (r *Registry) ExtensionTypes(ext string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.state.extensions.get(normalizeExtension(ext)); ok {
		return copyList(e.types)
	}

	return nil
}
