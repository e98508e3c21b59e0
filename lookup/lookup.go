// Package lookup answers the common questions asked of a media type registry, such as the
// default extension of a type or the type of a file name.
//
// Type arguments may carry parameters and comments, text/plain; charset=utf-8 is looked up
// as text/plain. Aliases are resolved to their canonical type where that makes sense.
//
// Each query comes in two forms. The strict form returns an error when nothing is found,
// a [*registry.MappingError] wrapping [registry.ErrNotFound], or a
// [*mediatype.MalformedTypeError] when the type cannot be parsed. The form ending in Or
// returns the given fallback instead.
package lookup

import (
	"github.com/MatthiasKunnen/mimetypes/mediatype"
	"github.com/MatthiasKunnen/mimetypes/mimedb"
	"github.com/MatthiasKunnen/mimetypes/registry"
	"path"
	"strings"
)

// Lookup queries a [registry.Registry].
type Lookup struct {
	reg *registry.Registry
}

// New returns a Lookup backed by reg. Changes made to reg are visible immediately.
func New(reg *registry.Registry) *Lookup {
	return &Lookup{reg: reg}
}

// NewDefault returns a Lookup backed by a new registry holding the dataset of [mimedb].
func NewDefault() (*Lookup, error) {
	reg, err := mimedb.New()
	if err != nil {
		return nil, err
	}

	return New(reg), nil
}

// Registry returns the registry that is queried.
func (l *Lookup) Registry() *registry.Registry {
	return l.reg
}

func notFound(op, key string) error {
	return &registry.MappingError{Op: op, Key: key, Err: registry.ErrNotFound}
}

// key parses typ and returns its lookup key.
func key(typ string) (string, error) {
	m, err := mediatype.Parse(typ)
	if err != nil {
		return "", err
	}

	return m.Key(), nil
}

// canonical resolves an alias to its type. Unknown keys are returned as they are.
func (l *Lookup) canonical(key string) string {
	if types := l.reg.AliasTypes(key); len(types) > 0 {
		return types[0]
	}

	return key
}

// DefaultExtension returns the default extension of a type.
// For an alias, an extension associated with the alias itself takes precedence over the
// extensions of its canonical type.
func (l *Lookup) DefaultExtension(typ string) (string, error) {
	k, err := key(typ)
	if err != nil {
		return "", err
	}

	if exts := l.reg.AliasExtensions(k); len(exts) > 0 {
		return exts[0], nil
	}

	if exts := l.reg.TypeExtensions(l.canonical(k)); len(exts) > 0 {
		return exts[0], nil
	}

	return "", notFound("DefaultExtension", typ)
}

// DefaultExtensionOr is like [Lookup.DefaultExtension] but returns fallback on error.
func (l *Lookup) DefaultExtensionOr(typ string, fallback string) string {
	ext, err := l.DefaultExtension(typ)
	if err != nil {
		return fallback
	}

	return ext
}

// Extensions returns all extensions of a type, or of the canonical type of an alias.
func (l *Lookup) Extensions(typ string) []string {
	k, err := key(typ)
	if err != nil {
		return nil
	}

	return l.reg.TypeExtensions(l.canonical(k))
}

// DefaultType returns the default type of an extension. This can be an alias when the
// alias was made the default with [registry.Registry.SetExtensionDefaultType].
func (l *Lookup) DefaultType(ext string) (string, error) {
	if types := l.reg.ExtensionTypes(ext); len(types) > 0 {
		return types[0], nil
	}

	return "", notFound("DefaultType", ext)
}

// DefaultTypeOr is like [Lookup.DefaultType] but returns fallback on error.
func (l *Lookup) DefaultTypeOr(ext string, fallback string) string {
	typ, err := l.DefaultType(ext)
	if err != nil {
		return fallback
	}

	return typ
}

// TypesByExtension returns all types associated with an extension, the default first.
func (l *Lookup) TypesByExtension(ext string) []string {
	return l.reg.ExtensionTypes(ext)
}

// TypeByFilename returns the default type of the last extension of name, e.g.
// archive.tar.gz returns application/gzip.
func (l *Lookup) TypeByFilename(name string) (string, error) {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		return "", notFound("TypeByFilename", name)
	}

	typ, err := l.DefaultType(ext)
	if err != nil {
		return "", notFound("TypeByFilename", name)
	}

	return typ, nil
}

// TypeByFilenameOr is like [Lookup.TypeByFilename] but returns fallback on error.
func (l *Lookup) TypeByFilenameOr(name string, fallback string) string {
	typ, err := l.TypeByFilename(name)
	if err != nil {
		return fallback
	}

	return typ
}

// CanonicalType returns the registered type an alias refers to. For a registered type, the
// type itself is returned.
func (l *Lookup) CanonicalType(typ string) (string, error) {
	k, err := key(typ)
	if err != nil {
		return "", err
	}

	switch {
	case l.reg.HasType(k):
		return k, nil
	case l.reg.HasAlias(k):
		return l.canonical(k), nil
	default:
		return "", notFound("CanonicalType", typ)
	}
}

// CanonicalTypeOr is like [Lookup.CanonicalType] but returns fallback on error.
func (l *Lookup) CanonicalTypeOr(typ string, fallback string) string {
	c, err := l.CanonicalType(typ)
	if err != nil {
		return fallback
	}

	return c
}

// Description returns the short description of a type or of the canonical type of an
// alias.
func (l *Lookup) Description(typ string) (string, error) {
	return l.description("Description", typ, 0)
}

// DescriptionOr is like [Lookup.Description] but returns fallback on error.
func (l *Lookup) DescriptionOr(typ string, fallback string) string {
	d, err := l.Description(typ)
	if err != nil {
		return fallback
	}

	return d
}

// LongDescription returns the long description of a type or of the canonical type of an
// alias.
func (l *Lookup) LongDescription(typ string) (string, error) {
	return l.description("LongDescription", typ, 1)
}

// LongDescriptionOr is like [Lookup.LongDescription] but returns fallback on error.
func (l *Lookup) LongDescriptionOr(typ string, fallback string) string {
	d, err := l.LongDescription(typ)
	if err != nil {
		return fallback
	}

	return d
}

func (l *Lookup) description(op, typ string, index int) (string, error) {
	k, err := key(typ)
	if err != nil {
		return "", err
	}

	descriptions := l.reg.TypeDescriptions(l.canonical(k))
	if len(descriptions) <= index {
		return "", notFound(op, typ)
	}

	return descriptions[index], nil
}

// Match returns the registered types matched by a wildcard type such as image/*.
// Returns [mediatype.ErrNotWildcard] if pattern has no *.
func (l *Lookup) Match(pattern string) ([]string, error) {
	p, err := mediatype.Parse(pattern)
	if err != nil {
		return nil, err
	}

	re, err := p.Pattern()
	if err != nil {
		return nil, err
	}

	var result []string
	for _, typ := range l.reg.Types("") {
		if re.MatchString(typ) {
			result = append(result, typ)
		}
	}

	return result, nil
}
