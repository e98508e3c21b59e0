// Package mediatype parses media type strings as defined by RFC 2045 and RFC 2046,
// including parameters and RFC 822 style comments.
//
// A parsed [MediaType] can be formatted at three levels of detail, see [Fidelity], and
// can be matched against wildcard types such as image/* or */*.
package mediatype

import (
	"strings"
)

// Fidelity determines how much of a [MediaType] is included by [MediaType.Format].
type Fidelity int

const (
	// Short formats as the lower-cased media/subtype, e.g. text/plain.
	Short Fidelity = iota

	// Full adds the parameters, e.g. text/plain; charset="utf-8".
	Full

	// FullWithComments adds the comments after the part they belong to, e.g.
	// text/plain; charset="utf-8" (UTF8).
	FullWithComments
)

// Parameter is a single name=value pair of a media type.
type Parameter struct {
	Name    string
	Value   string
	Comment string
}

// MediaType is the structured form of a media type string.
// The zero value is not a valid media type, use [Parse].
type MediaType struct {
	Media          string
	MediaComment   string
	SubType        string
	SubTypeComment string

	// Parameters in the order they appeared.
	Parameters []Parameter
}

// Key returns the lower-cased media/subtype which is used to look up the type.
func (m MediaType) Key() string {
	return strings.ToLower(m.Media) + "/" + strings.ToLower(m.SubType)
}

// String returns the type in [Full] format.
func (m MediaType) String() string {
	return m.Format(Full)
}

// Format returns the string form of the type.
// Parameter values are always quoted with " escaped as \".
func (m MediaType) Format(f Fidelity) string {
	if f == Short {
		return m.Key()
	}

	withComments := f == FullWithComments
	var b strings.Builder
	b.WriteString(strings.ToLower(m.Media))
	if withComments {
		writeComment(&b, m.MediaComment)
	}
	b.WriteByte('/')
	b.WriteString(strings.ToLower(m.SubType))
	if withComments {
		writeComment(&b, m.SubTypeComment)
	}

	for _, p := range m.Parameters {
		b.WriteString("; ")
		b.WriteString(p.Name)
		b.WriteString(`="`)
		b.WriteString(strings.ReplaceAll(p.Value, `"`, `\"`))
		b.WriteByte('"')
		if withComments {
			writeComment(&b, p.Comment)
		}
	}

	return b.String()
}

func writeComment(b *strings.Builder, comment string) {
	if comment == "" {
		return
	}

	b.WriteString(" (")
	b.WriteString(comment)
	b.WriteByte(')')
}

// Param returns the value of the parameter with the given name.
// Names are compared case-insensitively.
func (m MediaType) Param(name string) (string, bool) {
	i := m.paramIndex(name)
	if i < 0 {
		return "", false
	}

	return m.Parameters[i].Value, true
}

func (m MediaType) paramIndex(name string) int {
	for i, p := range m.Parameters {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}

	return -1
}

// setParameter appends p or, if a parameter of that name exists, replaces it in place.
func (m *MediaType) setParameter(p Parameter) {
	if i := m.paramIndex(p.Name); i >= 0 {
		m.Parameters[i] = p
		return
	}

	m.Parameters = append(m.Parameters, p)
}

// IsExperimental reports whether the media or subtype starts with x-, e.g. application/x-tar.
func (m MediaType) IsExperimental() bool {
	return hasPrefixFold(m.Media, "x-") || hasPrefixFold(m.SubType, "x-")
}

// IsVendor reports whether the subtype is in the vendor tree, e.g. application/vnd.ms-excel.
func (m MediaType) IsVendor() bool {
	return hasPrefixFold(m.SubType, "vnd.")
}

// IsWildcard reports whether the type is */* or has a * in its subtype.
func (m MediaType) IsWildcard() bool {
	return (m.Media == "*" && m.SubType == "*") || strings.Contains(m.SubType, "*")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
