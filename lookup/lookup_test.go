package lookup_test

import (
	"fmt"
	"github.com/MatthiasKunnen/mimetypes/lookup"
	"github.com/MatthiasKunnen/mimetypes/mediatype"
	"github.com/MatthiasKunnen/mimetypes/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func ExampleLookup_DefaultExtension() {
	l, err := lookup.NewDefault()
	if err != nil {
		panic(err)
	}

	fmt.Println(l.DefaultExtensionOr("image/jpeg; quality=high", "bin"))
	fmt.Println(l.DefaultExtensionOr("image/pjpeg", "bin"))
	fmt.Println(l.DefaultExtensionOr("image/x-unknown", "bin"))
	// Output:
	// jpeg
	// jpeg
	// bin
}

func newLookup(t *testing.T) *lookup.Lookup {
	t.Helper()

	l, err := lookup.NewDefault()
	require.NoError(t, err)

	return l
}

func TestLookup_DefaultExtension(t *testing.T) {
	l := newLookup(t)

	ext, err := l.DefaultExtension("image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "jpeg", ext)

	require.NoError(t, l.Registry().SetTypeDefaultExtension("image/jpeg", "jpg"))

	ext, err = l.DefaultExtension("IMAGE/JPEG")
	require.NoError(t, err)
	assert.Equal(t, "jpg", ext)
	assert.Equal(t, []string{"jpg", "jpeg", "jpe"}, l.Extensions("image/jpeg"))
	assert.Equal(t, []string{"jpg", "jpeg", "jpe"}, l.Extensions("image/pjpeg"))
}

func TestLookup_DefaultExtensionErrors(t *testing.T) {
	l := newLookup(t)

	_, err := l.DefaultExtension("image/x-unknown")
	var mappingErr *registry.MappingError
	require.ErrorAs(t, err, &mappingErr)
	assert.ErrorIs(t, err, registry.ErrNotFound)
	assert.Equal(t, "DefaultExtension", mappingErr.Op)

	_, err = l.DefaultExtension("not a type")
	var malformed *mediatype.MalformedTypeError
	require.ErrorAs(t, err, &malformed)

	assert.Equal(t, "dat", l.DefaultExtensionOr("not a type", "dat"))
	assert.Nil(t, l.Extensions("not a type"))
}

func TestLookup_DefaultExtensionOfPromotedAlias(t *testing.T) {
	l := newLookup(t)
	reg := l.Registry()

	require.NoError(t, reg.SetExtensionDefaultType("mjs", "text/javascript"))

	ext, err := l.DefaultExtension("text/javascript")
	require.NoError(t, err)
	assert.Equal(t, "mjs", ext)

	ext, err = l.DefaultExtension("application/javascript")
	require.NoError(t, err)
	assert.Equal(t, "js", ext)

	typ, err := l.DefaultType("mjs")
	require.NoError(t, err)
	assert.Equal(t, "text/javascript", typ)
}

func TestLookup_DefaultType(t *testing.T) {
	l := newLookup(t)

	typ, err := l.DefaultType(".SUB")
	require.NoError(t, err)
	assert.Equal(t, "text/vnd.dvb.subtitle", typ)

	require.NoError(t, l.Registry().SetExtensionDefaultType("sub", "image/vnd.dvb.subtitle"))
	assert.Equal(t, "image/vnd.dvb.subtitle", l.DefaultTypeOr("sub", ""))
	assert.Equal(
		t,
		[]string{"image/vnd.dvb.subtitle", "text/vnd.dvb.subtitle"},
		l.TypesByExtension("sub"),
	)

	_, err = l.DefaultType("nope")
	require.ErrorIs(t, err, registry.ErrNotFound)
	assert.Equal(t, "application/octet-stream", l.DefaultTypeOr("nope", "application/octet-stream"))
}

func TestLookup_TypeByFilename(t *testing.T) {
	l := newLookup(t)

	tests := map[string]string{
		"photo.JPG":           "image/jpeg",
		"/tmp/archive.tar.gz": "application/gzip",
		"notes.md":            "text/markdown",
	}
	for name, want := range tests {
		got, err := l.TypeByFilename(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := l.TypeByFilename("Makefile")
	require.ErrorIs(t, err, registry.ErrNotFound)
	assert.Equal(t, "x", l.TypeByFilenameOr("file.unknownext", "x"))
}

func TestLookup_CanonicalType(t *testing.T) {
	l := newLookup(t)

	c, err := l.CanonicalType("text/javascript; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, "application/javascript", c)

	c, err = l.CanonicalType("Application/JavaScript")
	require.NoError(t, err)
	assert.Equal(t, "application/javascript", c)

	_, err = l.CanonicalType("text/x-unknown")
	require.ErrorIs(t, err, registry.ErrNotFound)
	assert.Equal(t, "text/x-unknown", l.CanonicalTypeOr("text/x-unknown", "text/x-unknown"))
}

func TestLookup_Description(t *testing.T) {
	l := newLookup(t)

	d, err := l.Description("image/png")
	require.NoError(t, err)
	assert.Equal(t, "PNG image", d)

	d, err = l.LongDescription("image/png")
	require.NoError(t, err)
	assert.Equal(t, "Portable Network Graphics", d)

	assert.Equal(t, "JPEG image", l.DescriptionOr("image/pjpeg", ""))

	_, err = l.LongDescription("image/jpeg")
	require.ErrorIs(t, err, registry.ErrNotFound)
	assert.Equal(t, "none", l.LongDescriptionOr("image/jpeg", "none"))
	assert.Equal(t, "none", l.DescriptionOr("image/x-unknown", "none"))
}

func TestLookup_Match(t *testing.T) {
	l := lookup.New(registry.New())
	reg := l.Registry()
	require.NoError(t, reg.AddTypeExtensionMapping("image/png", "png"))
	require.NoError(t, reg.AddTypeExtensionMapping("text/plain", "txt"))
	require.NoError(t, reg.AddTypeExtensionMapping("image/svg+xml", "svg"))
	require.NoError(t, reg.AddTypeAlias("image/png", "image/x-png"))

	got, err := l.Match("image/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"image/png", "image/svg+xml"}, got)

	got, err = l.Match("*/*")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = l.Match("*/*+xml")
	require.NoError(t, err)
	assert.Equal(t, []string{"image/svg+xml"}, got)

	_, err = l.Match("image/png")
	require.ErrorIs(t, err, mediatype.ErrNotWildcard)

	_, err = l.Match("image")
	var malformed *mediatype.MalformedTypeError
	require.ErrorAs(t, err, &malformed)
}
