package apache_test

import (
	"errors"
	"fmt"
	"github.com/MatthiasKunnen/mimetypes/apache"
	"github.com/MatthiasKunnen/mimetypes/mediatype"
	"github.com/MatthiasKunnen/mimetypes/registry"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"io"
	"log"
	"strings"
	"testing"
)

func ExampleLoad() {
	reg := registry.New()
	err := apache.Load(reg, strings.NewReader(`# MIME type	Extensions
image/jpeg	jpeg jpg jpe
text/plain	txt text conf`))
	if err != nil {
		log.Fatalf("Failed to load mime.types: %v\n", err)
	}

	fmt.Println(strings.Join(reg.TypeExtensions("image/jpeg"), ", "))
	// Output: jpeg, jpg, jpe
}

func TestLoadFromReaders(t *testing.T) {
	reg := registry.New()
	err := apache.LoadFromReaders(reg, []io.Reader{
		strings.NewReader(`
# comment
Text/Plain	TXT text

application/x-empty
image/vnd.dvb.subtitle sub`),
		strings.NewReader("text/vnd.dvb.subtitle sub\ntext/plain log txt"),
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"text/plain", "application/x-empty", "image/vnd.dvb.subtitle", "text/vnd.dvb.subtitle"}
	if diff := cmp.Diff(want, reg.Types("")); diff != "" {
		t.Errorf("Types() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"txt", "text", "log"}, reg.TypeExtensions("text/plain")); diff != "" {
		t.Errorf("TypeExtensions() mismatch (-want +got):\n%s", diff)
	}

	wantSub := []string{"image/vnd.dvb.subtitle", "text/vnd.dvb.subtitle"}
	if diff := cmp.Diff(wantSub, reg.ExtensionTypes("sub")); diff != "" {
		t.Errorf("ExtensionTypes() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_malformedType(t *testing.T) {
	reg := registry.New()
	err := apache.LoadFromReaders(reg, []io.Reader{
		strings.NewReader("text/plain txt"),
		strings.NewReader("# first\nimage/png png\nnot-a-type foo"),
	})

	var malformed apache.MalformedLineError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedLineError, got %v", err)
	}
	if malformed.ReaderIndex != 1 || malformed.LineIndex != 2 {
		t.Errorf("error at reader %d line %d, expected reader 1 line 2", malformed.ReaderIndex, malformed.LineIndex)
	}

	var typeErr *mediatype.MalformedTypeError
	if !errors.As(err, &typeErr) {
		t.Errorf("expected wrapped MalformedTypeError, got %v", err)
	}

	if !reg.HasType("image/png") {
		t.Error("lines before the malformed line should be applied")
	}
}

func TestLoad_refusedMappingsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	reg := registry.New()
	if err := reg.AddType("application/javascript"); err != nil {
		t.Fatal(err)
	}
	if err := reg.AddTypeAlias("application/javascript", "text/javascript"); err != nil {
		t.Fatal(err)
	}

	err := apache.Load(
		reg,
		strings.NewReader("text/javascript js\napplication/javascript js"),
		apache.WithLogger(zap.New(core)),
	)
	if err != nil {
		t.Fatal(err)
	}

	if got := logs.FilterMessage("skipping mime.types line").Len(); got != 1 {
		t.Errorf("expected 1 skipped line, got %d", got)
	}
	if diff := cmp.Diff([]string{"application/javascript"}, reg.ExtensionTypes("js")); diff != "" {
		t.Errorf("ExtensionTypes() mismatch (-want +got):\n%s", diff)
	}
}
