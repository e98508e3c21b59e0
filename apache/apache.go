// Package apache loads media types in the format of the Apache HTTP server's mime.types
// file into a registry.
//
// Each line holds a type followed by its extensions, separated by white space:
//
//	image/jpeg	jpeg jpg jpe
//
// Lines starting with # and blank lines are ignored. The first extension of a type becomes
// its default.
package apache

import (
	"bufio"
	"fmt"
	"github.com/MatthiasKunnen/mimetypes/mediatype"
	"go.uber.org/zap"
	"io"
	"strings"
)

// MalformedLineError is returned when the type on a line cannot be parsed.
type MalformedLineError struct {
	ReaderIndex int
	LineIndex   int
	Err         error
}

func (e MalformedLineError) Error() string {
	return fmt.Sprintf(
		"malformed mime.types line at %d of reader %d: %v",
		e.LineIndex,
		e.ReaderIndex,
		e.Err,
	)
}

func (e MalformedLineError) Unwrap() error {
	return e.Err
}

// Registry is the part of [github.com/MatthiasKunnen/mimetypes/registry.Registry] used to
// store the loaded types.
type Registry interface {
	AddType(typ string) error
	AddTypeExtensionMapping(typ string, ext string) error
}

type options struct {
	logger *zap.Logger
}

// Option configures loading.
type Option func(*options)

// WithLogger sets the logger that reports mappings the registry refused.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Load adds the types and extensions read from r to reg.
func Load(reg Registry, r io.Reader, opts ...Option) error {
	return LoadFromReaders(reg, []io.Reader{r}, opts...)
}

// LoadFromReaders adds the types and extensions of each reader to reg, in order.
// Earlier readers have higher precedence as the first extension added is the default.
//
// Mappings refused by the registry, such as an extension for an alias, are logged and
// skipped. Loading stops at the first line with a malformed type, the lines before it
// remain applied. Use [registry.Registry.Backup] to be able to undo a partial load.
func LoadFromReaders(reg Registry, readers []io.Reader, opts ...Option) error {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	for readerIndex, r := range readers {
		scanner := bufio.NewScanner(r)
		lineIndex := -1
		for scanner.Scan() {
			lineIndex++
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			fields := strings.Fields(line)
			m, err := mediatype.Parse(fields[0])
			if err != nil {
				return MalformedLineError{
					ReaderIndex: readerIndex,
					LineIndex:   lineIndex,
					Err:         err,
				}
			}

			typ := m.Key()
			if err := reg.AddType(typ); err != nil {
				o.logger.Warn(
					"skipping mime.types line",
					zap.Int("reader", readerIndex),
					zap.Int("line", lineIndex),
					zap.Error(err),
				)
				continue
			}

			for _, ext := range fields[1:] {
				if err := reg.AddTypeExtensionMapping(typ, ext); err != nil {
					o.logger.Warn(
						"skipping extension",
						zap.Int("reader", readerIndex),
						zap.Int("line", lineIndex),
						zap.String("extension", ext),
						zap.Error(err),
					)
				}
			}
		}

		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read mime.types reader %d: %w", readerIndex, err)
		}
	}

	return nil
}
