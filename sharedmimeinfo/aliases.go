package sharedmimeinfo

import (
	"bufio"
	"fmt"
	"go.uber.org/zap"
	"io"
	"strings"
)

// MalformedLineError is returned when a line of a globs or aliases file has the wrong
// number of fields.
type MalformedLineError struct {
	FileIndex int
	LineIndex int
}

func (e MalformedLineError) Error() string {
	return fmt.Sprintf(
		"malformed line at %d of file %d",
		e.LineIndex,
		e.FileIndex,
	)
}

// Registry is the part of [github.com/MatthiasKunnen/mimetypes/registry.Registry] used to
// store the loaded data.
type Registry interface {
	AddTypeAlias(typ string, alias string) error
	AddTypeExtensionMapping(typ string, ext string) error
}

type options struct {
	logger *zap.Logger
}

// Option configures loading.
type Option func(*options)

// WithLogger sets the logger that reports skipped entries.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// LoadAliases reads aliases files and adds each alias to reg.
// Every line holds an alias and its canonical type, separated by a space.
// The canonical type must already be registered, aliases of unknown types and other
// aliases refused by the registry are logged and skipped.
func LoadAliases(reg Registry, readers []io.Reader, opts ...Option) error {
	o := newOptions(opts)

	return eachLine(readers, func(fileIndex, lineIndex int, line string) error {
		alias, canonical, found := strings.Cut(line, " ")
		if !found {
			return MalformedLineError{
				FileIndex: fileIndex,
				LineIndex: lineIndex,
			}
		}

		if err := reg.AddTypeAlias(canonical, alias); err != nil {
			o.logger.Warn(
				"skipping alias",
				zap.String("alias", alias),
				zap.String("type", canonical),
				zap.Error(err),
			)
		}

		return nil
	})
}

// eachLine calls fn for every line that is neither empty nor a comment.
func eachLine(readers []io.Reader, fn func(fileIndex, lineIndex int, line string) error) error {
	for fileIndex, f := range readers {
		scanner := bufio.NewScanner(f)
		lineIndex := -1
		for scanner.Scan() {
			lineIndex++
			line := scanner.Text()
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			if err := fn(fileIndex, lineIndex, line); err != nil {
				return err
			}
		}

		if err := scanner.Err(); err != nil {
			return err
		}
	}

	return nil
}
