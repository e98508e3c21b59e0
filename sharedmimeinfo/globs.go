package sharedmimeinfo

import (
	"go.uber.org/zap"
	"io"
	"strings"
	"unicode"
)

// LoadGlobs reads globs or globs2 files and maps each type to the extensions of its globs.
//
// A globs line has the form type:glob, a globs2 line weight:type:glob[:flags]. The globs2
// file is sorted by weight, so the order of the lines is kept as the order of precedence.
// Only globs of the form *.ext describe an extension, other globs such as Makefile or
// *.[ch] are skipped.
func LoadGlobs(reg Registry, readers []io.Reader, opts ...Option) error {
	o := newOptions(opts)

	return eachLine(readers, func(fileIndex, lineIndex int, line string) error {
		fields := strings.Split(line, ":")
		if len(fields) >= 3 && isWeight(fields[0]) {
			fields = fields[1:]
		}
		if len(fields) < 2 {
			return MalformedLineError{
				FileIndex: fileIndex,
				LineIndex: lineIndex,
			}
		}

		typ, glob := fields[0], fields[1]
		ext, ok := globExtension(glob)
		if !ok {
			o.logger.Debug("skipping glob", zap.String("type", typ), zap.String("glob", glob))
			return nil
		}

		if err := reg.AddTypeExtensionMapping(typ, ext); err != nil {
			o.logger.Warn(
				"skipping glob",
				zap.String("type", typ),
				zap.String("glob", glob),
				zap.Error(err),
			)
		}

		return nil
	})
}

func isWeight(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// globExtension returns the extension matched by a glob such as *.tar.gz.
func globExtension(glob string) (string, bool) {
	ext, found := strings.CutPrefix(glob, "*.")
	if !found || ext == "" || strings.ContainsAny(ext, `*?[]\`) {
		return "", false
	}

	return ext, true
}
