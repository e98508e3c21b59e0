package mediatype

import (
	"strings"
)

// scanResult is the outcome of scanning a part of a media type string up to a delimiter.
type scanResult struct {
	// content is the text outside of comments, trimmed. Quotes are kept.
	content string

	// comment holds the text of all comments encountered, separated by a single space.
	comment string

	// matched is true when the scan stopped at the delimiter rather than at the end of input.
	matched bool

	// end is the offset directly after the delimiter, or len(source) if it was not matched.
	end int
}

// scan reads source, starting at offset, until delim is found outside of comments and
// quoted strings.
// A backslash escapes the next character, which is then written to the comment when
// inside a comment and to the content otherwise.
// Parentheses nest, leaving the outermost comment adds a separator to the comment.
// A double quote toggles quoted mode when outside a comment. While quoted, parentheses and
// the delimiter have no special meaning.
func scan(source string, offset int, delim byte) (scanResult, error) {
	var content strings.Builder
	var comment strings.Builder
	nesting := 0
	quoted := false
	escaped := false

	active := func() *strings.Builder {
		if nesting > 0 {
			return &comment
		}
		return &content
	}

	i := offset
	for ; i < len(source); i++ {
		c := source[i]

		if escaped {
			active().WriteByte(c)
			escaped = false
			continue
		}

		switch {
		case c == '\\':
			escaped = true
		case quoted:
			if c == '"' {
				quoted = false
			}
			content.WriteByte(c)
		case c == '(':
			if nesting > 0 {
				comment.WriteByte(c)
			}
			nesting++
		case c == ')' && nesting > 0:
			nesting--
			if nesting == 0 {
				comment.WriteByte(' ')
			} else {
				comment.WriteByte(c)
			}
		case nesting > 0:
			comment.WriteByte(c)
		case c == '"':
			quoted = true
			content.WriteByte(c)
		case c == delim:
			return scanResult{
				content: strings.TrimSpace(content.String()),
				comment: strings.TrimSpace(comment.String()),
				matched: true,
				end:     i + 1,
			}, nil
		default:
			content.WriteByte(c)
		}
	}

	if nesting > 0 {
		return scanResult{}, &MalformedTypeError{
			Input:  source,
			Offset: i,
			Reason: "unterminated comment",
		}
	}

	return scanResult{
		content: strings.TrimSpace(content.String()),
		comment: strings.TrimSpace(comment.String()),
		end:     i,
	}, nil
}
