package mediatype

import (
	"errors"
	"fmt"
	"strings"
)

// MalformedTypeError is returned when a string cannot be decomposed into a media type.
type MalformedTypeError struct {
	// Input is the string that failed to parse.
	Input string

	// Offset is the position in Input at which the problem was detected.
	Offset int

	// Reason describes what is wrong.
	Reason string
}

func (e *MalformedTypeError) Error() string {
	return fmt.Sprintf("malformed media type %q at offset %d: %s", e.Input, e.Offset, e.Reason)
}

// Parse parses a media type such as `text/plain; charset="utf-8" (comment)` according to
// RFC 2045 section 5.1 and RFC 822 comments.
//
// Media, subtype and parameter names keep their original case; only [MediaType.Key] and
// the short formats are lower-cased.
// When a parameter name occurs more than once, the last value is kept at the position of
// the first occurrence.
func Parse(raw string) (MediaType, error) {
	media, err := scan(raw, 0, '/')
	if err != nil {
		return MediaType{}, err
	}
	if !media.matched {
		return MediaType{}, &MalformedTypeError{Input: raw, Offset: media.end, Reason: "missing /"}
	}
	if media.content == "" {
		return MediaType{}, &MalformedTypeError{Input: raw, Offset: 0, Reason: "empty media"}
	}

	sub, err := scan(raw, media.end, ';')
	if err != nil {
		return MediaType{}, err
	}
	if sub.content == "" {
		return MediaType{}, &MalformedTypeError{Input: raw, Offset: media.end, Reason: "empty subtype"}
	}

	result := MediaType{
		Media:          media.content,
		MediaComment:   media.comment,
		SubType:        sub.content,
		SubTypeComment: sub.comment,
	}

	offset := sub.end
	for offset < len(raw) {
		segment, err := scan(raw, offset, ';')
		if err != nil {
			return MediaType{}, err
		}

		segmentEnd := segment.end
		if segment.matched {
			segmentEnd--
		}

		if segment.content != "" {
			param, err := parseParameter(raw[offset:segmentEnd])
			if err != nil {
				var malformed *MalformedTypeError
				if errors.As(err, &malformed) {
					malformed.Input = raw
					malformed.Offset += offset
				}
				return MediaType{}, err
			}
			result.setParameter(param)
		}

		offset = segment.end
	}

	return result, nil
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
func MustParse(raw string) MediaType {
	m, err := Parse(raw)
	if err != nil {
		panic(err)
	}

	return m
}

// parseParameter parses a single `name=value` segment, without the separating semicolon.
func parseParameter(segment string) (Parameter, error) {
	name, err := scan(segment, 0, '=')
	if err != nil {
		return Parameter{}, err
	}
	if !name.matched {
		return Parameter{}, &MalformedTypeError{
			Input:  segment,
			Offset: name.end,
			Reason: fmt.Sprintf("parameter %q has no value", name.content),
		}
	}
	if name.content == "" {
		return Parameter{}, &MalformedTypeError{Input: segment, Reason: "empty parameter name"}
	}

	value, err := scan(segment, name.end, ';')
	if err != nil {
		return Parameter{}, err
	}

	v := value.content
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		v = v[1 : len(v)-1]
	}

	return Parameter{
		Name:    name.content,
		Value:   v,
		Comment: joinComments(name.comment, value.comment),
	}, nil
}

func joinComments(comments ...string) string {
	nonEmpty := make([]string, 0, len(comments))
	for _, c := range comments {
		if c != "" {
			nonEmpty = append(nonEmpty, c)
		}
	}

	return strings.Join(nonEmpty, " ")
}
