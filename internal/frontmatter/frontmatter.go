// Package frontmatter splits YAML frontmatter from Markdown page bodies.
package frontmatter

import (
	"bytes"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates `---` delimited YAML frontmatter from the body. LF and CRLF
// line endings are both accepted. had is false when content has no
// frontmatter, in which case body is content unchanged.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := []byte("\n")
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = []byte("\r\n")
	}
	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}
	closing := append(append([]byte{}, nl...), "---"...)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	after := rest[idx+len(closing):]
	switch {
	case len(after) == 0:
	case bytes.HasPrefix(after, nl):
		after = after[len(nl):]
	default:
		// "---" followed by text is not a delimiter line.
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return rest[:idx+len(nl)], after, true, nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(fm []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(fm)) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Title returns the non-empty string "title" field.
func Title(fields map[string]any) (string, bool) {
	t, ok := fields["title"].(string)
	t = strings.TrimSpace(t)
	return t, ok && t != ""
}
