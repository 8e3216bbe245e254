package marker

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/rulesync/internal/branding"
)

// Style describes the comment tokens that wrap marker lines in a target
// file. Close may be empty for line-comment syntaxes, in which case a
// marker extends to the end of its line.
type Style struct {
	Open  string
	Close string
}

// Markdown is the marker style for Markdown targets (HTML comments).
var Markdown = Style{Open: "<!--", Close: "-->"}

type tokenKind int

const (
	tokenStart tokenKind = iota
	tokenEnd
)

// token is one marker event found by the scanner. Text between markers is
// not tokenized; the parser recovers it from offsets.
type token struct {
	kind   tokenKind
	id     string
	prefix string
	hash   string
	start  int // offset of the marker's opening comment token
	end    int // offset just past the marker's closing comment token
	line   int
}

// scan walks raw and returns every start/end marker in offset order.
// Comments that do not carry the marker tag are ordinary text.
func scan(path, raw string, style Style) ([]token, error) {
	tag := branding.MarkerTag()
	startWord := tag + ":start"
	endWord := tag + ":end"

	var tokens []token
	pos := 0
	for {
		rel := strings.Index(raw[pos:], style.Open)
		if rel < 0 {
			break
		}
		open := pos + rel
		inner := open + len(style.Open)

		// Peek past the comment opener; skip anything that is not ours.
		rest := strings.TrimLeft(raw[inner:], " \t")
		var kind tokenKind
		switch {
		case strings.HasPrefix(rest, startWord):
			kind = tokenStart
		case strings.HasPrefix(rest, endWord):
			kind = tokenEnd
		default:
			pos = inner
			continue
		}

		closeAt, closeLen, ok := findClose(raw, inner, style)
		if !ok {
			return nil, &ParseError{
				Path:   path,
				Line:   lineAt(raw, open),
				Marker: snippet(raw[open:]),
				Reason: "marker comment is never closed",
			}
		}

		tok := token{
			kind:  kind,
			start: open,
			end:   closeAt + closeLen,
			line:  lineAt(raw, open),
		}

		body := strings.TrimSpace(raw[inner:closeAt])
		if kind == tokenStart {
			body = strings.TrimPrefix(body, startWord)
		} else {
			body = strings.TrimPrefix(body, endWord)
		}

		attrs, err := parseAttrs(body)
		if err != nil {
			return nil, &ParseError{
				Path:   path,
				Line:   tok.line,
				Marker: snippet(raw[open:tok.end]),
				Reason: err.Error(),
			}
		}
		tok.id = attrs["id"]
		tok.prefix = attrs["prefix"]
		tok.hash = attrs["hash"]

		if tok.id == "" {
			return nil, &ParseError{
				Path:   path,
				Line:   tok.line,
				Marker: snippet(raw[open:tok.end]),
				Reason: "marker is missing an id attribute",
			}
		}

		tokens = append(tokens, tok)
		pos = tok.end
	}
	return tokens, nil
}

// findClose locates the comment terminator for a marker that opened just
// before inner. Returns the terminator offset and its length.
func findClose(raw string, inner int, style Style) (int, int, bool) {
	if style.Close == "" {
		// Line-comment style: the marker ends at the newline.
		if nl := strings.IndexByte(raw[inner:], '\n'); nl >= 0 {
			return inner + nl, 0, true
		}
		return len(raw), 0, true
	}
	rel := strings.Index(raw[inner:], style.Close)
	if rel < 0 {
		return 0, 0, false
	}
	return inner + rel, len(style.Close), true
}

// parseAttrs reads space-separated key="value" pairs.
func parseAttrs(s string) (map[string]string, error) {
	attrs := make(map[string]string)
	s = strings.TrimSpace(s)
	for s != "" {
		eq := strings.IndexByte(s, '=')
		if eq < 0 {
			return nil, fmt.Errorf("malformed attribute list near %q", snippet(s))
		}
		key := strings.TrimSpace(s[:eq])
		rest := s[eq+1:]
		if !strings.HasPrefix(rest, `"`) {
			return nil, fmt.Errorf("attribute %q value is not quoted", key)
		}
		rest = rest[1:]
		closing := strings.IndexByte(rest, '"')
		if closing < 0 {
			return nil, fmt.Errorf("attribute %q value is missing a closing quote", key)
		}
		attrs[key] = rest[:closing]
		s = strings.TrimSpace(rest[closing+1:])
	}
	return attrs, nil
}

// lineAt returns the 1-based line number of the byte offset.
func lineAt(raw string, off int) int {
	return strings.Count(raw[:off], "\n") + 1
}

// snippet shortens marker text for error messages.
func snippet(s string) string {
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[:nl]
	}
	if len(s) > 80 {
		s = s[:80] + "…"
	}
	return s
}
