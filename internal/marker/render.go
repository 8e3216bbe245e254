package marker

import (
	"strings"

	"github.com/agentx-labs/rulesync/internal/branding"
)

// Render serializes a managed block back into marker syntax. The content
// hash is always recomputed from the body before emission, so a rendered
// block's stored hash is consistent with its body by construction.
// Rendering is exactly reversible by Parse: id, prefix, hash, and body
// all survive a round trip.
func Render(b Block, style Style) string {
	tag := branding.MarkerTag()
	hash := Sum(b.Body)

	var sb strings.Builder
	sb.WriteString(style.Open)
	sb.WriteString(" ")
	sb.WriteString(tag)
	sb.WriteString(`:start id="`)
	sb.WriteString(b.ID)
	sb.WriteString(`" prefix="`)
	sb.WriteString(ToMarkerPrefix(b.Prefix))
	sb.WriteString(`" hash="`)
	sb.WriteString(hash)
	sb.WriteString(`" `)
	sb.WriteString(style.Close)
	sb.WriteString(b.Body)
	sb.WriteString(style.Open)
	sb.WriteString(" ")
	sb.WriteString(tag)
	sb.WriteString(`:end id="`)
	sb.WriteString(b.ID)
	sb.WriteString(`" `)
	sb.WriteString(style.Close)
	return sb.String()
}

// NewBody wraps canonical rule content as a block body: a leading newline
// so the body starts on its own line after the start marker, the content
// with trailing whitespace trimmed, and a trailing newline so the end
// marker also sits on its own line.
func NewBody(content string) string {
	return "\n" + strings.TrimRight(content, " \t\r\n") + "\n"
}
