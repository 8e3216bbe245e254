package marker

import (
	"encoding/hex"
	"strings"

	"github.com/zeebo/blake3"
)

// HashLen is the number of hex characters kept from the BLAKE3 digest.
// 64 bits is far beyond what accidental collisions between rule bodies
// require, and keeps marker lines readable.
const HashLen = 16

// Sum computes the content fingerprint of body. The body is normalized
// first so that platform line-ending conventions and trailing whitespace
// never register as drift.
func Sum(body string) string {
	digest := blake3.Sum256([]byte(Normalize(body)))
	return hex.EncodeToString(digest[:])[:HashLen]
}

// Normalize converts CRLF to LF, strips trailing whitespace from every
// line, and drops leading and trailing blank lines. The leading trim
// keeps a body rendered on its own line between markers hashing equal to
// the canonical content it mirrors. Two bodies hash equal iff they are
// identical after this normalization.
func Normalize(body string) string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
