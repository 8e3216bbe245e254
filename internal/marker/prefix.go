package marker

import "strings"

// ToMetadataPrefix converts the dash-form prefix used in marker syntax to
// the underscore form used in stored metadata keys. Every dash becomes an
// underscore.
func ToMetadataPrefix(p string) string {
	return strings.ReplaceAll(p, "-", "_")
}

// ToMarkerPrefix is the inverse of ToMetadataPrefix: every underscore
// becomes a dash. For any prefix containing no underscore,
// ToMarkerPrefix(ToMetadataPrefix(p)) == p. Prefixes mixing dashes and
// underscores are not round-trip safe; that combination is rejected by
// ValidPrefix at load time and otherwise left undefined.
func ToMarkerPrefix(p string) string {
	return strings.ReplaceAll(p, "_", "-")
}

// ValidPrefix reports whether p is a usable block prefix: non-empty,
// composed only of letters, digits, dashes, and underscores, and not
// mixing dash with underscore.
func ValidPrefix(p string) bool {
	if p == "" {
		return false
	}
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return !(strings.ContainsRune(p, '-') && strings.ContainsRune(p, '_'))
}
