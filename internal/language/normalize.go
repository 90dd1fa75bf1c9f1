package language

import "strings"

// NormalizeTag canonicalizes a language tag: lowercase, "-" separators,
// empty segments collapsed. Blank input or anything beyond letters and
// separators normalizes to "".
func NormalizeTag(raw string) string {
	var tag strings.Builder
	pendingSep := false
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r == '-' || r == '_':
			if tag.Len() > 0 {
				pendingSep = true
			}
		case r >= 'a' && r <= 'z':
			if pendingSep {
				tag.WriteByte('-')
				pendingSep = false
			}
			tag.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if pendingSep {
				tag.WriteByte('-')
				pendingSep = false
			}
			tag.WriteRune(r + 'a' - 'A')
		default:
			return ""
		}
	}
	return tag.String()
}

// NormalizeCode reduces a tag to its primary subtag ("en" from "en-US").
func NormalizeCode(raw string) string {
	tag := NormalizeTag(raw)
	if i := strings.IndexByte(tag, '-'); i >= 0 {
		return tag[:i]
	}
	return tag
}
