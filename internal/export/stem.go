package export

import (
	"strings"
	"unicode"
)

// DefaultStem is used when a resume name leaves nothing usable for a filename.
const DefaultStem = "resume"

// SanitizeStem turns a resume name into a filename stem. Path separators, reserved
// characters and control characters become "-"; leading and trailing dots and spaces
// are dropped.
func SanitizeStem(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range name {
		if strings.ContainsRune(`/\:*?"<>|`, r) || unicode.IsControl(r) {
			if !lastDash {
				b.WriteRune('-')
			}
			lastDash = true
			continue
		}
		b.WriteRune(r)
		lastDash = false
	}

	stem := strings.Trim(b.String(), " .-")
	if stem == "" {
		return DefaultStem
	}
	return stem
}

// FileName returns "<stem>.<ext>" for a resume name.
func FileName(name, ext string) string {
	return SanitizeStem(name) + "." + strings.TrimPrefix(ext, ".")
}
