package domain

import "strings"

// sanitizeReplacer escapes the characters that allow markup injection.
// The forward slash is included so closing tags cannot be reconstructed.
var sanitizeReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// SanitizeText HTML-entity-escapes user-supplied text for rendering in a
// trust-reduced markup context. It is the sole XSS defense for quote text and
// author names and must be applied exactly once per render site: the function
// is not idempotent, and escaped text must never be written back to storage.
func SanitizeText(text string) string {
	if text == "" {
		return ""
	}

	return sanitizeReplacer.Replace(text)
}
