// Package domain contains core business entities and rules.
package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Quote length bounds. The update path and the submission path enforce
// different maximums on purpose; do not unify them.
const (
	// TextMinLength is the minimum trimmed quote length on the edit path.
	TextMinLength = 10

	// TextMaxLength is the maximum trimmed quote length on the edit path.
	TextMaxLength = 280

	// CreateTextMaxLength is the looser maximum the submission path allows.
	CreateTextMaxLength = 500

	// AuthorMaxLength is the maximum stored author name length.
	AuthorMaxLength = 100

	// DefaultAuthor is stored when a submitted author name trims to nothing.
	DefaultAuthor = "Unknown"
)

// Quote represents one community-submitted quotation.
// UserID is assigned at creation and never changes; every authorization
// check compares against it.
type Quote struct {
	// ID is the unique identifier, assigned at creation.
	ID string

	// QuoteText is the quote body, always within bounds at rest.
	QuoteText string

	// AuthorName is who said or wrote the quote, never blank at rest.
	AuthorName string

	// UserID identifies the owning user.
	UserID string

	// CreatedAt is set once at creation.
	CreatedAt time.Time

	// UpdatedAt is overwritten on every successful update.
	UpdatedAt time.Time
}

// IsOwnedBy reports whether the quote belongs to the given user.
func (q *Quote) IsOwnedBy(userID string) bool {
	return q.UserID == userID
}

// ValidateUpdateText trims the raw text and checks the edit-path bounds.
// Returns the trimmed text on success.
func ValidateUpdateText(raw string) (string, error) {
	text := strings.TrimSpace(raw)

	if text == "" {
		return "", NewValidationError("quote_text", "Quote text is required")
	}

	length := utf8.RuneCountInString(text)
	if length < TextMinLength {
		return "", NewValidationError("quote_text", "Quote must be at least 10 characters long")
	}

	if length > TextMaxLength {
		return "", NewValidationError("quote_text", "Quote must be no more than 280 characters long")
	}

	return text, nil
}

// ValidateCreateText trims the raw text and checks the submission-path bound.
// The submission path never enforced the 10..280 edit bounds; only the
// 500-character ceiling applies here.
func ValidateCreateText(raw string) (string, error) {
	text := strings.TrimSpace(raw)

	if text == "" {
		return "", NewValidationError("quote_text", "Quote text is required")
	}

	if utf8.RuneCountInString(text) > CreateTextMaxLength {
		return "", NewValidationError("quote_text", "Quote must be no more than 500 characters long")
	}

	return text, nil
}

// ResolveAuthorName trims the raw author name, substitutes DefaultAuthor when
// the result is empty, and clamps the value at AuthorMaxLength runes.
func ResolveAuthorName(raw string) string {
	author := strings.TrimSpace(raw)
	if author == "" {
		return DefaultAuthor
	}

	if utf8.RuneCountInString(author) > AuthorMaxLength {
		runes := []rune(author)
		author = strings.TrimSpace(string(runes[:AuthorMaxLength]))
	}

	return author
}
