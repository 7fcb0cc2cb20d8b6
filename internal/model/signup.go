// Package model defines domain entities for the application.
package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// TimestampLayout is the createdAt format written to the signup log.
// UTC with millisecond precision, e.g. 2026-01-15T12:00:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// emailPattern is a deliberately loose shape check: one @, a dot in the
// domain part, no whitespace anywhere. RE2's \s is ASCII only, so vertical
// tab, the Unicode space separators and the BOM are listed explicitly.
var emailPattern = regexp.MustCompile(`(?i)^[^\s\x{0B}\p{Z}\x{FEFF}@]+@[^\s\x{0B}\p{Z}\x{FEFF}@]+\.[^\s\x{0B}\p{Z}\x{FEFF}@]+$`)

// Signup is one persisted waitlist entry. Records are append-only.
type Signup struct {
	Email     string
	CreatedAt time.Time
}

// signupJSON is the on-disk representation of a Signup.
type signupJSON struct {
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// NewSignup builds a record for email stamped with now in UTC.
func NewSignup(email string, now time.Time) *Signup {
	return &Signup{
		Email:     email,
		CreatedAt: now.UTC(),
	}
}

// MarshalJSON encodes the record as {"email":...,"createdAt":...}.
func (s Signup) MarshalJSON() ([]byte, error) {
	return json.Marshal(signupJSON{
		Email:     s.Email,
		CreatedAt: s.CreatedAt.UTC().Format(TimestampLayout),
	})
}

// UnmarshalJSON decodes a log line back into a Signup.
func (s *Signup) UnmarshalJSON(data []byte) error {
	var raw signupJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	createdAt, err := time.Parse(time.RFC3339Nano, raw.CreatedAt)
	if err != nil {
		return fmt.Errorf("parse createdAt: %w", err)
	}

	s.Email = raw.Email
	s.CreatedAt = createdAt.UTC()
	return nil
}

// NormalizeEmail trims surrounding whitespace, BOM included. Case is preserved.
func NormalizeEmail(email string) string {
	return strings.TrimFunc(email, isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r) || r == '\uFEFF'
}

// IsValidEmail reports whether email has the local@domain.tld shape.
// The caller is expected to normalize first.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
