// Package validation collects per-field errors the way the API reports
// them: every failing field is included with all of its messages, never
// just the first failure.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"
)

// Errors maps a field name to its error messages.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Empty() bool { return len(e) == 0 }

// Required adds an error when value is blank and reports whether it was set.
func (e Errors) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "This field is required.")
		return false
	}
	return true
}

// MaxLen adds an error when value exceeds n characters.
func (e Errors) MaxLen(field, value string, n int) {
	if len([]rune(value)) > n {
		e.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", n))
	}
}

// Email adds an error when value is set but not a plain address.
func (e Errors) Email(field, value string) {
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		e.Add(field, "Enter a valid email address.")
	}
}

// OneOf adds an error when value is set but not a member of choices.
func (e Errors) OneOf(field, value string, choices []string) {
	if value == "" {
		return
	}
	for _, c := range choices {
		if value == c {
			return
		}
	}
	e.Add(field, fmt.Sprintf("%q is not a valid choice.", value))
}

// Date adds an error when value is set but not a calendar date in
// YYYY-MM-DD form.
func (e Errors) Date(field, value string) {
	if value == "" {
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		e.Add(field, "Date has wrong format. Use YYYY-MM-DD.")
	}
}

// Password enforces the account password policy: at least 8 characters and
// not entirely numeric.
func (e Errors) Password(field, value string) {
	if len(value) < 8 {
		e.Add(field, "This password is too short. It must contain at least 8 characters.")
	}
	allDigits := len(value) > 0
	for _, r := range value {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		e.Add(field, "This password is entirely numeric.")
	}
}
