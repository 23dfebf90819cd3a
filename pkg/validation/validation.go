// Package validation holds field-level checks shared by the entity forms.
package validation

import (
	"net/mail"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Violations maps a form field to a user-facing message.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records msg for field unless the field already has a violation.
func (v Violations) Add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

// Err returns nil when there are no violations.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return &Error{Fields: v}
}

// Error is returned by use cases when input is rejected before any store call.
type Error struct {
	Fields Violations
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func MinLen(field, value string, n int, msg string, v Violations) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < n {
		v.Add(field, msg)
	}
}

// URLOrEmpty accepts an empty string or an absolute http(s) URL with a host.
func URLOrEmpty(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if !IsURL(value) {
		v.Add(field, "Please enter a valid URL")
	}
}

func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// EmailOrEmpty accepts an empty string or a bare address (no display name).
func EmailOrEmpty(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if !IsEmail(value) {
		v.Add(field, "Please enter a valid email")
	}
}

func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}

// IntInRange parses raw as a base-10 integer and checks it against [min, max].
// ok is false when raw is not numeric or the value is out of range.
func IntInRange(field, raw string, min, max int, msg string, v Violations) (n int, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < min || n > max {
		v.Add(field, msg)
		return 0, false
	}
	return n, true
}
