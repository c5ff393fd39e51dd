// Package validation implements request field validation with the message
// dialect the public API documents ("The title field must be at least 3
// characters."). Field errors accumulate per field and keep insertion order
// so the top-level message is deterministic.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Errors collects validation failures keyed by field name.
type Errors struct {
	fields map[string][]string
	order  []string
	count  int
}

// New returns an empty Errors collector.
func New() *Errors {
	return &Errors{fields: make(map[string][]string)}
}

// Add records a failure message for the given field.
func (e *Errors) Add(field, message string) {
	if _, seen := e.fields[field]; !seen {
		e.order = append(e.order, field)
	}
	e.fields[field] = append(e.fields[field], message)
	e.count++
}

// Empty reports whether no failures were recorded.
func (e *Errors) Empty() bool {
	return e.count == 0
}

// Fields returns the per-field failure messages.
func (e *Errors) Fields() map[string][]string {
	return e.fields
}

// Message returns the summary used as the top-level "message" key: the
// first recorded failure, with a trailing count when more exist.
func (e *Errors) Message() string {
	if e.count == 0 {
		return ""
	}
	first := e.fields[e.order[0]][0]
	if e.count == 1 {
		return first
	}
	return fmt.Sprintf("%s (and %d more %s)", first, e.count-1, plural(e.count-1, "error", "errors"))
}

// MarshalJSON serializes only the field map; the summary message is a
// separate response key.
func (e *Errors) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.fields)
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// Field starts a rule chain for a string value. Rules other than Required
// are skipped for empty values, matching the documented dialect where
// presence is required's job alone.
type Field struct {
	errs  *Errors
	name  string
	value string
}

// Field returns a rule chain bound to this collector.
func (e *Errors) Field(name, value string) *Field {
	return &Field{errs: e, name: name, value: value}
}

// Required fails when the value is empty.
func (f *Field) Required() *Field {
	if f.value == "" {
		f.errs.Add(f.name, fmt.Sprintf("The %s field is required.", f.name))
	}
	return f
}

// Min fails when the value is shorter than n characters.
func (f *Field) Min(n int) *Field {
	if f.value != "" && len([]rune(f.value)) < n {
		f.errs.Add(f.name, fmt.Sprintf("The %s field must be at least %d characters.", f.name, n))
	}
	return f
}

// Max fails when the value is longer than n characters.
func (f *Field) Max(n int) *Field {
	if f.value != "" && len([]rune(f.value)) > n {
		f.errs.Add(f.name, fmt.Sprintf("The %s field must not be greater than %d characters.", f.name, n))
	}
	return f
}

// Email fails when the value is not a plausible email address.
func (f *Field) Email() *Field {
	if f.value != "" && !emailRegex.MatchString(f.value) {
		f.errs.Add(f.name, fmt.Sprintf("The %s field must be a valid email address.", f.name))
	}
	return f
}

// Confirmed fails when the confirmation value does not match.
func (f *Field) Confirmed(confirmation string) *Field {
	if f.value != "" && f.value != confirmation {
		f.errs.Add(f.name, fmt.Sprintf("The %s field confirmation does not match.", f.name))
	}
	return f
}

// ErrEmailTaken is the uniqueness failure message for registration. The
// wording is part of the public API contract.
const ErrEmailTaken = "The email has already been taken."
