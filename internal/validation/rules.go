// Package validation implements the declarative field validation used by the
// API handlers. Rules are evaluated in declaration order and the first
// failing rule's message is the one reported to the client.
package validation

import (
	"regexp"
	"unicode/utf8"

	"pustaka/internal/models"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Rule is a single (field, predicate, message) check. Check returns true
// when the value is valid.
type Rule struct {
	Field   string
	Check   func() bool
	Message string
}

// First evaluates rules in order and returns a validation error carrying the
// first failing rule's message, or nil when every rule passes.
func First(rules []Rule) *models.AppError {
	for _, r := range rules {
		if !r.Check() {
			return models.NewValidationError(r.Message)
		}
	}
	return nil
}

// Required builds a rule that fails when the value is empty.
func Required(field, value, message string) Rule {
	return Rule{
		Field:   field,
		Check:   func() bool { return value != "" },
		Message: message,
	}
}

// MaxLen builds a rule that fails when the value exceeds max characters.
// Empty values pass; pair with Required when the field is mandatory.
func MaxLen(field, value string, max int, message string) Rule {
	return Rule{
		Field:   field,
		Check:   func() bool { return utf8.RuneCountInString(value) <= max },
		Message: message,
	}
}

// MinLen builds a rule that fails when the value is shorter than min characters.
func MinLen(field, value string, min int, message string) Rule {
	return Rule{
		Field:   field,
		Check:   func() bool { return utf8.RuneCountInString(value) >= min },
		Message: message,
	}
}

// Email builds a rule that fails when the value is not a plausible address.
func Email(field, value, message string) Rule {
	return Rule{
		Field:   field,
		Check:   func() bool { return emailRegex.MatchString(value) },
		Message: message,
	}
}
