// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Phases
//
// Resource validators run three phases and stop at the first that fails:
// presence (every missing field is reported together), shape (formats and
// bounds), and uniqueness (storage lookups, only when [Options.CheckUniqueness]).
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/taibuivan/folio/internal/platform/apperr"
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]{1,20}$`)
	emailRegex    = regexp.MustCompile(`^[_A-Za-z0-9+-]+(\.[_A-Za-z0-9-]+)*@[A-Za-z0-9-]+(\.[A-Za-z0-9]+)*(\.[A-Za-z]{2,})$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// Options selects the optional checks of a resource validator.
type Options struct {
	// CheckPassword enforces the password policy on the plain-text password.
	CheckPassword bool
	// CheckUniqueness looks up unique keys in storage.
	CheckUniqueness bool
}

// Validator collects field-level validation errors via a fluent, chainable API.
//
// Validator is not safe for concurrent use. Create one per operation.
type Validator struct {
	errs []apperr.FieldError
}

// Present fails when ok is false. Use it for values that may be absent but not blank.
func (v *Validator) Present(field string, ok bool) *Validator {
	if !ok {
		v.add(field, "This field is required")
	}
	return v
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// NonNegative fails if value is below zero.
func (v *Validator) NonNegative(field string, value int) *Validator {
	if value < 0 {
		v.add(field, "Must not be negative")
	}
	return v
}

// Email fails if the value is not a well-formed address.
func (v *Validator) Email(field, value string) *Validator {
	if !emailRegex.MatchString(value) {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Username fails unless the value starts with a letter and has 2 to 21
// characters drawn from letters, digits, '_', '.' and '-'.
func (v *Validator) Username(field, value string) *Validator {
	if !usernameRegex.MatchString(value) {
		v.add(field, "Must start with a letter and contain 2-21 letters, digits, '_', '.' or '-'")
	}
	return v
}

// Password enforces the password policy: at least [MinPasswordLength] characters,
// one upper-case letter, one lower-case letter and one digit or symbol.
func (v *Validator) Password(field, value string) *Validator {
	var upper, lower, other bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r), unicode.IsPunct(r), unicode.IsSymbol(r):
			other = true
		}
	}

	if utf8.RuneCountInString(value) < MinPasswordLength || !upper || !lower || !other {
		v.add(field, fmt.Sprintf(
			"Must have at least %d characters, an upper-case letter, a lower-case letter and a digit or symbol",
			MinPasswordLength))
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("rating", rating > 10, "Must be at most 10")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method. Call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// Taken is the CONFLICT returned when a unique key is already used.
func Taken(field string) *apperr.AppError {
	return apperr.Conflict(fmt.Sprintf("The %s is already in use", field))
}
