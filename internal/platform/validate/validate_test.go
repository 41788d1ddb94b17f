// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Folio", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.Error(t, v.Err())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.NoError(t, v.Err())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"dotted_local_part", "first.last@mail.example.org", true},
		{"plus_local_part", "tag+x@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"short_tld", "test@example.c", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)
			assert.Equal(t, !tt.isValid, v.Err() != nil)
		})
	}
}

func TestValidator_Username(t *testing.T) {
	tests := []struct {
		username string
		isValid  bool
	}{
		{"alice", true},
		{"a.b-c_d9", true},
		{"ab", true},
		{"a", false},
		{"9lives", false},
		{"_hidden", false},
		{"has space", false},
		{"abcdefghijklmnopqrstuv", false},
		{"abcdefghijklmnopqrstu", true},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			v := &validate.Validator{}
			v.Username("username", tt.username)
			assert.Equal(t, !tt.isValid, v.Err() != nil)
		})
	}
}

/*
TestValidator_Password covers each clause of the password policy.
*/
func TestValidator_Password(t *testing.T) {
	tests := []struct {
		name     string
		password string
		isValid  bool
	}{
		{"valid_digit", "Secret123", true},
		{"valid_symbol", "Secret!pass", true},
		{"too_short", "Se1", false},
		{"no_upper", "secret123", false},
		{"no_lower", "SECRET123", false},
		{"no_digit_or_symbol", "SecretPass", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Password("password", tt.password)
			assert.Equal(t, !tt.isValid, v.Err() != nil)
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "tai").
		MaxLen("username", "tai", 10).
		NonNegative("pagesCount", 0).
		Email("email", "tai@folio.com").
		Err()

	assert.NoError(t, err)
	assert.NoError(t, v.Err())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").       // Fails
		Present("email", false).        // Fails
		NonNegative("rating", -1).      // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	assert.Len(t, ae.Details, 4)
}

func TestTaken(t *testing.T) {
	err := validate.Taken("username")
	assert.Equal(t, apperr.CodeConflict, err.Code)
}
