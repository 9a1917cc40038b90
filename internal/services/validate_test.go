package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	testCases := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last@example.com", true},
		{"user+tag@example.co.uk", true},
		{"user_name@sub.example.com", true},
		{"u@example.io", true},
		{"", false},
		{"plainaddress", false},
		{"@example.com", false},
		{"user@", false},
		{"user@example", false},
		{"user name@example.com", false},
		{".user@example.com", false},
		{"user.@example.com", false},
		{"us..er@example.com", false},
		{"user@.example.com", false},
		{"user@example..com", false},
		{"user@example.c", false},
		{"user@example.com" + strings.Repeat("m", 250), false},
	}

	for _, tc := range testCases {
		t.Run(tc.email, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidEmail(tc.email))
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "email", Message: "email is required"}

	assert.Equal(t, "email: email is required", err.Error())
}
