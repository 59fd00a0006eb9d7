package models

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestSession_Expired(t *testing.T) {
	s := Session{ExpiresAt: testNow}
	assert.True(t, s.Expired(testNow))
	assert.False(t, s.Expired(testNow.Add(-time.Second)))
	assert.False(t, Session{}.Expired(testNow))
}

func TestValidateSignUp(t *testing.T) {
	tests := []struct {
		name                     string
		email, password, confirm string
		field                    string
	}{
		{"ok", "a@b.c", "secret1", "secret1", ""},
		{"no email", "", "secret1", "secret1", "email"},
		{"short password", "a@b.c", "12345", "12345", "password"},
		{"mismatch", "a@b.c", "secret1", "secret2", "confirm_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignUp(tt.email, tt.password, tt.confirm)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, common.ErrValidation)
			var ve *ValidationError
			if assert.ErrorAs(t, err, &ve) {
				assert.Equal(t, tt.field, ve.Field)
			}
		})
	}
}

func TestValidateSignIn(t *testing.T) {
	assert.NoError(t, ValidateSignIn("a@b.c", "x"))
	assert.ErrorIs(t, ValidateSignIn("", "x"), common.ErrValidation)
	assert.ErrorIs(t, ValidateSignIn("a@b.c", ""), common.ErrValidation)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("123456"))
	assert.ErrorIs(t, ValidatePassword("12345"), common.ErrValidation)
}
