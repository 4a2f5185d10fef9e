package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	CompanyName string `validate:"required,valid_name"`
	Email       string `validate:"required,email"`
	Password    string `validate:"required,strong_password"`
}

func TestIsStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Passw0rd!": true,
		"passw0rd!": false,
		"PASSW0RD!": false,
		"Password!": false,
		"Passw0rd":  false,
		"Pa0!":      false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsStrongPassword(in), in)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := validator.New()
	RegisterValidators(v)

	t.Run("Should flag missing required fields", func(t *testing.T) {
		err := v.Struct(signup{})
		require.Error(t, err)
		assert.True(t, HasMissingRequired(err))
		assert.Contains(t, FormatValidationErrors(err), "Company name is required")
	})

	t.Run("Should describe format errors", func(t *testing.T) {
		err := v.Struct(signup{CompanyName: "Acme", Email: "nope", Password: "weak"})
		require.Error(t, err)
		assert.False(t, HasMissingRequired(err))

		msgs := FormatValidationErrors(err)
		assert.Contains(t, msgs, "Email is not a valid email address")
		assert.Len(t, msgs, 2)
	})

	t.Run("Should pass valid payload", func(t *testing.T) {
		assert.NoError(t, v.Struct(signup{CompanyName: "Acme & Co.", Email: "hr@acme.io", Password: "Passw0rd!"}))
	})
}
