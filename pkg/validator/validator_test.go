package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customerForm struct {
	FullName string `json:"full_name" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"required,phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Payment  string `json:"payment_method" validate:"omitempty,oneof=COD bKash Nagad Rocket"`
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	return valErr.Fields()
}

func TestValidate_Success(t *testing.T) {
	err := Validate(customerForm{FullName: "Ayesha Rahman", Phone: "01712345678", Payment: "bKash"})
	assert.NoError(t, err)
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	fields := fieldsOf(t, Validate(customerForm{}))

	assert.Equal(t, "is required", fields["full_name"])
	assert.Equal(t, "is required", fields["phone"])
	assert.NotContains(t, fields, "email")
}

func TestValidate_Phone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"01712345678", true},
		{"+880 1712-345678", true},
		{"12345", false},
		{"call me", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			err := Validate(customerForm{FullName: "x", Phone: tt.phone})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, "must be a valid phone number", fieldsOf(t, err)["phone"])
		})
	}
}

func TestValidate_OneOfAndEmail(t *testing.T) {
	fields := fieldsOf(t, Validate(customerForm{
		FullName: "x",
		Phone:    "01712345678",
		Email:    "not-an-email",
		Payment:  "Card",
	}))

	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Contains(t, fields["payment_method"], "one of")
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(customerForm{Phone: "01712345678"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'full_name' is required")
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"full_name":"A","phone":"01712345678"}`))
		var f customerForm
		require.NoError(t, DecodeAndValidate(req, &f))
		assert.Equal(t, "A", f.FullName)
	})

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{invalid"))
		var f customerForm
		err := DecodeAndValidate(req, &f)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode request body")
	})

	t.Run("validation fails", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"full_name":""}`))
		var f customerForm
		var valErr *ValidationError
		assert.ErrorAs(t, DecodeAndValidate(req, &f), &valErr)
	})
}
