package service_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr domain.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestValidateCheckoutForm(t *testing.T) {
	require.NoError(t, service.ValidateForm(validCheckoutForm()))

	t.Run("Empty", func(t *testing.T) {
		fields := fieldErrors(t, service.ValidateForm(service.CheckoutForm{}))
		assert.Equal(t, "First name is required", fields["firstName"])
		assert.Equal(t, "Payment method is required", fields["paymentMethod"])
		assert.NotContains(t, fields, "cardNumber")
	})

	tests := []struct {
		name  string
		mod   func(*service.CheckoutForm)
		field string
		want  string
	}{
		{"ShortCVV", func(f *service.CheckoutForm) { f.CVV = "12" }, "cvv", "Please enter a valid CVV"},
		{"BadExpiry", func(f *service.CheckoutForm) { f.ExpiryDate = "13/30" }, "expiryDate", "Please enter a valid date in MM/YY format"},
		{"Country", func(f *service.CheckoutForm) { f.Country = "FR" }, "country", "Please select a supported country"},
		{"MissingCard", func(f *service.CheckoutForm) { f.CardName = "" }, "cardName", "Card name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validCheckoutForm()
			tt.mod(&f)
			fields := fieldErrors(t, service.ValidateForm(f))
			assert.Equal(t, map[string]string{tt.field: tt.want}, fields)
		})
	}
}

func TestValidateRegisterForm(t *testing.T) {
	valid := service.RegisterForm{
		Name:            "Jane",
		Email:           "jane@example.com",
		Password:        "Secret1!",
		ConfirmPassword: "Secret1!",
		Terms:           true,
	}
	require.NoError(t, service.ValidateForm(valid))

	tests := []struct {
		name  string
		mod   func(*service.RegisterForm)
		field string
		want  string
	}{
		{"ShortName", func(f *service.RegisterForm) { f.Name = "J" }, "name", "Name must be at least 2 characters"},
		{"ShortPassword", func(f *service.RegisterForm) { f.Password, f.ConfirmPassword = "Ab1!", "Ab1!" }, "password", "Password must be at least 6 characters"},
		{"WeakPassword", func(f *service.RegisterForm) { f.Password, f.ConfirmPassword = "secret1!", "secret1!" }, "password", "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character"},
		{"Mismatch", func(f *service.RegisterForm) { f.ConfirmPassword = "Secret2!" }, "confirmPassword", "Passwords do not match"},
		{"NoConfirm", func(f *service.RegisterForm) { f.ConfirmPassword = "" }, "confirmPassword", "Please confirm your password"},
		{"Terms", func(f *service.RegisterForm) { f.Terms = false }, "terms", "You must agree to the terms and conditions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mod(&f)
			fields := fieldErrors(t, service.ValidateForm(f))
			assert.Equal(t, map[string]string{tt.field: tt.want}, fields)
		})
	}
}

func TestValidateProfileForm(t *testing.T) {
	require.NoError(t, service.ValidateForm(service.ProfileForm{}))

	bad := "not-an-email"
	fields := fieldErrors(t, service.ValidateForm(service.ProfileForm{Email: &bad}))
	assert.Equal(t, "Invalid email address", fields["email"])
}
