package service

import "github.com/niksmo/storefront/internal/core/domain"

type CheckoutForm struct {
	FirstName     string `json:"firstName" label:"First name" validate:"required"`
	LastName      string `json:"lastName" label:"Last name" validate:"required"`
	Email         string `json:"email" label:"Email" validate:"required,email"`
	Phone         string `json:"phone" label:"Phone number" validate:"required"`
	Address       string `json:"address" label:"Address" validate:"required"`
	City          string `json:"city" label:"City" validate:"required"`
	State         string `json:"state" label:"State" validate:"required"`
	ZipCode       string `json:"zipCode" label:"ZIP code" validate:"required"`
	Country       string `json:"country" label:"Country" validate:"required,oneof=US CA UK AU" invalid:"Please select a supported country"`
	PaymentMethod string `json:"paymentMethod" label:"Payment method" validate:"required,oneof=credit-card paypal" invalid:"Please select a payment method"`
	CardName      string `json:"cardName" label:"Card name" validate:"required_if=PaymentMethod credit-card"`
	CardNumber    string `json:"cardNumber" label:"Card number" validate:"required_if=PaymentMethod credit-card,omitempty,card" invalid:"Please enter a valid 16-digit card number"`
	ExpiryDate    string `json:"expiryDate" label:"Expiry date" validate:"required_if=PaymentMethod credit-card,omitempty,expiry" invalid:"Please enter a valid date in MM/YY format"`
	CVV           string `json:"cvv" label:"CVV" validate:"required_if=PaymentMethod credit-card,omitempty,cvv" invalid:"Please enter a valid CVV"`
}

func (f CheckoutForm) shipping() domain.ShippingDetails {
	return domain.ShippingDetails{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Address:   f.Address,
		City:      f.City,
		State:     f.State,
		ZipCode:   f.ZipCode,
		Country:   f.Country,
	}
}

type LoginForm struct {
	Email    string `json:"email" label:"Email" validate:"required"`
	Password string `json:"password" label:"Password" validate:"required"`
}

type RegisterForm struct {
	Name            string `json:"name" label:"Name" validate:"required,min=2"`
	Email           string `json:"email" label:"Email" validate:"required,email"`
	Password        string `json:"password" label:"Password" validate:"required,min=6,password" invalid:"Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character"`
	ConfirmPassword string `json:"confirmPassword" label:"Password confirmation" validate:"required,eqfield=Password" missing:"Please confirm your password"`
	Terms           bool   `json:"terms" label:"Terms" validate:"required" missing:"You must agree to the terms and conditions"`
}

type ProfileForm struct {
	Name    *string `json:"name,omitempty" label:"Name" validate:"omitnil,min=1"`
	Email   *string `json:"email,omitempty" label:"Email" validate:"omitnil,email"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	ZipCode *string `json:"zipCode,omitempty"`
	Country *string `json:"country,omitempty"`
}

func (f ProfileForm) Update() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Address: f.Address,
		City:    f.City,
		State:   f.State,
		ZipCode: f.ZipCode,
		Country: f.Country,
	}
}
