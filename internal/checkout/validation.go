package checkout

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Strictness selects how much a step checks before it lets the shopper
// advance. NonEmpty only requires the fields to be filled in.
type Strictness string

const (
	StrictnessNonEmpty Strictness = "nonempty"
	StrictnessStrict   Strictness = "strict"
)

func ParseStrictness(s string) (Strictness, error) {
	switch Strictness(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrictnessNonEmpty:
		return StrictnessNonEmpty, nil
	case StrictnessStrict:
		return StrictnessStrict, nil
	}
	return "", fmt.Errorf("unknown checkout validation %q", s)
}

type Validator interface {
	ValidateShipping(Shipping) []FieldError
	ValidatePayment(Payment) []FieldError
}

type rule[T any] struct {
	field string
	tag   string
	value func(T) string
}

type tagValidator struct {
	v        *validator.Validate
	shipping []rule[Shipping]
	payment  []rule[Payment]
}

var (
	zipRe    = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

var customTags = map[string]validator.Func{
	"zipcode": func(fl validator.FieldLevel) bool {
		return zipRe.MatchString(fl.Field().String())
	},
	"card_expiry": func(fl validator.FieldLevel) bool {
		return expiryRe.MatchString(fl.Field().String())
	},
}

func registerTags(v *validator.Validate, tags map[string]validator.Func) error {
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q: %w", tag, err)
		}
	}
	return nil
}

// newValidate panics when a custom tag cannot be registered, like
// regexp.MustCompile does for a bad pattern.
func newValidate() *validator.Validate {
	v := validator.New()
	if err := registerTags(v, customTags); err != nil {
		panic(err)
	}
	return v
}

func shippingRules(tags map[string]string) []rule[Shipping] {
	tag := func(field string) string {
		if t, ok := tags[field]; ok {
			return t
		}
		return "required"
	}
	return []rule[Shipping]{
		{"first_name", tag("first_name"), func(s Shipping) string { return s.FirstName }},
		{"last_name", tag("last_name"), func(s Shipping) string { return s.LastName }},
		{"email", tag("email"), func(s Shipping) string { return s.Email }},
		{"phone", tag("phone"), func(s Shipping) string { return s.Phone }},
		{"address", tag("address"), func(s Shipping) string { return s.Address }},
		{"city", tag("city"), func(s Shipping) string { return s.City }},
		{"zip_code", tag("zip_code"), func(s Shipping) string { return s.ZIPCode }},
	}
}

func paymentRules(tags map[string]string) []rule[Payment] {
	tag := func(field string) string {
		if t, ok := tags[field]; ok {
			return t
		}
		return "required"
	}
	return []rule[Payment]{
		{"card_number", tag("card_number"), func(p Payment) string { return p.CardNumber }},
		{"expiry", tag("expiry"), func(p Payment) string { return p.Expiry }},
		{"cvv", tag("cvv"), func(p Payment) string { return p.CVV }},
		{"card_name", tag("card_name"), func(p Payment) string { return p.CardName }},
	}
}

// NonEmptyValidator requires every mandatory field to hold something other
// than whitespace.
func NonEmptyValidator() Validator {
	return &tagValidator{
		v:        newValidate(),
		shipping: shippingRules(nil),
		payment:  paymentRules(nil),
	}
}

// StrictValidator adds format checks: email syntax, US ZIP codes, Luhn card
// numbers, MM/YY expiry and a 3-4 digit CVV.
func StrictValidator() Validator {
	return &tagValidator{
		v: newValidate(),
		shipping: shippingRules(map[string]string{
			"email":    "required,email",
			"phone":    "required,min=7,max=20",
			"zip_code": "required,zipcode",
		}),
		payment: paymentRules(map[string]string{
			"card_number": "required,credit_card",
			"expiry":      "required,card_expiry",
			"cvv":         "required,numeric,min=3,max=4",
		}),
	}
}

func NewValidator(s Strictness) Validator {
	if s == StrictnessStrict {
		return StrictValidator()
	}
	return NonEmptyValidator()
}

func (t *tagValidator) ValidateShipping(s Shipping) []FieldError {
	return check(t.v, t.shipping, s)
}

func (t *tagValidator) ValidatePayment(p Payment) []FieldError {
	return check(t.v, t.payment, p)
}

func check[T any](v *validator.Validate, rules []rule[T], value T) []FieldError {
	var out []FieldError
	for _, r := range rules {
		err := v.Var(strings.TrimSpace(r.value(value)), r.tag)
		if err == nil {
			continue
		}
		reason := "invalid"
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			reason = verrs[0].Tag()
		}
		out = append(out, FieldError{Field: r.field, Reason: reason})
	}
	return out
}
