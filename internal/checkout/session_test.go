package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledShipping() Shipping {
	return Shipping{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "555-0100",
		Address:   "12 Analytical St",
		City:      "London",
		State:     "NY",
		ZIPCode:   "10001",
	}
}

func filledPayment() Payment {
	return Payment{
		CardNumber: "4242424242424242",
		Expiry:     "12/29",
		CVV:        "123",
		CardName:   "Ada Lovelace",
	}
}

func reviewedSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(nil)
	require.NoError(t, s.SetShipping(filledShipping()))
	require.NoError(t, s.Next())
	require.NoError(t, s.SetPayment(filledPayment()))
	require.NoError(t, s.Next())
	require.Equal(t, StepReview, s.Step())
	return s
}

func TestSession_StartsOnShipping(t *testing.T) {
	t.Parallel()

	s := NewSession(nil)
	assert.Equal(t, StepShipping, s.Step())
	assert.Equal(t, DefaultCountry, s.Shipping().Country)
	assert.Empty(t, s.AttemptKey())
	assert.Len(t, s.MissingFields(), 7)
}

func TestSession_NextBlockedUntilShippingComplete(t *testing.T) {
	t.Parallel()

	s := NewSession(nil)
	sh := filledShipping()
	sh.Email = ""
	sh.City = "   "
	require.NoError(t, s.SetShipping(sh))

	err := s.Next()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepShipping, verr.Step)
	assert.Equal(t, []FieldError{{Field: "email", Reason: "required"}, {Field: "city", Reason: "required"}}, verr.Fields)
	assert.Equal(t, StepShipping, s.Step())

	require.NoError(t, s.SetShipping(filledShipping()))
	require.NoError(t, s.Next())
	assert.Equal(t, StepPayment, s.Step())
}

func TestSession_StateIsOptional(t *testing.T) {
	t.Parallel()

	s := NewSession(nil)
	sh := filledShipping()
	sh.State = ""
	sh.Country = ""
	require.NoError(t, s.SetShipping(sh))

	require.NoError(t, s.Next())
	assert.Equal(t, DefaultCountry, s.Shipping().Country)
}

func TestSession_NextBlockedUntilPaymentComplete(t *testing.T) {
	t.Parallel()

	s := NewSession(nil)
	require.NoError(t, s.SetShipping(filledShipping()))
	require.NoError(t, s.Next())

	p := filledPayment()
	p.CVV = ""
	require.NoError(t, s.SetPayment(p))

	var verr *ValidationError
	require.ErrorAs(t, s.Next(), &verr)
	assert.Equal(t, StepPayment, verr.Step)
	assert.Equal(t, []FieldError{{Field: "cvv", Reason: "required"}}, verr.Fields)
	assert.Equal(t, StepPayment, s.Step())
}

func TestSession_ReviewIsLastStep(t *testing.T) {
	t.Parallel()

	s := reviewedSession(t)
	require.NotEmpty(t, s.AttemptKey())

	require.ErrorIs(t, s.Next(), ErrNoNextStep)
	assert.Equal(t, StepReview, s.Step())
}

func TestSession_BackKeepsFields(t *testing.T) {
	t.Parallel()

	s := reviewedSession(t)

	s.Back()
	assert.Equal(t, StepPayment, s.Step())
	assert.Empty(t, s.AttemptKey())
	assert.Equal(t, filledPayment(), s.Payment())

	s.Back()
	assert.Equal(t, StepShipping, s.Step())
	assert.Equal(t, "Ada", s.Shipping().FirstName)

	s.Back()
	assert.Equal(t, StepShipping, s.Step())

	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	assert.Equal(t, StepReview, s.Step())
}

func TestSession_FieldsLockedToTheirStep(t *testing.T) {
	t.Parallel()

	s := NewSession(nil)
	require.ErrorIs(t, s.SetPayment(filledPayment()), ErrStepLocked)

	require.NoError(t, s.SetShipping(filledShipping()))
	require.NoError(t, s.Next())
	require.ErrorIs(t, s.SetShipping(Shipping{}), ErrStepLocked)
	assert.Equal(t, "Ada", s.Shipping().FirstName)
}

func TestSession_NotesEditableUntilSubmitted(t *testing.T) {
	t.Parallel()

	s := reviewedSession(t)
	require.NoError(t, s.SetNotes("leave at the door"))
	assert.Equal(t, "leave at the door", s.Notes())

	s.markSubmitted()
	require.ErrorIs(t, s.SetNotes("late"), ErrStepLocked)
	require.ErrorIs(t, s.Next(), ErrStepLocked)
}

func TestSession_Reset(t *testing.T) {
	t.Parallel()

	s := reviewedSession(t)
	require.NoError(t, s.SetNotes("n"))
	s.Reset()

	assert.Equal(t, StepShipping, s.Step())
	assert.Equal(t, Shipping{Country: DefaultCountry}, s.Shipping())
	assert.Equal(t, Payment{}, s.Payment())
	assert.Empty(t, s.Notes())
	assert.Empty(t, s.AttemptKey())
}

func TestStep_MarshalText(t *testing.T) {
	t.Parallel()

	b, err := StepReview.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "review", string(b))
	assert.Equal(t, "unknown", Step(0).String())
}

func TestPayment_Masking(t *testing.T) {
	t.Parallel()

	p := Payment{CardNumber: "4242 4242 4242 1234"}
	assert.Equal(t, "1234", p.Last4())
	assert.Equal(t, "**** **** **** 1234", MaskCard(p.CardNumber))
	assert.Empty(t, MaskCard(""))
	assert.NotContains(t, p.LogValue().String(), "4242")
}
