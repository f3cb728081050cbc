package checkout

import (
	"log/slog"

	"github.com/google/uuid"
)

type Step int

const (
	StepShipping Step = iota + 1
	StepPayment
	StepReview
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	case StepSubmitted:
		return "submitted"
	}
	return "unknown"
}

func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const DefaultCountry = "United States"

type Shipping struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZIPCode   string `json:"zip_code"`
	Country   string `json:"country"`
}

// Payment holds card data for the lifetime of the session only. It is never
// written to an order, a log line or a response body.
type Payment struct {
	CardNumber string
	Expiry     string
	CVV        string
	CardName   string
}

func (p Payment) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("card", MaskCard(p.CardNumber)),
		slog.Bool("has_cvv", p.CVV != ""),
	)
}

// Last4 returns the last four digits of the card number, ignoring separators.
func (p Payment) Last4() string {
	digits := make([]rune, 0, len(p.CardNumber))
	for _, r := range p.CardNumber {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}

func MaskCard(number string) string {
	last4 := Payment{CardNumber: number}.Last4()
	if last4 == "" {
		return ""
	}
	return "**** **** **** " + last4
}

// Session is the step-gated form state collected before an order is placed.
// It is not safe for concurrent use.
type Session struct {
	validator Validator

	step     Step
	shipping Shipping
	payment  Payment
	notes    string

	// attemptKey identifies the review snapshot being submitted so a retried
	// placement can be deduplicated by the placer.
	attemptKey string
}

func NewSession(v Validator) *Session {
	if v == nil {
		v = NonEmptyValidator()
	}
	s := &Session{validator: v}
	s.Reset()
	return s
}

func (s *Session) Step() Step           { return s.step }
func (s *Session) Shipping() Shipping   { return s.shipping }
func (s *Session) Payment() Payment     { return s.payment }
func (s *Session) Notes() string        { return s.notes }
func (s *Session) AttemptKey() string   { return s.attemptKey }
func (s *Session) Validator() Validator { return s.validator }

func (s *Session) SetShipping(sh Shipping) error {
	if s.step != StepShipping {
		return ErrStepLocked
	}
	if sh.Country == "" {
		sh.Country = DefaultCountry
	}
	s.shipping = sh
	return nil
}

func (s *Session) SetPayment(p Payment) error {
	if s.step != StepPayment {
		return ErrStepLocked
	}
	s.payment = p
	return nil
}

func (s *Session) SetNotes(notes string) error {
	if s.step == StepSubmitted {
		return ErrStepLocked
	}
	s.notes = notes
	return nil
}

// MissingFields reports what keeps the current step from advancing.
func (s *Session) MissingFields() []FieldError {
	switch s.step {
	case StepShipping:
		return s.validator.ValidateShipping(s.shipping)
	case StepPayment:
		return s.validator.ValidatePayment(s.payment)
	}
	return nil
}

// Next advances one step when the current step's fields are complete.
func (s *Session) Next() error {
	switch s.step {
	case StepShipping, StepPayment:
		if missing := s.MissingFields(); len(missing) > 0 {
			return &ValidationError{Step: s.step, Fields: missing}
		}
	case StepReview:
		return ErrNoNextStep
	default:
		return ErrStepLocked
	}

	s.step++
	if s.step == StepReview {
		s.attemptKey = uuid.NewString()
	}
	return nil
}

// Back retreats one step, keeping every entered field. On the shipping step
// it does nothing.
func (s *Session) Back() {
	switch s.step {
	case StepPayment:
		s.step = StepShipping
	case StepReview:
		s.step = StepPayment
		s.attemptKey = ""
	}
}

// Reset returns the session to an empty shipping step.
func (s *Session) Reset() {
	s.step = StepShipping
	s.shipping = Shipping{Country: DefaultCountry}
	s.payment = Payment{}
	s.notes = ""
	s.attemptKey = ""
}

func (s *Session) markSubmitted() {
	s.step = StepSubmitted
}
