package domain

// Stage is one step of the checkout wizard.
type Stage string

const (
	StageReview    Stage = "REVIEW"
	StagePayment   Stage = "PAYMENT"
	StageConfirmed Stage = "CONFIRMED"
)

// CanTransitionTo reports whether moving from one stage to another is legal.
// The flow is linear except for explicit back-navigation from payment.
func CanTransitionTo(from, to Stage) bool {
	switch from {
	case StageReview:
		return to == StagePayment
	case StagePayment:
		return to == StageConfirmed || to == StageReview
	default:
		return false
	}
}

func (s Stage) IsTerminal() bool {
	return s == StageConfirmed
}

// String representation (for logging)
func (s Stage) String() string {
	return string(s)
}
