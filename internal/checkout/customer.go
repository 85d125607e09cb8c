package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// Field names accepted by UpdateCustomerInfo and CopyField.
const (
	FieldEmail   = "email"
	FieldName    = "name"
	FieldTerms   = "terms"
	FieldAddress = "address"
	FieldAmount  = "amount"
)

// customerInfo mirrors the order draft for rule checking.
type customerInfo struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required"`
	Terms bool   `validate:"eq=true"`
}

// UpdateCustomerInfo mutates one draft field. Only legal while the session
// is still in review; afterwards the draft is locked in.
func (c *Controller) UpdateCustomerInfo(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stage != domain.StageReview {
		return fmt.Errorf("%w: customer info is read-only in stage %s", ErrIllegalTransition, c.stage)
	}
	c.touchLocked()

	switch field {
	case FieldEmail:
		c.draft.CustomerEmail = strings.TrimSpace(value)
	case FieldName:
		c.draft.CustomerName = strings.TrimSpace(value)
	case FieldTerms:
		c.draft.TermsAccepted = value == "true"
	default:
		return fmt.Errorf("unknown customer field %q", field)
	}
	return nil
}

// SetTermsAccepted toggles the terms checkbox.
func (c *Controller) SetTermsAccepted(accepted bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stage != domain.StageReview {
		return fmt.Errorf("%w: customer info is read-only in stage %s", ErrIllegalTransition, c.stage)
	}
	c.touchLocked()
	c.draft.TermsAccepted = accepted
	return nil
}

// validateDraftLocked checks the review-stage constraints and reports every
// violated one.
func (c *Controller) validateDraftLocked() *ValidationError {
	info := customerInfo{
		Email: c.draft.CustomerEmail,
		Name:  c.draft.CustomerName,
		Terms: c.draft.TermsAccepted,
	}

	err := c.validate.Struct(info)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []FieldError{{Field: "customer", Reason: err.Error()}}}
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, fieldError(fe))
	}
	return out
}

func fieldError(fe validator.FieldError) FieldError {
	switch fe.Field() {
	case "Email":
		if fe.Tag() == "required" {
			return FieldError{Field: FieldEmail, Reason: "email is required"}
		}
		return FieldError{Field: FieldEmail, Reason: "email is not a valid address"}
	case "Name":
		return FieldError{Field: FieldName, Reason: "name is required"}
	case "Terms":
		return FieldError{Field: FieldTerms, Reason: "terms must be accepted"}
	default:
		return FieldError{Field: strings.ToLower(fe.Field()), Reason: fe.Tag()}
	}
}
