package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo_LinearFlow(t *testing.T) {
	assert.True(t, CanTransitionTo(StageReview, StagePayment))
	assert.True(t, CanTransitionTo(StagePayment, StageConfirmed))
}

func TestCanTransitionTo_BackNavigation(t *testing.T) {
	assert.True(t, CanTransitionTo(StagePayment, StageReview))
	assert.False(t, CanTransitionTo(StageReview, StageConfirmed))
	assert.False(t, CanTransitionTo(StageConfirmed, StagePayment))
	assert.False(t, CanTransitionTo(StageConfirmed, StageReview))
}

func TestStage_IsTerminal(t *testing.T) {
	assert.False(t, StageReview.IsTerminal())
	assert.False(t, StagePayment.IsTerminal())
	assert.True(t, StageConfirmed.IsTerminal())
}
