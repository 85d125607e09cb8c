package contact

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitMessage_Valid(t *testing.T) {
	sink := NewMemorySink()
	svc := NewService(sink)

	msg, err := svc.SubmitMessage(context.Background(), MessageInput{
		Name:    gofakeit.Name(),
		Email:   gofakeit.Email(),
		Subject: "Download link",
		Message: "I have not received my download link yet.",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Len(t, sink.Messages(), 1)
}

func TestSubmitMessage_MissingFields(t *testing.T) {
	svc := NewService(NewMemorySink())

	msg, err := svc.SubmitMessage(context.Background(), MessageInput{
		Name:  "Jane",
		Email: "not-an-email",
	})

	assert.Error(t, err)
	assert.Nil(t, msg)
}

func TestSubscribe_DeduplicatesEmail(t *testing.T) {
	svc := NewService(NewMemorySink())

	require.NoError(t, svc.Subscribe(context.Background(), "Jane@X.com"))

	err := svc.Subscribe(context.Background(), "jane@x.com")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	svc := NewService(NewMemorySink())

	assert.Error(t, svc.Subscribe(context.Background(), "nope"))
}
