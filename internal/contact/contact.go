package contact

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// Sink receives validated contact messages and newsletter subscriptions,
// either the backend API or local storage.
type Sink interface {
	SubmitMessage(ctx context.Context, msg domain.ContactMessage) error
	Subscribe(ctx context.Context, sub domain.NewsletterSubscription) error
}

var ErrAlreadySubscribed = errors.New("email already subscribed")

// MessageInput is the contact form payload.
type MessageInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Service validates submissions before they reach the sink.
type Service struct {
	sink     Sink
	validate *validator.Validate
}

func NewService(sink Sink) *Service {
	return &Service{
		sink:     sink,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Service) SubmitMessage(ctx context.Context, input MessageInput) (*domain.ContactMessage, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	msg := domain.ContactMessage{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   strings.TrimSpace(input.Message),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sink.SubmitMessage(ctx, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *Service) Subscribe(ctx context.Context, email string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return err
	}

	return s.sink.Subscribe(ctx, domain.NewsletterSubscription{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		SubscribedAt: time.Now().UTC(),
	})
}

// MemorySink keeps submissions in memory. Used when no backend is
// configured.
type MemorySink struct {
	mu          sync.Mutex
	messages    []domain.ContactMessage
	subscribers map[string]domain.NewsletterSubscription
}

func NewMemorySink() *MemorySink {
	return &MemorySink{
		subscribers: make(map[string]domain.NewsletterSubscription),
	}
}

func (m *MemorySink) SubmitMessage(_ context.Context, msg domain.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *MemorySink) Subscribe(_ context.Context, sub domain.NewsletterSubscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.subscribers[sub.Email]; exists {
		return ErrAlreadySubscribed
	}
	m.subscribers[sub.Email] = sub
	return nil
}

// Messages returns a copy of the stored messages.
func (m *MemorySink) Messages() []domain.ContactMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ContactMessage, len(m.messages))
	copy(out, m.messages)
	return out
}
