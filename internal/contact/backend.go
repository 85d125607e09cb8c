package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// BackendSink forwards contact messages and subscriptions to the backend
// REST API.
type BackendSink struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

func NewBackendSink(baseURL string, timeout time.Duration) *BackendSink {
	return &BackendSink{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
	}
}

func (b *BackendSink) SubmitMessage(ctx context.Context, msg domain.ContactMessage) error {
	status, err := b.post(ctx, "/api/contact/", msg)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("backend contact submit returned %d", status)
	}
	return nil
}

func (b *BackendSink) Subscribe(ctx context.Context, sub domain.NewsletterSubscription) error {
	status, err := b.post(ctx, "/api/newsletter/subscribe", sub)
	if err != nil {
		return err
	}
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusBadRequest || status == http.StatusConflict:
		// the backend rejects duplicate subscriptions with 400
		return ErrAlreadySubscribed
	default:
		return fmt.Errorf("backend subscribe returned %d", status)
	}
}

func (b *BackendSink) post(ctx context.Context, path string, body interface{}) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("backend post %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
