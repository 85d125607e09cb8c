package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// BackendSource fetches content from the backend REST API.
type BackendSource struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

func NewBackendSource(baseURL string, timeout time.Duration) *BackendSource {
	return &BackendSource{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
	}
}

func (b *BackendSource) FetchPosts(ctx context.Context) ([]domain.BlogPost, error) {
	var posts []domain.BlogPost
	if err := b.get(ctx, "/api/blog/posts", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (b *BackendSource) FetchFAQs(ctx context.Context) ([]domain.FAQ, error) {
	var faqs []domain.FAQ
	if err := b.get(ctx, "/api/faq/", &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

func (b *BackendSource) FetchTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	var items []domain.Testimonial
	if err := b.get(ctx, "/api/testimonials/", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (b *BackendSource) FetchStats(ctx context.Context) (*domain.SiteStats, error) {
	var stats domain.SiteStats
	if err := b.get(ctx, "/api/stats/", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (b *BackendSource) get(ctx context.Context, path string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend fetch %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend fetch %s returned %d", path, resp.StatusCode)
	}

	if errDecode := json.NewDecoder(resp.Body).Decode(out); errDecode != nil {
		return fmt.Errorf("decode %s failed: %w", path, errDecode)
	}
	return nil
}
