package content

import (
	"context"
	"errors"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// Source supplies the storefront's marketing content. Implementations are
// the seeded in-process source and the backend REST source.
type Source interface {
	FetchPosts(ctx context.Context) ([]domain.BlogPost, error)
	FetchFAQs(ctx context.Context) ([]domain.FAQ, error)
	FetchTestimonials(ctx context.Context) ([]domain.Testimonial, error)
	FetchStats(ctx context.Context) (*domain.SiteStats, error)
}

var (
	ErrPostNotFound = errors.New("blog post not found")
	ErrCacheMiss    = errors.New("cache miss")
)
