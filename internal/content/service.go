package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// Service answers the content read endpoints: blog listing, slug lookup,
// search, FAQ category filtering, testimonials and stats. Fetches go
// through an optional redis cache-aside with singleflight so a content
// page reload does not stampede the backend.
type Service struct {
	source Source
	client *redis.Client // nil disables caching
	ttl    time.Duration
	sfg    singleflight.Group
}

func NewService(source Source, client *redis.Client) *Service {
	return &Service{
		source: source,
		client: client,
		ttl:    5 * time.Minute,
	}
}

// Posts returns published posts, optionally narrowed by tag.
func (s *Service) Posts(ctx context.Context, tag string) ([]domain.BlogPost, error) {
	posts, err := s.allPosts(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.BlogPost, 0, len(posts))
	for _, post := range posts {
		if !post.Published {
			continue
		}
		if tag != "" && !hasTag(post, tag) {
			continue
		}
		result = append(result, post)
	}
	return result, nil
}

// PostBySlug resolves one published post.
func (s *Service) PostBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	posts, err := s.allPosts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Slug == slug && posts[i].Published {
			return &posts[i], nil
		}
	}
	return nil, ErrPostNotFound
}

// SearchPosts matches the query against title, excerpt and tags,
// case-insensitive.
func (s *Service) SearchPosts(ctx context.Context, query string) ([]domain.BlogPost, error) {
	posts, err := s.Posts(ctx, "")
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return posts, nil
	}

	result := make([]domain.BlogPost, 0)
	for _, post := range posts {
		if strings.Contains(strings.ToLower(post.Title), needle) ||
			strings.Contains(strings.ToLower(post.Excerpt), needle) ||
			hasTag(post, needle) {
			result = append(result, post)
		}
	}
	return result, nil
}

// FAQs returns published entries, optionally filtered by category and a
// question/answer search query.
func (s *Service) FAQs(ctx context.Context, category, query string) ([]domain.FAQ, error) {
	v, err := s.cached(ctx, "content:faqs", func() (interface{}, error) {
		return s.source.FetchFAQs(ctx)
	}, func(data []byte) (interface{}, error) {
		var faqs []domain.FAQ
		return faqs, json.Unmarshal(data, &faqs)
	})
	if err != nil {
		return nil, err
	}
	faqs := v.([]domain.FAQ)

	needle := strings.ToLower(strings.TrimSpace(query))
	result := make([]domain.FAQ, 0, len(faqs))
	for _, faq := range faqs {
		if !faq.Published {
			continue
		}
		if category != "" && faq.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(faq.Question), needle) &&
			!strings.Contains(strings.ToLower(faq.Answer), needle) {
			continue
		}
		result = append(result, faq)
	}
	return result, nil
}

func (s *Service) Testimonials(ctx context.Context) ([]domain.Testimonial, error) {
	v, err := s.cached(ctx, "content:testimonials", func() (interface{}, error) {
		return s.source.FetchTestimonials(ctx)
	}, func(data []byte) (interface{}, error) {
		var items []domain.Testimonial
		return items, json.Unmarshal(data, &items)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Testimonial), nil
}

func (s *Service) Stats(ctx context.Context) (*domain.SiteStats, error) {
	v, err := s.cached(ctx, "content:stats", func() (interface{}, error) {
		return s.source.FetchStats(ctx)
	}, func(data []byte) (interface{}, error) {
		var stats domain.SiteStats
		return &stats, json.Unmarshal(data, &stats)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.SiteStats), nil
}

func (s *Service) allPosts(ctx context.Context) ([]domain.BlogPost, error) {
	v, err := s.cached(ctx, "content:posts", func() (interface{}, error) {
		return s.source.FetchPosts(ctx)
	}, func(data []byte) (interface{}, error) {
		var posts []domain.BlogPost
		return posts, json.Unmarshal(data, &posts)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.BlogPost), nil
}

// cached runs fetch behind the redis cache-aside and singleflight. decode
// rebuilds the typed value from a cache hit.
func (s *Service) cached(ctx context.Context, key string, fetch func() (interface{}, error), decode func([]byte) (interface{}, error)) (interface{}, error) {
	if s.client == nil {
		return fetch()
	}

	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		data, errGet := s.client.Get(ctx, key).Bytes()
		if errGet == nil {
			decoded, errDecode := decode(data)
			if errDecode == nil {
				return decoded, nil
			}
			slog.Warn("content cache entry corrupt", "key", key, "error", errDecode)
		} else if !errors.Is(errGet, redis.Nil) {
			slog.Warn("content cache get failed", "key", key, "error", errGet)
		}

		fetched, errFetch := fetch()
		if errFetch != nil {
			return nil, errFetch
		}

		go func() {
			payload, errMarshal := json.Marshal(fetched)
			if errMarshal != nil {
				slog.Warn("content cache marshal failed", "key", key, "error", errMarshal)
				return
			}
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.client.Set(setCtx, key, payload, s.ttl).Err(); errSet != nil {
				slog.Warn("content cache set failed", "key", key, "error", errSet)
			}
		}()

		return fetched, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s failed: %w", key, err)
	}
	return v, nil
}

func hasTag(post domain.BlogPost, tag string) bool {
	for _, t := range post.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
