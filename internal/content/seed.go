package content

import (
	"context"
	"time"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// SeedSource serves content from the bundled data set. Used when no
// backend is configured.
type SeedSource struct {
	posts        []domain.BlogPost
	faqs         []domain.FAQ
	testimonials []domain.Testimonial
	stats        domain.SiteStats
}

func NewSeedSource() *SeedSource {
	return &SeedSource{
		posts:        seedPosts(),
		faqs:         seedFAQs(),
		testimonials: seedTestimonials(),
		stats: domain.SiteStats{
			TotalDownloads:  50000,
			ActiveUsers:     12000,
			SuccessRate:     99,
			CountriesServed: 120,
		},
	}
}

func (s *SeedSource) FetchPosts(context.Context) ([]domain.BlogPost, error) {
	return s.posts, nil
}

func (s *SeedSource) FetchFAQs(context.Context) ([]domain.FAQ, error) {
	return s.faqs, nil
}

func (s *SeedSource) FetchTestimonials(context.Context) ([]domain.Testimonial, error) {
	return s.testimonials, nil
}

func (s *SeedSource) FetchStats(context.Context) (*domain.SiteStats, error) {
	stats := s.stats
	return &stats, nil
}

func seedPosts() []domain.BlogPost {
	return []domain.BlogPost{
		{
			ID:          "1",
			Title:       "Getting Started with SQR400",
			Slug:        "getting-started-with-sqr400",
			Excerpt:     "A walkthrough of installation, licensing and first-run configuration.",
			Content:     "This guide covers installation and the initial setup steps...",
			Author:      "Tech Team",
			PublishDate: time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC),
			ReadTime:    "8 min read",
			Tags:        []string{"sqr400", "guide", "setup"},
			Featured:    true,
			Published:   true,
		},
		{
			ID:          "2",
			Title:       "Choosing Between Lite, Pro and v7.8.4",
			Slug:        "choosing-between-editions",
			Excerpt:     "How the three editions differ and which one fits your workflow.",
			Content:     "The editions differ in usage limits, support tier and tooling...",
			Author:      "Product Team",
			PublishDate: time.Date(2024, 8, 18, 0, 0, 0, 0, time.UTC),
			ReadTime:    "12 min read",
			Tags:        []string{"editions", "comparison"},
			Published:   true,
		},
		{
			ID:          "3",
			Title:       "Paying with Bitcoin: a Checkout Walkthrough",
			Slug:        "paying-with-bitcoin",
			Excerpt:     "What to expect during checkout, from the quote to the download link.",
			Content:     "Checkout quotes a fixed Bitcoin amount with a 30 minute window...",
			Author:      "Support Team",
			PublishDate: time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC),
			ReadTime:    "5 min read",
			Tags:        []string{"bitcoin", "checkout", "payments"},
			Published:   true,
		},
	}
}

func seedFAQs() []domain.FAQ {
	return []domain.FAQ{
		{
			ID:        "1",
			Question:  "How do I purchase the software?",
			Answer:    "Purchase directly from this website. Checkout quotes a Bitcoin amount and the download link is emailed once payment confirms.",
			Category:  "purchase",
			Order:     1,
			Published: true,
		},
		{
			ID:        "2",
			Question:  "How long is the payment window?",
			Answer:    "A quote is valid for 30 minutes. If it expires, go back one step and continue again to get a fresh quote.",
			Category:  "purchase",
			Order:     2,
			Published: true,
		},
		{
			ID:        "3",
			Question:  "What is the difference between the editions?",
			Answer:    "Lite covers the core feature set, Pro removes usage limits, and v7.8.4 is the latest release with the full toolset.",
			Category:  "features",
			Order:     3,
			Published: true,
		},
		{
			ID:        "4",
			Question:  "Do you offer refunds?",
			Answer:    "The Lite edition carries a 30-day money-back guarantee. Contact support for anything else.",
			Category:  "support",
			Order:     4,
			Published: true,
		},
	}
}

func seedTestimonials() []domain.Testimonial {
	return []domain.Testimonial{
		{
			ID:       "1",
			Name:     "Michael Chen",
			Role:     "Systems Analyst",
			Company:  "TechBank Solutions",
			Rating:   5,
			Comment:  "Reliable and well supported. It became a standard part of our toolkit.",
			Avatar:   "MC",
			Verified: true,
			Date:     time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       "2",
			Name:     "Sarah Williams",
			Role:     "Researcher",
			Company:  "CyberSec Labs",
			Rating:   5,
			Comment:  "The v7.8.4 release is a clear step up from earlier versions.",
			Avatar:   "SW",
			Verified: true,
			Date:     time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       "3",
			Name:     "David Rodriguez",
			Role:     "IT Specialist",
			Company:  "Independent",
			Rating:   4,
			Comment:  "Started with Lite, upgraded to Pro. The upgrade path was painless.",
			Avatar:   "DR",
			Verified: true,
			Date:     time.Date(2024, 8, 8, 0, 0, 0, 0, time.UTC),
		},
	}
}
