package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/content"
	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

type ContentHandler struct {
	content *content.Service
}

func NewContentHandler(c *content.Service) *ContentHandler {
	return &ContentHandler{content: c}
}

type PostsResponse struct {
	Posts []domain.BlogPost `json:"posts"`
}

type FAQsResponse struct {
	FAQs []domain.FAQ `json:"faqs"`
}

type TestimonialsResponse struct {
	Testimonials []domain.Testimonial `json:"testimonials"`
}

func (h *ContentHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.Posts(r.Context(), r.URL.Query().Get("tag"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load posts")
		return
	}
	respondJSON(w, http.StatusOK, &PostsResponse{Posts: posts})
}

func (h *ContentHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.content.PostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, content.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "post_not_found", "blog post not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load post")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *ContentHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.SearchPosts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "search failed")
		return
	}
	respondJSON(w, http.StatusOK, &PostsResponse{Posts: posts})
}

func (h *ContentHandler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	faqs, err := h.content.FAQs(r.Context(), q.Get("category"), q.Get("q"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load faqs")
		return
	}
	respondJSON(w, http.StatusOK, &FAQsResponse{FAQs: faqs})
}

func (h *ContentHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.Testimonials(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load testimonials")
		return
	}
	respondJSON(w, http.StatusOK, &TestimonialsResponse{Testimonials: items})
}

func (h *ContentHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.content.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
