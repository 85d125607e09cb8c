package content

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, withRedis bool) (*Service, *miniredis.Miniredis) {
	if !withRedis {
		return NewService(NewSeedSource(), nil), nil
	}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewService(NewSeedSource(), client), mr
}

func TestPosts_PublishedOnly(t *testing.T) {
	svc, _ := newTestService(t, false)

	posts, err := svc.Posts(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, posts, 3)
	for _, post := range posts {
		assert.True(t, post.Published)
	}
}

func TestPosts_TagFilter(t *testing.T) {
	svc, _ := newTestService(t, false)

	posts, err := svc.Posts(context.Background(), "bitcoin")

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "paying-with-bitcoin", posts[0].Slug)
}

func TestPostBySlug(t *testing.T) {
	svc, _ := newTestService(t, false)

	post, err := svc.PostBySlug(context.Background(), "getting-started-with-sqr400")
	require.NoError(t, err)
	assert.True(t, post.Featured)

	_, errMissing := svc.PostBySlug(context.Background(), "missing-post")
	assert.ErrorIs(t, errMissing, ErrPostNotFound)
}

func TestSearchPosts_CaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t, false)

	posts, err := svc.SearchPosts(context.Background(), "BITCOIN")

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "paying-with-bitcoin", posts[0].Slug)
}

func TestSearchPosts_EmptyQueryReturnsAll(t *testing.T) {
	svc, _ := newTestService(t, false)

	posts, err := svc.SearchPosts(context.Background(), "  ")

	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestFAQs_CategoryAndQuery(t *testing.T) {
	svc, _ := newTestService(t, false)

	purchase, err := svc.FAQs(context.Background(), "purchase", "")
	require.NoError(t, err)
	assert.Len(t, purchase, 2)

	window, err := svc.FAQs(context.Background(), "", "payment window")
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "2", window[0].ID)

	none, err := svc.FAQs(context.Background(), "legal", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStats(t *testing.T) {
	svc, _ := newTestService(t, false)

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(50000), stats.TotalDownloads)
}

func TestCachedFetch_FillsRedis(t *testing.T) {
	svc, mr := newTestService(t, true)

	posts, err := svc.Posts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	// cache fill is async
	assert.Eventually(t, func() bool {
		return mr.Exists("content:posts")
	}, time.Second, 10*time.Millisecond)
}

func TestCachedFetch_ServesFromRedis(t *testing.T) {
	svc, mr := newTestService(t, true)

	mr.Set("content:posts", `[{"id":"9","title":"cached","slug":"cached","published":true}]`)

	posts, err := svc.Posts(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "cached", posts[0].Title)
}

func TestCachedFetch_CorruptEntryFallsBack(t *testing.T) {
	svc, mr := newTestService(t, true)

	mr.Set("content:faqs", "{broken")

	faqs, err := svc.FAQs(context.Background(), "", "")

	require.NoError(t, err)
	assert.Len(t, faqs, 4)
}
