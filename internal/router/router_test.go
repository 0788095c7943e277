package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/handler"
	"github.com/actuallystonmai/movie-recommendation-service/internal/query"
	"github.com/actuallystonmai/movie-recommendation-service/internal/service"
)

type pageGateway struct{}

func (pageGateway) Discover(ctx context.Context, q query.Query) (*domain.DiscoveryResult, error) {
	return &domain.DiscoveryResult{
		Page:         q.Page,
		Results:      []domain.MovieSummary{{ID: int64(q.Page), Title: "Page pick"}},
		TotalPages:   3,
		TotalResults: 60,
	}, nil
}

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

func newServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	svc := service.NewService(pageGateway{}, domain.VoteThresholds{MinVoteCount: 500}, firstRand{})
	srv := httptest.NewServer(Setup(handler.NewHandler(svc), opts))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRoutes(t *testing.T) {
	srv := newServer(t, Options{})

	for path, want := range map[string]int{
		"/health":                                 http.StatusOK,
		"/metrics":                                http.StatusOK,
		"/api/movies/moods":                       http.StatusOK,
		"/api/movies/genres":                      http.StatusOK,
		"/api/movies/recommendations?mood=happy":  http.StatusOK,
		"/api/movies/recommendations/random":      http.StatusOK,
		"/api/movies/recommendations?mood=grumpy": http.StatusBadRequest,
		"/api/movies/nope":                        http.StatusNotFound,
	} {
		assert.Equal(t, want, get(t, srv.URL+path).StatusCode, path)
	}
}

func TestRateLimit(t *testing.T) {
	srv := newServer(t, Options{RateLimitRequests: 2, RateLimitWindow: time.Minute})

	assert.Equal(t, http.StatusOK, get(t, srv.URL+"/api/movies/moods").StatusCode)
	assert.Equal(t, http.StatusOK, get(t, srv.URL+"/api/movies/moods").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, get(t, srv.URL+"/api/movies/moods").StatusCode)

	// health is outside the limited group
	assert.Equal(t, http.StatusOK, get(t, srv.URL+"/health").StatusCode)
}
