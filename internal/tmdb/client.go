// Package tmdb is the HTTP client for the TMDB v3 API.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
	"github.com/actuallystonmai/movie-recommendation-service/internal/metrics"
	"github.com/actuallystonmai/movie-recommendation-service/internal/query"
)

const (
	discoverPath = "/discover/movie"
	genresPath   = "/genre/movie/list"
	breakerName  = "tmdb-api"
	maxErrorBody = 4 << 10
)

type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration

	// RateLimit is the number of requests per second; zero disables limiting.
	RateLimit float64

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(1, int(opts.RateLimit)))
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		http:    hc,
		limiter: limiter,
		breaker: newBreaker(),
	}
}

// Opens after 60% failures over at least 10 requests, half-opens again after 30s.
func newBreaker() *gobreaker.CircuitBreaker[[]byte] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// client errors say nothing about upstream health
		IsSuccessful: func(err error) bool {
			var cancelled *callerCancelled
			if errors.As(err, &cancelled) {
				return true
			}
			var up *domain.UpstreamError
			if errors.As(err, &up) && up.Status >= 400 && up.Status < 500 && up.Status != http.StatusTooManyRequests {
				return true
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}

type discoverResponse struct {
	Page         int                   `json:"page"`
	Results      []domain.MovieSummary `json:"results"`
	TotalPages   int                   `json:"total_pages"`
	TotalResults int                   `json:"total_results"`
}

type genresResponse struct {
	Genres []struct {
		ID   domain.GenreID `json:"id"`
		Name string         `json:"name"`
	} `json:"genres"`
}

type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// Discover fetches one page of discover/movie.
func (c *Client) Discover(ctx context.Context, q query.Query) (*domain.DiscoveryResult, error) {
	body, err := c.get(ctx, "discover", discoverPath, q.Values())
	if err != nil {
		return nil, err
	}

	var resp discoverResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &domain.UpstreamError{Status: http.StatusOK, Cause: fmt.Errorf("decode discover response: %w", err)}
	}
	if resp.Results == nil {
		resp.Results = []domain.MovieSummary{}
	}

	return &domain.DiscoveryResult{
		Page:         resp.Page,
		Results:      resp.Results,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
	}, nil
}

// Genres fetches the movie genre list in the given language.
func (c *Client) Genres(ctx context.Context, language string) ([]domain.Genre, error) {
	params := url.Values{}
	if language != "" {
		params.Set("language", language)
	}

	body, err := c.get(ctx, "genres", genresPath, params)
	if err != nil {
		return nil, err
	}

	var resp genresResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &domain.UpstreamError{Status: http.StatusOK, Cause: fmt.Errorf("decode genres response: %w", err)}
	}

	genres := make([]domain.Genre, 0, len(resp.Genres))
	for _, g := range resp.Genres {
		genres = append(genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return genres, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	start := time.Now()

	// a caller that already gave up never reaches the breaker
	if err := ctx.Err(); err != nil {
		metrics.RecordUpstream(endpoint, "cancelled", time.Since(start))
		return nil, &domain.UpstreamError{Cause: err}
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		body, err := c.do(ctx, path, params)
		if err != nil && ctx.Err() != nil {
			return nil, &callerCancelled{err: err}
		}
		return body, err
	})
	var cancelled *callerCancelled
	if errors.As(err, &cancelled) {
		err = cancelled.err
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &domain.UpstreamError{Status: http.StatusServiceUnavailable, Cause: err}
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
		logging.Warn().Err(err).Str("endpoint", endpoint).Msg("tmdb request failed")
	}
	metrics.RecordUpstream(endpoint, outcome, time.Since(start))

	return body, err
}

func (c *Client) do(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.UpstreamError{Cause: fmt.Errorf("rate limiter: %w", err)}
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	logging.Debug().Str("path", path).Str("query", params.Encode()).Msg("tmdb request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Cause: readError(resp.Body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Cause: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// callerCancelled marks a failure caused by the caller's context so the
// breaker does not count it against the upstream.
type callerCancelled struct {
	err error
}

func (e *callerCancelled) Error() string { return e.err.Error() }

func (e *callerCancelled) Unwrap() error { return e.err }

func readError(r io.Reader) error {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))

	var e errorResponse
	if err := json.Unmarshal(raw, &e); err == nil && e.StatusMessage != "" {
		return fmt.Errorf("tmdb status %d: %s", e.StatusCode, e.StatusMessage)
	}
	if len(raw) == 0 {
		return errors.New("empty response body")
	}
	return errors.New(strings.TrimSpace(string(raw)))
}
