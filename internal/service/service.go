package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
	"github.com/actuallystonmai/movie-recommendation-service/internal/query"
	"github.com/actuallystonmai/movie-recommendation-service/seeds"
)

// Gateway is the upstream movie catalog.
type Gateway interface {
	Discover(ctx context.Context, q query.Query) (*domain.DiscoveryResult, error)
}

type GenreFetcher interface {
	Genres(ctx context.Context, language string) ([]domain.Genre, error)
}

type GenreStore interface {
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	UpsertGenres(ctx context.Context, genres []domain.Genre) error
}

type Service struct {
	gateway    Gateway
	genres     GenreStore
	thresholds domain.VoteThresholds
	rng        domain.Rand
}

type Option func(*Service)

// WithGenreStore backs the genre catalog with persistent storage.
func WithGenreStore(store GenreStore) Option {
	return func(s *Service) { s.genres = store }
}

func NewService(gateway Gateway, thresholds domain.VoteThresholds, rng domain.Rand, opts ...Option) *Service {
	s := &Service{
		gateway:    gateway,
		thresholds: thresholds,
		rng:        rng,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListRecommendations returns one page of movies matching the filters.
func (s *Service) ListRecommendations(ctx context.Context, f domain.QueryFilter) (*domain.DiscoveryResult, error) {
	q, err := query.Compose(f, s.thresholds)
	if err != nil {
		return nil, err
	}

	res, err := s.gateway.Discover(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("discover page %d: %w", q.Page, err)
	}
	return res, nil
}

type MoodInfo struct {
	Name     domain.Mood      `json:"name"`
	GenreIDs []domain.GenreID `json:"genre_ids"`
}

func (s *Service) Moods() []MoodInfo {
	moods := domain.Moods()
	out := make([]MoodInfo, len(moods))
	for i, m := range moods {
		out[i] = MoodInfo{Name: m, GenreIDs: m.Genres()}
	}
	return out
}

// Genres lists the genre catalog, falling back to the built-in list when no
// store is configured.
func (s *Service) Genres(ctx context.Context) ([]domain.Genre, error) {
	if s.genres == nil {
		out := make([]domain.Genre, len(seeds.DefaultGenres))
		copy(out, seeds.DefaultGenres)
		return out, nil
	}
	genres, err := s.genres.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return genres, nil
}

// SyncGenres refreshes the stored catalog from upstream.
func (s *Service) SyncGenres(ctx context.Context, fetcher GenreFetcher, language string) error {
	if s.genres == nil {
		return nil
	}
	genres, err := fetcher.Genres(ctx, language)
	if err != nil {
		return fmt.Errorf("fetch genres: %w", err)
	}
	if err := s.genres.UpsertGenres(ctx, genres); err != nil {
		return err
	}
	logging.Info().Int("genres", len(genres)).Msg("[service] genre catalog synced")
	return nil
}

// LockedRand makes a *rand.Rand safe to share between requests.
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewLockedRand(src rand.Source) *LockedRand {
	return &LockedRand{rng: rand.New(src)}
}

func (r *LockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}
