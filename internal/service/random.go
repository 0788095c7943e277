package service

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
	"github.com/actuallystonmai/movie-recommendation-service/internal/metrics"
	"github.com/actuallystonmai/movie-recommendation-service/internal/query"
)

// MaxPages is the highest page index the catalog will serve.
const MaxPages = 500

// RandomRecommendation picks one movie across every page matching the
// filters: a page is drawn uniformly from [1, min(totalPages, MaxPages)],
// then an item uniformly from that page. Every page is equally likely, so
// items on a short last page are slightly favoured.
//
// A missing mood or sort order is drawn at random. An empty random page
// yields a not-found outcome; the lookup is not retried.
func (s *Service) RandomRecommendation(ctx context.Context, f domain.QueryFilter) (*domain.RandomRecommendation, error) {
	f.GenreIDs = append([]domain.GenreID(nil), f.GenreIDs...)
	f.Page = 1

	if f.SortBy == "" {
		f.SortBy = domain.RandomSortOrder(s.rng).Wire()
	}
	if f.Mood == "" {
		f.Mood = string(domain.RandomMood(s.rng))
	}

	q, err := query.Compose(f, s.thresholds)
	if err != nil {
		return nil, err
	}

	mood, _ := domain.ParseMood(f.Mood)
	out := &domain.RandomRecommendation{Mood: mood, SortBy: q.SortBy}

	first, err := s.gateway.Discover(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("discover first page: %w", err)
	}
	if first.Empty() {
		metrics.RandomRecommendations.WithLabelValues("empty").Inc()
		return out, nil
	}

	page := s.rng.IntN(pageCap(first.TotalPages)) + 1

	res, err := s.gateway.Discover(ctx, q.WithPage(page))
	if err != nil {
		return nil, fmt.Errorf("discover page %d: %w", page, err)
	}
	if len(res.Results) == 0 {
		logging.Warn().Int("page", page).Int("total_pages", first.TotalPages).
			Msg("[service] random page came back empty")
		metrics.RandomRecommendations.WithLabelValues("empty_page").Inc()
		return out, nil
	}

	movie := res.Results[s.rng.IntN(len(res.Results))]
	out.Movie = &movie
	out.Found = true
	out.Page = page
	metrics.RandomRecommendations.WithLabelValues("found").Inc()
	return out, nil
}

func pageCap(totalPages int) int {
	return max(1, min(totalPages, MaxPages))
}
