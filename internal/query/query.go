// Package query turns user-facing filters into a TMDB discover query.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

const defaultPage = 1

// Query is a composed discover/movie request. Zero values are omitted from
// the emitted parameters.
type Query struct {
	GenreIDs         []domain.GenreID
	SortBy           string
	ReleaseDateGTE   string
	ReleaseDateLTE   string
	RuntimeGTE       int
	RuntimeLTE       int
	HasRuntime       bool
	OriginCountry    string
	OriginalLanguage string
	Language         string
	Page             int
	MinVoteCount     int
	MinVoteAverage   float64
}

// Compose merges explicit and mood-derived genres and translates the
// remaining filters. It never draws randomness.
func Compose(f domain.QueryFilter, t domain.VoteThresholds) (Query, error) {
	q := Query{
		OriginCountry:    f.OriginCountry,
		OriginalLanguage: f.OriginalLanguage,
		Language:         f.Language,
		Page:             f.Page,
	}

	genres := append([]domain.GenreID(nil), f.GenreIDs...)
	if f.Mood != "" {
		moodGenres, err := domain.GenresFor(f.Mood)
		if err != nil {
			return Query{}, err
		}
		genres = append(genres, moodGenres...)
	}
	q.GenreIDs = dedupe(genres)

	if f.SortBy != "" {
		order, err := domain.ParseSortOrder(f.SortBy)
		if err != nil {
			return Query{}, err
		}
		q.SortBy = order.Wire()
	}

	if f.Decade != nil {
		q.ReleaseDateGTE, q.ReleaseDateLTE = DecadeRange(*f.Decade)
	}

	// a lone runtime bound is dropped
	if f.RuntimeGTE != nil && f.RuntimeLTE != nil {
		q.HasRuntime = true
		q.RuntimeGTE = *f.RuntimeGTE
		q.RuntimeLTE = *f.RuntimeLTE
	}

	if q.Page <= 0 {
		q.Page = defaultPage
	}
	if t.MinVoteCount > 0 {
		q.MinVoteCount = t.MinVoteCount
	}
	if t.MinVoteAverage > 0 {
		q.MinVoteAverage = t.MinVoteAverage
	}

	return q, nil
}

// DecadeRange returns the first and last release dates of a decade.
func DecadeRange(decade int) (string, string) {
	return fmt.Sprintf("%04d-01-01", decade), fmt.Sprintf("%04d-12-31", decade+9)
}

// WithPage returns a copy of q targeting another page.
func (q Query) WithPage(page int) Query {
	out := q
	out.GenreIDs = append([]domain.GenreID(nil), q.GenreIDs...)
	out.Page = page
	return out
}

// Values emits the discover/movie parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	if len(q.GenreIDs) > 0 {
		ids := make([]string, len(q.GenreIDs))
		for i, id := range q.GenreIDs {
			ids[i] = strconv.FormatInt(int64(id), 10)
		}
		v.Set("with_genres", strings.Join(ids, ","))
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.ReleaseDateGTE != "" {
		v.Set("primary_release_date.gte", q.ReleaseDateGTE)
	}
	if q.ReleaseDateLTE != "" {
		v.Set("primary_release_date.lte", q.ReleaseDateLTE)
	}
	if q.HasRuntime {
		v.Set("with_runtime.gte", strconv.Itoa(q.RuntimeGTE))
		v.Set("with_runtime.lte", strconv.Itoa(q.RuntimeLTE))
	}
	if q.OriginCountry != "" {
		v.Set("with_origin_country", q.OriginCountry)
	}
	if q.OriginalLanguage != "" {
		v.Set("with_original_language", q.OriginalLanguage)
	}
	if q.Language != "" {
		v.Set("language", q.Language)
	}
	if q.MinVoteCount > 0 {
		v.Set("vote_count.gte", strconv.Itoa(q.MinVoteCount))
	}
	if q.MinVoteAverage > 0 {
		v.Set("vote_average.gte", strconv.FormatFloat(q.MinVoteAverage, 'f', -1, 64))
	}
	v.Set("page", strconv.Itoa(q.Page))
	return v
}

// Encode is the canonical string form of the query, sorted by key.
func (q Query) Encode() string {
	return q.Values().Encode()
}

func dedupe(ids []domain.GenreID) []domain.GenreID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[domain.GenreID]struct{}, len(ids))
	out := make([]domain.GenreID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
