package seeds

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
)

// DefaultGenres is the TMDB movie genre list used until the catalog has been
// synced from upstream.
var DefaultGenres = []domain.Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 36, Name: "History"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 10770, Name: "TV Movie"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
}

type GenreStore interface {
	CountGenres(ctx context.Context) (int, error)
	UpsertGenres(ctx context.Context, genres []domain.Genre) error
}

// Setup inserts the default genres when the table is empty.
func Setup(ctx context.Context, store GenreStore) error {
	count, err := store.CountGenres(ctx)
	if err != nil {
		return fmt.Errorf("check genres count: %w", err)
	}
	if count > 0 {
		logging.Info().Int("genres", count).Msg("[seed] genres already seeded, skipping")
		return nil
	}

	logging.Info().Int("genres", len(DefaultGenres)).Msg("[seed] inserting default genres")
	if err := store.UpsertGenres(ctx, DefaultGenres); err != nil {
		return fmt.Errorf("seed genres: %w", err)
	}
	return nil
}
