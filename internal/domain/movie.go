package domain

import "time"

type GenreID int64

type MovieSummary struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Overview         string    `json:"overview"`
	PosterPath       string    `json:"poster_path"`
	BackdropPath     string    `json:"backdrop_path"`
	OriginalLanguage string    `json:"original_language"`
	ReleaseDate      string    `json:"release_date"`
	VoteAverage      float64   `json:"vote_average"`
	VoteCount        int       `json:"vote_count"`
	GenreIDs         []GenreID `json:"genre_ids"`
}

type DiscoveryResult struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// Empty reports whether the result carries no movies at all.
func (r *DiscoveryResult) Empty() bool {
	return r == nil || r.TotalResults == 0 || len(r.Results) == 0
}

type Genre struct {
	ID        GenreID   `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
