package handler

import (
	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/service"
)

type RecommendationsResponse struct {
	Page         int                       `json:"page"`
	Results      []domain.MovieSummary     `json:"results"`
	TotalPages   int                       `json:"total_pages"`
	TotalResults int                       `json:"total_results"`
	Metadata     domain.RecommendationMeta `json:"metadata"`
}

type MoodsResponse struct {
	Moods []service.MoodInfo `json:"moods"`
}

type GenresResponse struct {
	Genres []domain.Genre `json:"genres"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
