package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
	"github.com/actuallystonmai/movie-recommendation-service/internal/service"
)

// Recommender is the service surface the handlers need.
type Recommender interface {
	ListRecommendations(ctx context.Context, f domain.QueryFilter) (*domain.DiscoveryResult, error)
	RandomRecommendation(ctx context.Context, f domain.QueryFilter) (*domain.RandomRecommendation, error)
	Moods() []service.MoodInfo
	Genres(ctx context.Context) ([]domain.Genre, error)
}

type Handler struct {
	service  Recommender
	validate *validator.Validate
}

func NewHandler(svc Recommender) *Handler {
	return &Handler{
		service:  svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn().Err(err).Msg("[handler] encode response")
	}
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
