package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
)

// GET /api/movies/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}

	result, err := h.service.ListRecommendations(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RecommendationsResponse{
		Page:         result.Page,
		Results:      result.Results,
		TotalPages:   result.TotalPages,
		TotalResults: result.TotalResults,
		Metadata: domain.RecommendationMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Results),
		},
	})
}

// GET /api/movies/recommendations/random
func (h *Handler) GetRandomRecommendation(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	values.Del("page")

	filter, err := h.parseParams(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}

	rec, err := h.service.RandomRecommendation(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// GET /api/movies/moods
func (h *Handler) GetMoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MoodsResponse{Moods: h.service.Moods()})
}

// GET /api/movies/genres
func (h *Handler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.Genres(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, GenresResponse{Genres: genres})
}

func writeServiceError(w http.ResponseWriter, err error) {
	// Unknown mood or sort key
	var invalid *domain.InvalidArgumentError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, "invalid_parameter", invalid.Error())
		return
	}
	// Request timeout
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		writeError(w, http.StatusServiceUnavailable, "request_timeout",
			"Request timed out, please try again")
		return
	}
	// Movie catalog failure
	var up *domain.UpstreamError
	if errors.As(err, &up) {
		logging.Error().Err(err).Int("upstream_status", up.Status).Msg("[handler] upstream failure")
		switch up.Status {
		case http.StatusTooManyRequests:
			writeError(w, http.StatusServiceUnavailable, "upstream_rate_limited",
				"Movie catalog rate limit reached, please try again")
		case http.StatusServiceUnavailable:
			writeError(w, http.StatusServiceUnavailable, "upstream_unavailable",
				"Movie catalog is temporarily unavailable")
		default:
			writeError(w, http.StatusBadGateway, "upstream_error",
				"Movie catalog request failed")
		}
		return
	}
	logging.Error().Err(err).Msg("[handler] unexpected error")
	writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
}
