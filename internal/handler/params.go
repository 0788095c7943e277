package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

// recommendationParams mirrors the query string of the recommendation routes.
type recommendationParams struct {
	GenreIDs         []int64 `validate:"dive,gt=0"`
	Decade           *int    `validate:"omitempty,gte=1000,lte=9999"`
	SortBy           string
	Mood             string
	OriginCountry    string `validate:"omitempty,iso3166_1_alpha2"`
	OriginalLanguage string `validate:"omitempty,alpha,len=2"`
	RuntimeGTE       *int   `validate:"omitempty,gte=0"`
	RuntimeLTE       *int   `validate:"omitempty,gte=0"`
	ResponseLanguage string `validate:"omitempty,bcp47_language_tag"`
	Page             int    `validate:"lte=500"`
}

// paramError is a malformed or out-of-range query parameter.
type paramError struct {
	name   string
	reason string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("Invalid %s parameter: %s", e.name, e.reason)
}

var fieldParams = map[string]string{
	"GenreIDs":         "genreIds",
	"Decade":           "decade",
	"OriginCountry":    "withOriginCountry",
	"OriginalLanguage": "withOriginalLanguage",
	"RuntimeGTE":       "withRuntimeGte",
	"RuntimeLTE":       "withRuntimeLte",
	"ResponseLanguage": "responseLanguage",
	"Page":             "page",
}

func (h *Handler) parseParams(values url.Values) (domain.QueryFilter, error) {
	var p recommendationParams
	var err error

	for _, raw := range values["genreIds"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, convErr := strconv.ParseInt(part, 10, 64)
			if convErr != nil {
				return domain.QueryFilter{}, &paramError{name: "genreIds", reason: "must be integers"}
			}
			p.GenreIDs = append(p.GenreIDs, id)
		}
	}

	if p.Decade, err = optionalInt(values, "decade"); err != nil {
		return domain.QueryFilter{}, err
	}
	if p.RuntimeGTE, err = optionalInt(values, "withRuntimeGte"); err != nil {
		return domain.QueryFilter{}, err
	}
	if p.RuntimeLTE, err = optionalInt(values, "withRuntimeLte"); err != nil {
		return domain.QueryFilter{}, err
	}
	page, err := optionalInt(values, "page")
	if err != nil {
		return domain.QueryFilter{}, err
	}
	if page != nil {
		p.Page = *page
	}

	p.SortBy = strings.TrimSpace(values.Get("sortBy"))
	p.Mood = strings.TrimSpace(values.Get("mood"))
	p.OriginCountry = strings.ToUpper(strings.TrimSpace(values.Get("withOriginCountry")))
	p.OriginalLanguage = strings.ToLower(strings.TrimSpace(values.Get("withOriginalLanguage")))
	p.ResponseLanguage = strings.TrimSpace(values.Get("responseLanguage"))

	if err := h.validate.Struct(p); err != nil {
		return domain.QueryFilter{}, toParamError(err)
	}

	f := domain.QueryFilter{
		Mood:             p.Mood,
		Decade:           p.Decade,
		SortBy:           p.SortBy,
		OriginCountry:    p.OriginCountry,
		OriginalLanguage: p.OriginalLanguage,
		RuntimeGTE:       p.RuntimeGTE,
		RuntimeLTE:       p.RuntimeLTE,
		Language:         p.ResponseLanguage,
		Page:             p.Page,
	}
	for _, id := range p.GenreIDs {
		f.GenreIDs = append(f.GenreIDs, domain.GenreID(id))
	}
	return f, nil
}

func optionalInt(values url.Values, name string) (*int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &paramError{name: name, reason: "must be an integer"}
	}
	return &v, nil
}

func toParamError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &paramError{name: "request", reason: err.Error()}
	}
	fe := verrs[0]
	name := fe.StructField()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if p, ok := fieldParams[name]; ok {
		name = p
	}
	reason := fmt.Sprintf("failed %q check", fe.Tag())
	if fe.Param() != "" {
		reason = fmt.Sprintf("failed %q check (%s)", fe.Tag(), fe.Param())
	}
	return &paramError{name: name, reason: reason}
}
