package domain

// RandomRecommendation is the outcome of a random pick. Movie is nil when
// nothing matched the filters.
type RandomRecommendation struct {
	Movie  *MovieSummary `json:"movie"`
	Found  bool          `json:"found"`
	Mood   Mood          `json:"mood"`
	SortBy string        `json:"sort_by"`
	Page   int           `json:"page,omitempty"`
}

type RecommendationMeta struct {
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}
