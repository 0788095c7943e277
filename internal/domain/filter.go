package domain

// QueryFilter holds the caller's discovery filters. Nil pointers and empty
// strings mean "not supplied".
type QueryFilter struct {
	GenreIDs         []GenreID
	Mood             string
	Decade           *int
	SortBy           string
	OriginCountry    string
	OriginalLanguage string
	RuntimeGTE       *int
	RuntimeLTE       *int
	Language         string
	Page             int
}

// VoteThresholds are the configured minimums; zero disables a threshold.
type VoteThresholds struct {
	MinVoteCount   int
	MinVoteAverage float64
}
