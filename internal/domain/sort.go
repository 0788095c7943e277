package domain

import "strings"

type SortKey string

const (
	SortPopularity         SortKey = "popularity"
	SortOriginalTitle      SortKey = "original_title"
	SortRevenue            SortKey = "revenue"
	SortTitle              SortKey = "title"
	SortPrimaryReleaseDate SortKey = "primary_release_date"
	SortVoteAverage        SortKey = "vote_average"
	SortVoteCount          SortKey = "vote_count"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

var sortKeys = []SortKey{
	SortPopularity,
	SortOriginalTitle,
	SortRevenue,
	SortTitle,
	SortPrimaryReleaseDate,
	SortVoteAverage,
	SortVoteCount,
}

// SortOrder is a sort key with its direction, e.g. popularity.desc.
type SortOrder struct {
	Key       SortKey
	Direction string
}

// Wire returns the value sent as sort_by.
func (s SortOrder) Wire() string {
	return string(s.Key) + "." + s.Direction
}

// SortKeys returns the accepted sort keys in declaration order.
func SortKeys() []SortKey {
	out := make([]SortKey, len(sortKeys))
	copy(out, sortKeys)
	return out
}

// ParseSortOrder accepts "key", "key.asc" or "key.desc". A bare key sorts
// descending.
func ParseSortOrder(raw string) (SortOrder, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	dir := SortDesc
	if i := strings.LastIndexByte(value, '.'); i >= 0 {
		switch value[i+1:] {
		case SortAsc, SortDesc:
			dir = value[i+1:]
			value = value[:i]
		default:
			return SortOrder{}, invalidSort(raw)
		}
	}
	for _, k := range sortKeys {
		if string(k) == value {
			return SortOrder{Key: k, Direction: dir}, nil
		}
	}
	return SortOrder{}, invalidSort(raw)
}

// RandomSortOrder draws a key uniformly and always sorts descending.
func RandomSortOrder(rng Rand) SortOrder {
	return SortOrder{Key: sortKeys[rng.IntN(len(sortKeys))], Direction: SortDesc}
}

func invalidSort(raw string) error {
	names := make([]string, len(sortKeys))
	for i, k := range sortKeys {
		names[i] = string(k)
	}
	return &InvalidArgumentError{Field: "sortBy", Value: raw, Valid: names}
}
