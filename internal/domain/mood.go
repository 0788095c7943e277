package domain

import "strings"

type Mood string

const (
	MoodHappy       Mood = "HAPPY"
	MoodRomantic    Mood = "ROMANTIC"
	MoodSpooky      Mood = "SPOOKY"
	MoodAdventurous Mood = "ADVENTUROUS"
	MoodHistory     Mood = "HISTORY"
	MoodRelaxing    Mood = "RELAXING"
)

// Rand is the randomness source used for every random draw in the service.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

var moods = []Mood{
	MoodHappy,
	MoodRomantic,
	MoodSpooky,
	MoodAdventurous,
	MoodHistory,
	MoodRelaxing,
}

var moodGenres = map[Mood][]GenreID{
	MoodHappy:       {35, 10751, 16, 10402},
	MoodRomantic:    {10749, 18, 10402},
	MoodSpooky:      {27, 53, 9648},
	MoodAdventurous: {28, 12, 14, 878},
	MoodHistory:     {36, 10752, 99, 18},
	MoodRelaxing:    {37, 10770},
}

// Moods returns every mood in declaration order.
func Moods() []Mood {
	out := make([]Mood, len(moods))
	copy(out, moods)
	return out
}

// ParseMood matches a mood name case-insensitively.
func ParseMood(name string) (Mood, error) {
	m := Mood(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := moodGenres[m]; !ok {
		return "", &InvalidArgumentError{Field: "mood", Value: name, Valid: moodNames()}
	}
	return m, nil
}

// GenresFor returns the genre ids associated with a mood name.
func GenresFor(name string) ([]GenreID, error) {
	m, err := ParseMood(name)
	if err != nil {
		return nil, err
	}
	return m.Genres(), nil
}

// Genres returns a copy of the mood's genre ids, or nil for an unknown mood.
func (m Mood) Genres() []GenreID {
	ids, ok := moodGenres[m]
	if !ok {
		return nil
	}
	out := make([]GenreID, len(ids))
	copy(out, ids)
	return out
}

// RandomMood draws a mood uniformly from Moods().
func RandomMood(rng Rand) Mood {
	return moods[rng.IntN(len(moods))]
}

func moodNames() []string {
	names := make([]string, len(moods))
	for i, m := range moods {
		names[i] = string(m)
	}
	return names
}
