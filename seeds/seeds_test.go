package seeds

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
)

type memStore struct {
	genres   map[domain.GenreID]string
	countErr error
}

func (m *memStore) CountGenres(ctx context.Context) (int, error) {
	return len(m.genres), m.countErr
}

func (m *memStore) UpsertGenres(ctx context.Context, genres []domain.Genre) error {
	for _, g := range genres {
		m.genres[g.ID] = g.Name
	}
	return nil
}

func TestSetupSeedsEmptyTable(t *testing.T) {
	store := &memStore{genres: map[domain.GenreID]string{}}
	require.NoError(t, Setup(context.Background(), store))
	assert.Len(t, store.genres, len(DefaultGenres))
	assert.Equal(t, "Horror", store.genres[27])
}

func TestSetupSkipsSeededTable(t *testing.T) {
	store := &memStore{genres: map[domain.GenreID]string{28: "Ação"}}
	require.NoError(t, Setup(context.Background(), store))
	assert.Len(t, store.genres, 1)
}

func TestSetupCountError(t *testing.T) {
	store := &memStore{genres: map[domain.GenreID]string{}, countErr: errors.New("relation does not exist")}
	assert.Error(t, Setup(context.Background(), store))
}

func TestDefaultGenresCoverMoods(t *testing.T) {
	known := map[domain.GenreID]bool{}
	for _, g := range DefaultGenres {
		known[g.ID] = true
	}
	for _, m := range domain.Moods() {
		for _, id := range m.Genres() {
			assert.True(t, known[id], "genre %d of mood %s", id, m)
		}
	}
}
