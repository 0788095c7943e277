package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TMDB_API_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.APIURL)
	assert.Equal(t, 500, cfg.TMDB.VoteCountMin)
	assert.Equal(t, 6.0, cfg.TMDB.VoteAverageMin)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TMDB_API_TOKEN", "token")
	t.Setenv("PORT", "9090")
	t.Setenv("TMDB_VOTE_COUNT_MIN", "0")
	t.Setenv("TMDB_VOTE_AVERAGE_MIN", "7.5")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 0, cfg.TMDB.VoteCountMin)
	assert.Equal(t, 7.5, cfg.TMDB.VoteAverageMin)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TMDB_API_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("TMDB_API_TOKEN", "token")
	t.Setenv("PORT", "70000")

	_, err := Load()
	assert.ErrorContains(t, err, "PORT")
}
