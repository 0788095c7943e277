package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpstreamError(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("discover: %w", &UpstreamError{Status: http.StatusBadGateway, Cause: cause})

	assert.True(t, errors.Is(err, ErrUpstream))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrInvalidArgument))

	var up *UpstreamError
	assert.True(t, errors.As(err, &up))
	assert.Equal(t, http.StatusBadGateway, up.Status)
	assert.Equal(t, "upstream request failed: dial", (&UpstreamError{Cause: errors.New("dial")}).Error())
}

func TestDiscoveryResultEmpty(t *testing.T) {
	var nilResult *DiscoveryResult
	assert.True(t, nilResult.Empty())
	assert.True(t, (&DiscoveryResult{TotalResults: 0, Results: []MovieSummary{{ID: 1}}}).Empty())
	assert.True(t, (&DiscoveryResult{TotalResults: 5}).Empty())
	assert.False(t, (&DiscoveryResult{TotalResults: 1, Results: []MovieSummary{{ID: 1}}}).Empty())
}
