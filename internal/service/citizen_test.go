package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/egovmeet/video-verification/internal/model"
	"github.com/egovmeet/video-verification/internal/repository"
)

func newCitizenFixture(known ...model.CitizenProfile) (*CitizenService, *memProfiles, *fakeRegistry) {
	profiles := newMemProfiles()
	reg := &fakeRegistry{byPin: map[string]model.CitizenProfile{}}
	for _, p := range known {
		reg.byPin["2dnxyd8"] = p
	}
	svc := NewCitizenService(profiles, reg, zap.NewNop())
	return svc, profiles, reg
}

func TestLookupMissHitsRegistryAndWritesThrough(t *testing.T) {
	svc, profiles, reg := newCitizenFixture(testProfile)
	ctx := context.Background()

	p, err := svc.Lookup(ctx, "2DNXYD8")
	require.NoError(t, err)
	assert.Equal(t, testProfile, p)
	assert.Equal(t, 1, reg.calls)
	assert.Equal(t, 1, profiles.sets, "the result is cached")

	// Second lookup is served from the cache.
	p, err = svc.Lookup(ctx, "2DNXYD8")
	require.NoError(t, err)
	assert.Equal(t, testProfile, p)
	assert.Equal(t, 1, reg.calls)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	svc, _, reg := newCitizenFixture(testProfile)
	ctx := context.Background()

	_, err := svc.Lookup(ctx, "2DNXYD8")
	require.NoError(t, err)

	_, err = svc.Lookup(ctx, "2dnxyd8")
	require.NoError(t, err)
	assert.Equal(t, 1, reg.calls, "differently-cased pins share a cache entry")
}

func TestLookupUnknownPinNotCached(t *testing.T) {
	svc, profiles, reg := newCitizenFixture()
	ctx := context.Background()

	_, err := svc.Lookup(ctx, "AAAAAA1")
	assert.ErrorIs(t, err, repository.ErrCitizenNotFound)
	assert.Zero(t, profiles.sets, "misses are never cached")

	_, err = svc.Lookup(ctx, "AAAAAA1")
	assert.ErrorIs(t, err, repository.ErrCitizenNotFound)
	assert.Equal(t, 2, reg.calls, "an unknown pin re-hits the registry every time")
}
