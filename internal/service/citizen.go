package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/egovmeet/video-verification/internal/cache"
	"github.com/egovmeet/video-verification/internal/model"
	"github.com/egovmeet/video-verification/internal/registry"
	"github.com/egovmeet/video-verification/internal/repository"
)

// ProfileCache is the write-through cache in front of the registry.
type ProfileCache interface {
	Get(ctx context.Context, pin string) (model.CitizenProfile, error)
	Set(ctx context.Context, pin string, p model.CitizenProfile) error
}

// CitizenService resolves citizen profiles: cache first, registry on a miss,
// write-through on a hit at the registry. Registry misses are never cached.
type CitizenService struct {
	cache    ProfileCache
	registry registry.Client
	log      *zap.Logger
}

func NewCitizenService(cache ProfileCache, reg registry.Client, log *zap.Logger) *CitizenService {
	return &CitizenService{cache: cache, registry: reg, log: log}
}

// Lookup returns the profile for a pin code. An unknown pin surfaces as
// repository.ErrCitizenNotFound regardless of which layer missed.
func (s *CitizenService) Lookup(ctx context.Context, pin string) (model.CitizenProfile, error) {
	p, err := s.cache.Get(ctx, pin)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, cache.ErrNotFound) {
		return model.CitizenProfile{}, err
	}

	p, err = s.registry.Lookup(ctx, pin)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return model.CitizenProfile{}, repository.ErrCitizenNotFound
		}
		return model.CitizenProfile{}, err
	}
	if err := s.cache.Set(ctx, pin, p); err != nil {
		// The lookup itself succeeded; a cache write failure only costs
		// the next caller a registry round trip.
		s.log.Warn("citizen cache write failed", zap.Error(err))
	}
	return p, nil
}
