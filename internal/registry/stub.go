package registry

import (
	"context"
	"strings"
	"time"

	"github.com/egovmeet/video-verification/internal/model"
)

// StubClient is the development fallback used when no registry URL is
// configured. It mirrors the sandbox environment: exactly one pin resolves,
// after a configurable latency that mimics the real service.
type StubClient struct {
	Latency time.Duration
}

func (s StubClient) Lookup(ctx context.Context, pinCode string) (model.CitizenProfile, error) {
	if s.Latency > 0 {
		select {
		case <-time.After(s.Latency):
		case <-ctx.Done():
			return model.CitizenProfile{}, ctx.Err()
		}
	}
	if strings.ToLower(pinCode) != "2dnxyd8" {
		return model.CitizenProfile{}, ErrNotFound
	}
	return model.CitizenProfile{
		PinCode:        "2DNXYD8",
		FirstName:      "Ahmad",
		LastName:       "Jafarov",
		Patronymic:     "Roman",
		DocumentNumber: "AA1234567",
		AddressLine:    "Azerbaijan, Baku",
		DateOfBirth:    time.Date(2002, time.March, 12, 0, 0, 0, 0, time.UTC),
	}, nil
}
