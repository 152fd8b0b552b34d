package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egovmeet/video-verification/internal/model"
)

func TestHTTPClientLookup(t *testing.T) {
	want := model.CitizenProfile{
		PinCode:        "2DNXYD8",
		FirstName:      "Ahmad",
		LastName:       "Jafarov",
		Patronymic:     "Roman",
		DocumentNumber: "AA1234567",
		AddressLine:    "Azerbaijan, Baku",
		DateOfBirth:    time.Date(2002, time.March, 12, 0, 0, 0, 0, time.UTC),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/citizens/2DNXYD8" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 2*time.Second)

	got, err := c.Lookup(context.Background(), "2DNXYD8")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = c.Lookup(context.Background(), "AAAAAA1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPClientRejectsMalformedDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.CitizenProfile{
			PinCode:        "2DNXYD8",
			FirstName:      "Ahmad",
			LastName:       "Jafarov",
			DocumentNumber: "XX123", // matches no known series
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 2*time.Second)
	_, err := c.Lookup(context.Background(), "2DNXYD8")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPClientUnreachable(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := c.Lookup(context.Background(), "2DNXYD8")
	assert.ErrorIs(t, err, ErrNotFound, "transport failures look like a miss")
}

func TestStubClient(t *testing.T) {
	s := StubClient{}

	p, err := s.Lookup(context.Background(), "2dnxyd8")
	require.NoError(t, err, "the stub pin resolves case-insensitively")
	assert.Equal(t, "2DNXYD8", p.PinCode)

	_, err = s.Lookup(context.Background(), "AAAAAA1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStubClientHonorsContext(t *testing.T) {
	s := StubClient{Latency: time.Minute}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Lookup(ctx, "2dnxyd8")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
