// Package registry talks to the ASAN national-registry service that resolves
// a pin code to citizen identity data.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/egovmeet/video-verification/internal/model"
	"github.com/egovmeet/video-verification/internal/utils"
)

// ErrNotFound is returned when the registry has no record for a pin. Provider
// failures surface the same way: the caller made a single attempt and the
// citizen could not be confirmed.
var ErrNotFound = errors.New("registry: citizen not found")

// Client resolves a pin code to a citizen identity record.
type Client interface {
	Lookup(ctx context.Context, pinCode string) (model.CitizenProfile, error)
}

// HTTPClient queries the registry over REST: GET {base}/citizens/{pin}.
type HTTPClient struct {
	base string
	hc   *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

// Lookup performs a single attempt with no retry; any transport or status
// failure is reported as ErrNotFound.
func (c *HTTPClient) Lookup(ctx context.Context, pinCode string) (model.CitizenProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.base+"/citizens/"+url.PathEscape(pinCode), nil)
	if err != nil {
		return model.CitizenProfile{}, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return model.CitizenProfile{}, ErrNotFound
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.CitizenProfile{}, ErrNotFound
	}
	var p model.CitizenProfile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return model.CitizenProfile{}, err
	}
	// A record whose document number does not match a known series cannot
	// be used for verification; treat it as unconfirmed.
	if !utils.ValidDocument(p.DocumentNumber) {
		return model.CitizenProfile{}, ErrNotFound
	}
	return p, nil
}
