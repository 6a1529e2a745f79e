package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const (
	ipifyURL      = "https://api.ipify.org?format=json"
	ipLookupLimit = 3 * time.Second
	fallbackIP    = "127.0.0.1"
)

// PublicIP resolves the caller's public IP for the login payload. Lookup
// failures fall back to loopback, login must not depend on the lookup service.
func PublicIP(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, ipLookupLimit)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ipifyURL, nil)
	if err != nil {
		return fallbackIP
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fallbackIP
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fallbackIP
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.IP == "" {
		return fallbackIP
	}
	return body.IP
}
