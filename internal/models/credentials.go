package models

// Credentials is the pair of bearer tokens issued by the backend on login.
// Both values are opaque strings; no expiry is tracked client side, an expired
// access token is discovered reactively via a 401 response.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// IsZero reports whether no tokens are held.
func (c Credentials) IsZero() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}
