package drive

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// storedToken mirrors the authorized-user JSON persisted when the user
// connects their Drive. The field names match what Google's client
// libraries emit so tokens captured by other tooling keep working.
type storedToken struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	TokenURI     string    `json:"token_uri,omitempty"`
	ClientID     string    `json:"client_id,omitempty"`
	ClientSecret string    `json:"client_secret,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// ParseToken decodes a stored credential into an oauth2 token. The
// refresh token is what matters long-term; the access token is usually
// expired by the time a scan runs and gets refreshed transparently.
func ParseToken(tokenJSON string) (*oauth2.Token, error) {
	var raw storedToken
	if err := json.Unmarshal([]byte(tokenJSON), &raw); err != nil {
		return nil, fmt.Errorf("decoding stored token: %w", err)
	}
	if raw.Token == "" && raw.RefreshToken == "" {
		return nil, errors.New("stored token has neither access nor refresh token")
	}
	return &oauth2.Token{
		AccessToken:  raw.Token,
		RefreshToken: raw.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       raw.Expiry,
	}, nil
}

// FormatToken serializes a freshly exchanged oauth2 token for storage.
func FormatToken(cfg *Config, tok *oauth2.Token) (string, error) {
	raw := storedToken{
		Token:        tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenURI:     "https://oauth2.googleapis.com/token",
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{ScopeReadonly},
		Expiry:       tok.Expiry,
	}
	out, err := json.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("encoding token: %w", err)
	}
	return string(out), nil
}
