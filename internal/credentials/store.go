// Package credentials persists the OAuth token bundle between CLI runs.
//
// The bundle is stored as-is and never interpreted here; refreshing and using
// the token is the oauth2 package's job.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// ErrNotFound is returned when no token bundle has been stored yet.
var ErrNotFound = errors.New("no stored credentials found, run \"schoolcal auth\" first")

// Bundle is the serialized shape of an authorized session.
type Bundle struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	TokenURI     string    `json:"token_uri"`
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	Scopes       []string  `json:"scopes"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// BundleFromToken captures a freshly exchanged token together with the client
// identity it was issued for.
func BundleFromToken(token *oauth2.Token, conf *oauth2.Config) Bundle {
	return Bundle{
		Token:        token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenURI:     conf.Endpoint.TokenURL,
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		Scopes:       conf.Scopes,
		Expiry:       token.Expiry,
	}
}

// OAuthToken converts the bundle back into an oauth2 token.
func (b Bundle) OAuthToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  b.Token,
		RefreshToken: b.RefreshToken,
		Expiry:       b.Expiry,
	}
}

// Store reads and writes a token bundle at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save writes the bundle with owner-only permissions.
func (s *Store) Save(bundle Bundle) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing credentials file: %w", err)
	}
	return nil
}

// Load reads the stored bundle, or ErrNotFound when none exists.
func (s *Store) Load() (Bundle, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Bundle{}, ErrNotFound
		}
		return Bundle{}, fmt.Errorf("reading credentials file: %w", err)
	}
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return Bundle{}, fmt.Errorf("decoding credentials file: %w", err)
	}
	return bundle, nil
}
