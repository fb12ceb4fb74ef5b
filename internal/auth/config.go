package auth

import (
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// LoadClientConfig reads the OAuth client secrets downloaded from the Google
// Cloud console.
func LoadClientConfig(path string, scopes ...string) (*oauth2.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("auth: reading credentials file: %w", err)
	}
	cfg, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("auth: parsing credentials file: %w", err)
	}
	return cfg, nil
}
