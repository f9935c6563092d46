// Package gauth handles OAuth2 credential and token loading for the
// Google Drive and Drive Labels services.
package gauth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// tokenFile is the stored OAuth token format.
type tokenFile struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	Expiry       string `json:"expiry,omitempty"`
}

// LoadCredentials loads OAuth client credentials. When path is empty the
// default locations are checked in order:
//  1. ~/.labelctl/credentials.json
//  2. ~/.config/labelctl/credentials.json
func LoadCredentials(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials %s: %w", path, err)
		}
		return data, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	credPath := filepath.Join(home, ".labelctl", "credentials.json")
	credData, err := os.ReadFile(credPath)
	if err != nil {
		credPath = filepath.Join(home, ".config", "labelctl", "credentials.json")
		credData, err = os.ReadFile(credPath)
		if err != nil {
			return nil, fmt.Errorf("no credentials found. Place credentials.json in ~/.labelctl/")
		}
	}

	return credData, nil
}

// LoadToken loads a stored OAuth token. When path is empty the default
// locations are checked in order:
//  1. ~/.labelctl/token.json
//  2. ~/.config/labelctl/token.json
func LoadToken(path string) (*oauth2.Token, error) {
	var tokenData []byte
	var err error

	if path != "" {
		tokenData, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read token %s: %w", path, err)
		}
	} else {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return nil, herr
		}
		tokenPath := filepath.Join(home, ".labelctl", "token.json")
		tokenData, err = os.ReadFile(tokenPath)
		if err != nil {
			tokenPath = filepath.Join(home, ".config", "labelctl", "token.json")
			tokenData, err = os.ReadFile(tokenPath)
			if err != nil {
				return nil, fmt.Errorf("no token found. Run 'labelctl auth' first")
			}
		}
	}

	var tf tokenFile
	if err := json.Unmarshal(tokenData, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &oauth2.Token{
		AccessToken:  tf.AccessToken,
		TokenType:    tf.TokenType,
		RefreshToken: tf.RefreshToken,
	}, nil
}

// SaveToken writes a token to path, creating parent directories as needed.
// When path is empty it writes to ~/.labelctl/token.json.
func SaveToken(path string, tok *oauth2.Token) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".labelctl", "token.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	tf := tokenFile{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
	}
	if !tok.Expiry.IsZero() {
		tf.Expiry = tok.Expiry.Format("2006-01-02T15:04:05.000000Z07:00")
	}

	data, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// NewOAuthConfig builds an OAuth config for the given scopes from the
// client credentials at credentialsPath (or the default locations).
func NewOAuthConfig(credentialsPath string, scopes ...string) (*oauth2.Config, error) {
	credData, err := LoadCredentials(credentialsPath)
	if err != nil {
		return nil, err
	}

	cfg, err := google.ConfigFromJSON(credData, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return cfg, nil
}

// TokenSource returns a token source for the stored token and the given
// scopes. The source refreshes expired tokens automatically.
func TokenSource(ctx context.Context, credentialsPath, tokenPath string, scopes ...string) (oauth2.TokenSource, error) {
	cfg, err := NewOAuthConfig(credentialsPath, scopes...)
	if err != nil {
		return nil, err
	}

	token, err := LoadToken(tokenPath)
	if err != nil {
		return nil, err
	}

	return cfg.TokenSource(ctx, token), nil
}
