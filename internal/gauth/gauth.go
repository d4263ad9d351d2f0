// Package gauth builds Google API credentials from settings.
//
// Three sources are supported: a client secret with a previously stored user
// token, a service account key file, and application default credentials.
// Obtaining a user token (the browser consent flow) is left to other tools.
package gauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/sha1n/mcp-docs-server/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Scopes requested for every credential source.
var Scopes = []string{docs.DocumentsScope, drive.DriveScope}

// TokenSource returns a token source for the credential mode the settings
// select. The context is used for token refreshes and must outlive the
// returned source.
func TokenSource(ctx context.Context, settings *config.GoogleSettings) (oauth2.TokenSource, error) {
	switch settings.CredentialMode() {
	case config.CredentialModeOAuth:
		return userTokenSource(ctx, settings.ClientSecretFile, settings.TokenFile)
	case config.CredentialModeServiceAccount:
		return serviceAccountTokenSource(ctx, settings.CredentialsFile)
	default:
		ts, err := google.DefaultTokenSource(ctx, Scopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}
		return ts, nil
	}
}

// ClientOptions returns the options shared by the Docs and Drive clients: an
// authorized HTTP client bounded by the configured request timeout.
func ClientOptions(ctx context.Context, settings *config.GoogleSettings) ([]option.ClientOption, error) {
	ctx = withHTTPClient(ctx, &http.Client{Timeout: settings.RequestTimeout})
	ts, err := TokenSource(ctx, settings)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, ts)
	client.Timeout = settings.RequestTimeout
	return []option.ClientOption{option.WithHTTPClient(client)}, nil
}

func userTokenSource(ctx context.Context, clientSecretFile, tokenFile string) (oauth2.TokenSource, error) {
	secret, err := os.ReadFile(clientSecretFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secret: %w", err)
	}
	cfg, err := google.ConfigFromJSON(secret, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secret %s: %w", clientSecretFile, err)
	}

	tok, err := ReadToken(tokenFile)
	if err != nil {
		return nil, err
	}
	return cfg.TokenSource(ctx, tok), nil
}

func serviceAccountTokenSource(ctx context.Context, credentialsFile string) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	cfg, err := google.JWTConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account key %s: %w", credentialsFile, err)
	}
	return cfg.TokenSource(ctx), nil
}

// ReadToken loads a stored OAuth token. A token with neither an access token
// nor a refresh token is rejected.
func ReadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token %s: %w", path, err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, fmt.Errorf("token %s has no access or refresh token", path)
	}
	return &tok, nil
}

// withHTTPClient returns a context whose token refreshes use client.
func withHTTPClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, client)
}
