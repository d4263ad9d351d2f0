package config

import (
	"context"
	"log/slog"
)

// Log logs the resolved settings in a granular way, skipping irrelevant ones
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: transport", "value", s.Transport)
	if s.Transport == "sse" {
		logger.InfoContext(ctx, "Config: host", "value", s.Host)
		logger.InfoContext(ctx, "Config: port", "value", s.Port)
	}

	logger.InfoContext(ctx, "Config: auth.type", "value", s.Auth.Type)
	switch s.Auth.Type {
	case AuthTypeBasic:
		logger.InfoContext(ctx, "Config: auth.basic.username", "value", s.Auth.Basic.Username)
		logger.InfoContext(ctx, "Config: auth.basic.password", "value", "****")
	case AuthTypeAPIKey:
		logger.InfoContext(ctx, "Config: auth.api_keys", "count", len(s.Auth.APIKeys))
	}

	logger.InfoContext(ctx, "Config: google.credentials", "mode", s.Google.CredentialMode())
	switch s.Google.CredentialMode() {
	case CredentialModeOAuth:
		logger.InfoContext(ctx, "Config: google.client_secret_file", "value", s.Google.ClientSecretFile)
		logger.InfoContext(ctx, "Config: google.token_file", "value", s.Google.TokenFile)
	case CredentialModeServiceAccount:
		logger.InfoContext(ctx, "Config: google.credentials_file", "value", s.Google.CredentialsFile)
	}
	logger.InfoContext(ctx, "Config: google.request_timeout", "value", s.Google.RequestTimeout)

	logger.InfoContext(ctx, "Config: docs.max_search_results", "value", s.Docs.MaxSearchResults)
	logger.InfoContext(ctx, "Config: docs.return_snapshot", "value", s.Docs.ReturnSnapshot)
	logger.InfoContext(ctx, "Config: docs.default_format", "value", s.Docs.DefaultFormat)
	logger.InfoContext(ctx, "Config: drive.max_results", "value", s.Drive.MaxResults)
}

// AuthSettingsLogValue returns a slog.Value for AuthSettings with masked data
func AuthSettingsLogValue(s AuthSettings) slog.Value {
	keys := make([]string, len(s.APIKeys))
	for i := range s.APIKeys {
		keys[i] = "****"
	}
	return slog.GroupValue(
		slog.String("type", s.Type),
		slog.Any("basic", BasicAuthSettingsLogValue(s.Basic)),
		slog.Any("api_keys", keys),
	)
}

// BasicAuthSettingsLogValue returns a slog.Value for BasicAuthSettings with masked data
func BasicAuthSettingsLogValue(s BasicAuthSettings) slog.Value {
	return slog.GroupValue(
		slog.String("username", s.Username),
		slog.String("password", "****"),
	)
}

// SettingsLogValue returns a slog.Value for Settings with masked data
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("transport", s.Transport),
		slog.String("host", s.Host),
		slog.Int("port", s.Port),
		slog.Any("auth", AuthSettingsLogValue(s.Auth)),
		slog.Any("google", GoogleSettingsLogValue(s.Google)),
	)
}

// GoogleSettingsLogValue returns a slog.Value for GoogleSettings. File paths
// are logged; their contents never are.
func GoogleSettingsLogValue(s GoogleSettings) slog.Value {
	return slog.GroupValue(
		slog.String("mode", s.CredentialMode()),
		slog.String("credentials_file", s.CredentialsFile),
		slog.String("client_secret_file", s.ClientSecretFile),
		slog.String("token_file", s.TokenFile),
		slog.Duration("request_timeout", s.RequestTimeout),
	)
}
