package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Auth type constants
const (
	AuthTypeNone   = "none"
	AuthTypeBasic  = "basic"
	AuthTypeAPIKey = "apikey"
)

// Read format constants
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// AuthSettings configuration for authentication
type AuthSettings struct {
	Type    string            `mapstructure:"type"` // AuthTypeNone, AuthTypeBasic, or AuthTypeAPIKey
	Basic   BasicAuthSettings `mapstructure:"basic"`
	APIKeys []string          `mapstructure:"api_keys"`
}

// BasicAuthSettings configuration for basic auth
type BasicAuthSettings struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// GoogleSettings configuration for Google API credentials.
// Either a client secret + stored token pair, a service account key file, or
// neither (application default credentials).
type GoogleSettings struct {
	CredentialsFile  string        `mapstructure:"credentials_file"`
	ClientSecretFile string        `mapstructure:"client_secret_file"`
	TokenFile        string        `mapstructure:"token_file"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
}

// Credential modes, in order of precedence
const (
	CredentialModeOAuth          = "oauth"
	CredentialModeServiceAccount = "service_account"
	CredentialModeDefault        = "default"
)

// CredentialMode reports which credential source the settings select.
func (g GoogleSettings) CredentialMode() string {
	switch {
	case g.ClientSecretFile != "" && g.TokenFile != "":
		return CredentialModeOAuth
	case g.CredentialsFile != "":
		return CredentialModeServiceAccount
	default:
		return CredentialModeDefault
	}
}

// DocsSettings configuration for the document tools
type DocsSettings struct {
	MaxSearchResults int    `mapstructure:"max_search_results"`
	ReturnSnapshot   bool   `mapstructure:"return_snapshot"`
	DefaultFormat    string `mapstructure:"default_format"`
}

// DriveSettings configuration for the drive tools
type DriveSettings struct {
	MaxResults int `mapstructure:"max_results"`
}

// Settings application settings
type Settings struct {
	Transport string         `mapstructure:"transport"`
	Host      string         `mapstructure:"host"`
	Port      int            `mapstructure:"port"`
	Auth      AuthSettings   `mapstructure:"auth"`
	Google    GoogleSettings `mapstructure:"google"`
	Docs      DocsSettings   `mapstructure:"docs"`
	Drive     DriveSettings  `mapstructure:"drive"`
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Default values
	v.SetDefault("transport", "stdio")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("auth.type", AuthTypeNone)

	// Google defaults
	v.SetDefault("google.request_timeout", 30*time.Second)

	// Tool defaults
	v.SetDefault("docs.max_search_results", 10)
	v.SetDefault("docs.return_snapshot", true)
	v.SetDefault("docs.default_format", FormatMarkdown)
	v.SetDefault("drive.max_results", 20)

	// Environment variables
	v.SetEnvPrefix("DOCS_MCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific env vars for nested config
	_ = v.BindEnv("auth.type", "DOCS_MCP_AUTH_TYPE")
	_ = v.BindEnv("auth.basic.username", "DOCS_MCP_AUTH_BASIC_USERNAME")
	_ = v.BindEnv("auth.basic.password", "DOCS_MCP_AUTH_BASIC_PASSWORD")
	_ = v.BindEnv("auth.api_keys", "DOCS_MCP_AUTH_API_KEYS")

	// Google env var bindings
	_ = v.BindEnv("google.credentials_file", "DOCS_MCP_GOOGLE_CREDENTIALS_FILE")
	_ = v.BindEnv("google.client_secret_file", "DOCS_MCP_GOOGLE_CLIENT_SECRET_FILE")
	_ = v.BindEnv("google.token_file", "DOCS_MCP_GOOGLE_TOKEN_FILE")
	_ = v.BindEnv("google.request_timeout", "DOCS_MCP_GOOGLE_REQUEST_TIMEOUT")

	// Tool env var bindings
	_ = v.BindEnv("docs.max_search_results", "DOCS_MCP_DOCS_MAX_SEARCH_RESULTS")
	_ = v.BindEnv("docs.return_snapshot", "DOCS_MCP_DOCS_RETURN_SNAPSHOT")
	_ = v.BindEnv("docs.default_format", "DOCS_MCP_DOCS_DEFAULT_FORMAT")
	_ = v.BindEnv("drive.max_results", "DOCS_MCP_DRIVE_MAX_RESULTS")

	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		_ = v.BindPFlag("transport", flags.Lookup("transport"))
		_ = v.BindPFlag("host", flags.Lookup("host"))
		_ = v.BindPFlag("port", flags.Lookup("port"))
		_ = v.BindPFlag("auth.type", flags.Lookup("auth-type"))
		_ = v.BindPFlag("auth.basic.username", flags.Lookup("auth-basic-username"))
		_ = v.BindPFlag("auth.basic.password", flags.Lookup("auth-basic-password"))
		_ = v.BindPFlag("auth.api_keys", flags.Lookup("auth-api-keys"))

		// Google CLI flags
		_ = v.BindPFlag("google.credentials_file", flags.Lookup("google-credentials-file"))
		_ = v.BindPFlag("google.client_secret_file", flags.Lookup("google-client-secret-file"))
		_ = v.BindPFlag("google.token_file", flags.Lookup("google-token-file"))
		_ = v.BindPFlag("google.request_timeout", flags.Lookup("google-request-timeout"))

		// Tool CLI flags
		_ = v.BindPFlag("docs.max_search_results", flags.Lookup("docs-max-search-results"))
		_ = v.BindPFlag("docs.return_snapshot", flags.Lookup("docs-return-snapshot"))
		_ = v.BindPFlag("docs.default_format", flags.Lookup("docs-default-format"))
		_ = v.BindPFlag("drive.max_results", flags.Lookup("drive-max-results"))
	}

	// Helper to look for .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	// Handle explicit parsing of API keys if provided via env var as comma-separated string
	apiKeysEnv := os.Getenv("DOCS_MCP_AUTH_API_KEYS")
	if apiKeysEnv != "" {
		if len(settings.Auth.APIKeys) == 0 || (len(settings.Auth.APIKeys) == 1 && strings.Contains(settings.Auth.APIKeys[0], ",")) {
			settings.Auth.APIKeys = strings.Split(apiKeysEnv, ",")
		}
	}

	// Trim spaces from API keys
	for i := range settings.Auth.APIKeys {
		settings.Auth.APIKeys[i] = strings.TrimSpace(settings.Auth.APIKeys[i])
	}
	settings.Auth.APIKeys = filterEmptyStrings(settings.Auth.APIKeys)

	// Expand home directory in credential paths
	settings.Google.CredentialsFile = expandHomeDir(strings.TrimSpace(settings.Google.CredentialsFile))
	settings.Google.ClientSecretFile = expandHomeDir(strings.TrimSpace(settings.Google.ClientSecretFile))
	settings.Google.TokenFile = expandHomeDir(strings.TrimSpace(settings.Google.TokenFile))

	settings.Docs.DefaultFormat = strings.ToLower(strings.TrimSpace(settings.Docs.DefaultFormat))

	return &settings, nil
}

// expandHomeDir expands ~ to the user's home directory
func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// filterEmptyStrings removes empty strings from a slice
func filterEmptyStrings(s []string) []string {
	var result []string
	for _, str := range s {
		if str != "" {
			result = append(result, str)
		}
	}
	return result
}

// ValidateSettings checks for conflicting configurations.
// Returns an error if the settings contain mutually exclusive or incomplete config.
func ValidateSettings(s *Settings) error {
	// Validate transport type
	switch s.Transport {
	case "stdio", "sse":
		// valid
	default:
		return errors.New("transport must be 'stdio' or 'sse', got: " + s.Transport)
	}

	hasBasicCreds := s.Auth.Basic.Username != "" || s.Auth.Basic.Password != ""
	hasAPIKeys := len(s.Auth.APIKeys) > 0

	switch s.Auth.Type {
	case AuthTypeNone, "":
		if hasBasicCreds || hasAPIKeys {
			return errors.New("auth-type 'none' is incompatible with auth credentials")
		}
	case AuthTypeBasic:
		if hasAPIKeys {
			return errors.New("auth-type 'basic' is mutually exclusive with auth-api-keys")
		}
		if s.Auth.Basic.Username == "" || s.Auth.Basic.Password == "" {
			return errors.New("auth-type 'basic' requires both username and password")
		}
	case AuthTypeAPIKey:
		if hasBasicCreds {
			return errors.New("auth-type 'apikey' is mutually exclusive with basic auth credentials")
		}
		if !hasAPIKeys {
			return errors.New("auth-type 'apikey' requires at least one API key")
		}
	default:
		return errors.New("unknown auth-type: " + s.Auth.Type)
	}

	if err := validateGoogleSettings(&s.Google); err != nil {
		return err
	}

	return validateToolSettings(s)
}

// validateGoogleSettings validates the credential configuration
func validateGoogleSettings(g *GoogleSettings) error {
	hasOAuth := g.ClientSecretFile != "" || g.TokenFile != ""

	if hasOAuth && g.CredentialsFile != "" {
		return errors.New("google-credentials-file is mutually exclusive with google-client-secret-file/google-token-file")
	}

	if hasOAuth && (g.ClientSecretFile == "" || g.TokenFile == "") {
		return errors.New("google-client-secret-file and google-token-file must be set together")
	}

	if g.RequestTimeout <= 0 {
		return errors.New("google-request-timeout must be positive")
	}

	return nil
}

// validateToolSettings validates the tool limits
func validateToolSettings(s *Settings) error {
	if s.Docs.MaxSearchResults <= 0 {
		return errors.New("docs-max-search-results must be positive")
	}

	switch s.Docs.DefaultFormat {
	case FormatMarkdown, FormatJSON:
		// valid
	default:
		return errors.New("docs-default-format must be 'markdown' or 'json', got: " + s.Docs.DefaultFormat)
	}

	if s.Drive.MaxResults <= 0 {
		return errors.New("drive-max-results must be positive")
	}

	return nil
}
