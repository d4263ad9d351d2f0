package app

import "github.com/spf13/pflag"

// RegisterFlags registers all CLI flags on the given FlagSet
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("transport", "t", "", "Transport type: stdio or sse")
	flags.StringP("host", "H", "", "Host for SSE transport")
	flags.IntP("port", "p", 0, "Port for SSE transport")
	flags.StringP("auth-type", "a", "", "Authentication type: none, basic, or apikey")
	flags.StringP("auth-basic-username", "u", "", "Basic auth username")
	flags.StringP("auth-basic-password", "P", "", "Basic auth password")
	flags.StringSliceP("auth-api-keys", "k", nil, "API keys (comma-separated)")

	// Google credentials
	flags.String("google-credentials-file", "", "Service account key file (JSON)")
	flags.String("google-client-secret-file", "", "OAuth client secret file (JSON), used with --google-token-file")
	flags.String("google-token-file", "", "Stored OAuth token file (JSON), used with --google-client-secret-file")
	flags.Duration("google-request-timeout", 0, "Timeout for each Google API request (e.g. 30s)")

	// Tools
	flags.Int("docs-max-search-results", 0, "Maximum find_in_document results")
	flags.Bool("docs-return-snapshot", true, "Return the updated document structure after each edit")
	flags.String("docs-default-format", "", "Default read_document format: markdown or json")
	flags.Int("drive-max-results", 0, "Maximum search_files results")
}
