package httpapi

import "khsumd/internal/summarizer"

// maxBodyBytes controls the maximum allowed request body size for JSON
// endpoints. Default is 1 MiB.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// Default summary bounds applied when the request omits them.
var (
	defaultMaxLength = summarizer.DefaultMaxLength
	defaultMinLength = summarizer.DefaultMinLength
)

// SetDefaultLengths configures the summary bounds used when a request leaves
// max_length/min_length unset.
func SetDefaultLengths(maxLen, minLen int) {
	if maxLen > 0 {
		defaultMaxLength = maxLen
	}
	if minLen > 0 {
		defaultMinLength = minLen
	}
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
