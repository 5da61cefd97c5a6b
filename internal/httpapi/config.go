package httpapi

import "time"

// maxBodyBytes caps request bodies for the form and JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes sets the body limit; n <= 0 restores the 1 MiB default.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// predictTimeout bounds a single predict call. Zero disables it.
var predictTimeout time.Duration

// SetPredictTimeout sets the per-request predict timeout (0 disables).
func SetPredictTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	predictTimeout = d
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

// swaggerEnabled mounts /swagger/* when true.
var swaggerEnabled = true

// SetSwaggerEnabled toggles the API docs UI.
func SetSwaggerEnabled(on bool) { swaggerEnabled = on }
