package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerWriteTimeout    = 60 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Auth token lifetime. Tokens have a fixed absolute expiry; there is no
// sliding window.
const AuthTokenTTL = 24 * time.Hour

// Outbound HTTP client timeouts for external collaborators
const (
	RecaptchaTimeout = 5 * time.Second
	MailTimeout      = 10 * time.Second
	ChatTimeout      = 30 * time.Second
)

// Deadline for the detached lead notification fan-out
const NotifyTimeout = 30 * time.Second

// Public endpoint throttling
const (
	PublicRateLimit       = 30
	PublicRateLimitWindow = time.Minute
)
