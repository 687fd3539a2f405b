// Package config provides centralized configuration management for the
// service. Settings come from environment variables with defaults applied,
// and the loaded result is validated on startup so misconfiguration fails
// fast. The admin token, the backup bucket and the notification sender are
// deliberately optional: leaving them unset disables the feature instead of
// refusing to start.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Intake   IntakeConfig
	Backup   BackupConfig
	Notify   NotifyConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080" validate:"min=1,max=65535"`

	// ReadTimeout is the maximum duration for reading the request body
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" validate:"required"`

	// MaxConns is the maximum number of pooled connections (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10" validate:"min=1"`

	// MinConns is the minimum number of connections to keep open
	MinConns int `env:"DB_MIN_CONNS" default:"2" validate:"min=0,ltefield=MaxConns"`

	// MaxConnLifetime is the maximum lifetime of a connection
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// IntakeConfig holds the form intake surface settings.
type IntakeConfig struct {
	// AllowedOrigin is the single origin granted CORS access, compared by
	// exact string match. Requests from any other origin are still
	// processed; they just get no CORS headers.
	AllowedOrigin string `env:"ALLOWED_ORIGIN" validate:"omitempty,url"`

	// AdminToken protects /admin/export. When unset the endpoint is
	// unconditionally unauthorized (fail-closed).
	AdminToken string `env:"ADMIN_TOKEN"`
}

// BackupConfig holds the nightly CSV backup settings. The backup is disabled
// unless every OSS credential is present.
type BackupConfig struct {
	// Schedule is a cron expression for the backup job
	Schedule string `env:"BACKUP_SCHEDULE" default:"30 2 * * *" validate:"required"`

	OSSEndpoint  string `env:"OSS_ENDPOINT"`
	OSSAccessKey string `env:"OSS_ACCESS_KEY"`
	OSSSecretKey string `env:"OSS_SECRET_KEY"`
	OSSBucket    string `env:"OSS_BUCKET"`
}

// Enabled reports whether the backup target is fully configured.
func (c *BackupConfig) Enabled() bool {
	return c.OSSEndpoint != "" && c.OSSAccessKey != "" && c.OSSSecretKey != "" && c.OSSBucket != ""
}

// NotifyConfig holds the member-names digest email settings. Disabled unless
// both the API key and the recipient are present.
type NotifyConfig struct {
	ResendAPIKey string `env:"RESEND_API_KEY"`
	To           string `env:"NOTIFY_TO" validate:"omitempty,email"`
	From         string `env:"NOTIFY_FROM" default:"no-reply@example.com" validate:"omitempty,email"`
}

// Enabled reports whether digest emails can be sent.
func (c *NotifyConfig) Enabled() bool {
	return c.ResendAPIKey != "" && c.To != ""
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `env:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`

	// Format is the log format: text or json
	Format string `env:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
