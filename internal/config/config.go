package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	Host string
	Port string

	// Base URL used to build externally reachable links (uploaded-file payloads)
	BaseURL string

	// DataDir is the root of the artifact store (uploads, qrcodes, logos)
	DataDir string

	// QR rendering
	QRSize       int // raster size in pixels
	SVGBlockSize int // module size in the vector rendering

	// Upload limits
	BodyLimitMB int

	// Session cookie name for scan history
	SessionCookie string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		// Server
		Host: getEnv("HOST", "0.0.0.0"),
		Port: getEnv("PORT", "8000"),

		// Base URL
		BaseURL: getEnv("BASE_URL", "http://localhost:8000"),

		// Storage
		DataDir: getEnv("DATA_DIR", "./data"),

		// Rendering
		QRSize:       getEnvInt("QR_SIZE", 512),
		SVGBlockSize: getEnvInt("SVG_BLOCK_SIZE", 5),

		// Uploads
		BodyLimitMB: getEnvInt("BODY_LIMIT_MB", 8),

		// Session
		SessionCookie: getEnv("SESSION_COOKIE", "qr_session"),
	}
}

// UploadsDir returns the bucket for user-uploaded files
func (c *Config) UploadsDir() string {
	return filepath.Join(c.DataDir, "uploads")
}

// CodesDir returns the bucket for generated QR artifacts
func (c *Config) CodesDir() string {
	return filepath.Join(c.DataDir, "qrcodes")
}

// LogosDir returns the bucket for uploaded logo images
func (c *Config) LogosDir() string {
	return filepath.Join(c.DataDir, "logos")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
