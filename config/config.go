package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultRoleName is the effective role assigned to users that have neither
// the built-in admin role nor a custom role. Kept as an explicit constant so
// the fallback is auditable instead of being buried in the resolution logic.
const DefaultRoleName = "Sales Manager"

// Config holds application configuration
type Config struct {
	JWT         JWTConfig
	Server      ServerConfig
	SAP         SAPConfig
	DefaultRole string // Effective role for users without admin/custom role
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CookieSecure bool // Secure flag cho refresh token cookie (bật ở production)
}

// SAPConfig holds SAP OData backend configuration.
// Username/Password may legitimately be empty at startup; the gateway
// reports a configuration error per request instead of refusing to boot.
type SAPConfig struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration // Outbound HTTP timeout for OData calls
}

// HasCredentials reports whether both Basic auth credentials are present
func (s SAPConfig) HasCredentials() bool {
	return s.Username != "" && s.Password != ""
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	jwtExpirationHours, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExpirationHours, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	readTimeout, _ := strconv.Atoi(getEnv("READ_TIMEOUT_SECONDS", "10"))
	writeTimeout, _ := strconv.Atoi(getEnv("WRITE_TIMEOUT_SECONDS", "10"))
	sapTimeout, _ := strconv.Atoi(getEnv("SAP_ODATA_TIMEOUT_SECONDS", "30"))

	return &Config{
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			Expiration:        time.Duration(jwtExpirationHours) * time.Hour,
			RefreshExpiration: time.Duration(refreshExpirationHours) * time.Hour,
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
		},
		SAP: SAPConfig{
			BaseURL:  getEnv("SAP_ODATA_BASE_URL", "https://sap-gateway.example.com/sap/opu/odata/sap"),
			Username: os.Getenv("SAP_ODATA_USERNAME"),
			Password: os.Getenv("SAP_ODATA_PASSWORD"),
			Timeout:  time.Duration(sapTimeout) * time.Second,
		},
		DefaultRole: getEnv("DEFAULT_ROLE", DefaultRoleName),
	}
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
