package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel int     `env:"LOG_LEVEL" envDefault:"0"`
	HTTP     HTTP    `envPrefix:"HTTP_"`
	JWT      JWT     `envPrefix:"JWT_"`
	Auth     Auth    `envPrefix:"AUTH_"`
	Storage  Storage `envPrefix:"STORAGE_"`
	CORS     CORS    `envPrefix:"CORS_"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port               string `env:"PORT" envDefault:"8080"`
	EnableHTTPS        bool   `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
}

// JWT contains bearer token parameters. Secret deliberately has no default:
// the server refuses to start without one.
type JWT struct {
	Secret   string        `env:"SECRET"`
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
}

// Auth contains password hashing parameters.
type Auth struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Storage contains persistence parameters. Driver selects the engine:
// "file" keeps flat JSON collections under DataDir, "sqlite" uses an
// embedded database at SQLitePath.
type Storage struct {
	Driver     string `env:"DRIVER" envDefault:"file"`
	DataDir    string `env:"DATA_DIR" envDefault:"data"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/taskboard.db"`
}

// CORS contains allowed origins for browser clients.
type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return &cfg, nil
}
