// Package config loads runtime configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
)

// Prefix is prepended to every environment variable this package reads.
const Prefix = "BANJARPANEPEN_"

// DefaultAPIBase is used when neither the base nor the individual endpoints are set.
const DefaultAPIBase = "http://localhost/api-banjarpanepen"

// Config is the full runtime configuration.
type Config struct {
	Endpoints client.Endpoints
	// Token, when set, overrides the token file and is never written back.
	Token     string
	TokenPath string
	Log       LogConfig
	Web       WebConfig
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string // debug, info, warn, error
	Env   string // "production" selects JSON output
	File  string // empty means stdout
}

// WebConfig controls the public website.
type WebConfig struct {
	Addr     string
	CacheTTL time.Duration
}

// Load reads envFile (if it exists) and then the process environment.
// Variables already present in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: read %s: %w", envFile, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(Prefix + key)); v != "" {
			return v
		}
		return def
	}

	base := get("API_BASE", DefaultAPIBase)
	ep := client.EndpointsFromBase(base, get("PUBLIC_URL", base))
	ep.Agenda = get("AGENDA_API", ep.Agenda)
	ep.Gallery = get("GALLERY_API", ep.Gallery)
	ep.Login = get("LOGIN_API", ep.Login)
	ep.Logout = get("LOGOUT_API", ep.Logout)
	ep.TokenCheck = get("TOKEN_CHECK_API", ep.TokenCheck)
	ep.UpdatePassword = get("UPDATE_PASSWORD_API", ep.UpdatePassword)
	ep.UploadImage = get("UPLOAD_IMAGE_API", ep.UploadImage)
	ep.Destination = get("WISATA_API", ep.Destination)
	ep.Category = get("WISATA_CATEGORY_API", ep.Category)
	ep.Article = get("WISATA_ARTIKEL_API", ep.Article)

	tokenPath := get("TOKEN_FILE", "")
	if tokenPath == "" {
		p, err := DefaultTokenPath()
		if err != nil {
			return nil, fmt.Errorf("config.FromEnv: %w", err)
		}
		tokenPath = p
	}

	ttl, err := time.ParseDuration(get("CACHE_TTL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("config.FromEnv: %sCACHE_TTL: %w", Prefix, err)
	}
	if ttl < 0 {
		return nil, fmt.Errorf("config.FromEnv: %sCACHE_TTL must not be negative", Prefix)
	}

	return &Config{
		Endpoints: ep,
		Token:     get("TOKEN", ""),
		TokenPath: tokenPath,
		Log: LogConfig{
			Level: strings.ToLower(get("LOG_LEVEL", "info")),
			Env:   strings.ToLower(get("ENV", "development")),
			File:  get("LOG_FILE", ""),
		},
		Web: WebConfig{
			Addr:     get("ADDR", ":8080"),
			CacheTTL: ttl,
		},
	}, nil
}

// DefaultTokenPath returns ~/.banjarpanepen/token.
func DefaultTokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".banjarpanepen", "token"), nil
}

// DefaultLogPath returns ~/.banjarpanepen/banjarpanepen.log.
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".banjarpanepen", "banjarpanepen.log"), nil
}
