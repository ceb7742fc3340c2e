package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/mlm272/maggiemayer-portfolio/internal/logging"
	"github.com/mlm272/maggiemayer-portfolio/internal/models"
)

// EnvPrefix prefixes every environment override, e.g.
// PORTFOLIO_SERVER_ADDR -> server.addr
const EnvPrefix = "PORTFOLIO_"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig   `koanf:"server"`
	Data    DataConfig     `koanf:"data"`
	Static  StaticConfig   `koanf:"static"`
	Log     logging.Config `koanf:"log"`
	Store   StoreConfig    `koanf:"store"`
	Session SessionConfig  `koanf:"session"`
	SMTP    SMTPConfig     `koanf:"smtp"`
	Contact ContactConfig  `koanf:"contact"`

	Projects *models.ProjectList `koanf:"-"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr string `koanf:"addr"`
	// BasePath mounts the site under a sub-path, e.g. /maggiemayer-portfolio
	BasePath        string        `koanf:"base_path"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	SecureCookies   bool          `koanf:"secure_cookies"`
	// TrustProxy reads the client address from X-Forwarded-For and
	// X-Real-IP. Enable only behind a proxy that sets them.
	TrustProxy      bool          `koanf:"trust_proxy"`
}

// DataConfig locates the project table
type DataConfig struct {
	Path string `koanf:"path"`
}

// StaticConfig locates the asset root that stored media paths are relative to
type StaticConfig struct {
	Root string `koanf:"root"`
}

// StoreConfig locates the SQLite database for contact messages
type StoreConfig struct {
	Path string `koanf:"path"`
}

// SessionConfig bounds per-visitor view state
type SessionConfig struct {
	TTL  time.Duration `koanf:"ttl"`
	Size int           `koanf:"size"`
}

// ContactConfig throttles contact form submissions per client IP
type ContactConfig struct {
	RatePerMinute int `koanf:"rate_per_minute"`
	Burst         int `koanf:"burst"`
}

// SMTPConfig configures contact notifications. Notifications are off
// unless Host and User are set.
type SMTPConfig struct {
	Host string `koanf:"host"`
	Port string `koanf:"port"`
	User string `koanf:"user"`
	Pass string `koanf:"pass"`
	To   string `koanf:"to"`
}

// Enabled reports whether notifications can be sent
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.User != "" && c.To != ""
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Data:    DataConfig{Path: "data"},
		Static:  StaticConfig{Root: "static"},
		Log:     logging.Config{Level: "info", Format: "json"},
		Store:   StoreConfig{Path: "portfolio.db"},
		Session: SessionConfig{TTL: 30 * time.Minute, Size: 4096},
		SMTP:    SMTPConfig{Port: "587"},
		Contact: ContactConfig{RatePerMinute: 5, Burst: 3},
	}
}

// Load reads configuration and the project table.
//
// Precedence (highest first): PORTFOLIO_* environment variables (a .env
// file in the working directory is loaded into the environment first),
// the YAML file at path, built-in defaults. SERVER_ADDR is still
// honored for the listen address.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if addr := os.Getenv("SERVER_ADDR"); addr != "" && !k.Exists("server.addr") {
		cfg.Server.Addr = addr
	}
	cfg.Server.BasePath = normalizeBasePath(cfg.Server.BasePath)

	projects, err := LoadProjects(cfg.Data.Path)
	if err != nil {
		return nil, err
	}
	cfg.Projects = projects

	return cfg, nil
}

// envKey maps PORTFOLIO_SESSION_TTL to session.ttl: the first
// underscore separates the section from the field name.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	return section + "." + field
}

func normalizeBasePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// LoadProjects reads and validates dataPath/projects.json
func LoadProjects(dataPath string) (*models.ProjectList, error) {
	data, err := os.ReadFile(filepath.Join(dataPath, "projects.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to load projects.json: %w", err)
	}

	var projects models.ProjectList
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse projects.json: %w", err)
	}
	if err := projects.Validate(); err != nil {
		return nil, fmt.Errorf("invalid projects.json: %w", err)
	}

	return &projects, nil
}
