package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
	Drive     DriveConfig     `yaml:"drive"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	// Path is the SQLite database file, created on first start.
	Path string `yaml:"path"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type LoggingConfig struct {
	// File enables rotated file logging when set; empty logs to stdout.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// DriveConfig configures the optional Google Drive exporter.
type DriveConfig struct {
	Enabled      bool   `yaml:"enabled"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	// TokenFile caches the OAuth token between runs.
	TokenFile string `yaml:"token_file"`
	// RootFolder is the Drive folder holding per-client subfolders.
	RootFolder string `yaml:"root_folder"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix COACHDESK_ and underscore-separated
// paths:
//
//	COACHDESK_SERVER_HOST, COACHDESK_SERVER_PORT,
//	COACHDESK_DB_PATH, COACHDESK_AUTH_API_KEY,
//	COACHDESK_DRIVE_CLIENT_ID, COACHDESK_DRIVE_CLIENT_SECRET
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Path == "" {
		cfg.Database.Path = "coachdesk.db"
	}
	if cfg.Drive.TokenFile == "" {
		cfg.Drive.TokenFile = "drive_token.json"
	}
	if cfg.Drive.RootFolder == "" {
		cfg.Drive.RootFolder = "Coachdesk Sessions"
	}
	if cfg.Logging.MaxSizeMB == 0 {
		cfg.Logging.MaxSizeMB = 20
	}
	if cfg.Logging.MaxBackups == 0 {
		cfg.Logging.MaxBackups = 3
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COACHDESK_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("COACHDESK_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("COACHDESK_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("COACHDESK_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("COACHDESK_DRIVE_CLIENT_ID"); v != "" {
		cfg.Drive.ClientID = v
	}
	if v := os.Getenv("COACHDESK_DRIVE_CLIENT_SECRET"); v != "" {
		cfg.Drive.ClientSecret = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	// A half-configured exporter would otherwise fail on every finalize.
	if c.Drive.Enabled {
		if c.Drive.ClientID == "" {
			return fmt.Errorf("drive.client_id is required when drive.enabled")
		}
		if c.Drive.ClientSecret == "" {
			return fmt.Errorf("drive.client_secret is required when drive.enabled")
		}
	}
	return nil
}
