package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultPort      = 8000
	DefaultModelPath = "cancermodel.json"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// CORS holds the opt-in CORS settings.
type CORS struct {
	Enabled        bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods" yaml:"allowed_methods" toml:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers" yaml:"allowed_headers" toml:"allowed_headers"`
}

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	// Addr is a full listen address; when set it wins over Port.
	Addr             string `json:"addr" yaml:"addr" toml:"addr"`
	Port             int    `json:"port" yaml:"port" toml:"port"`
	ModelPath        string `json:"model_path" yaml:"model_path" toml:"model_path"`
	LogLevel         string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat        string `json:"log_format" yaml:"log_format" toml:"log_format"`
	LogFile          string `json:"log_file" yaml:"log_file" toml:"log_file"`
	PredictTimeoutMS int    `json:"predict_timeout_ms" yaml:"predict_timeout_ms" toml:"predict_timeout_ms"`
	MaxBodyBytes     int64  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	// DisableSwagger hides /swagger/*.
	DisableSwagger bool `json:"disable_swagger" yaml:"disable_swagger" toml:"disable_swagger"`
	CORS           CORS `json:"cors" yaml:"cors" toml:"cors"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. getenv is usually
// os.Getenv. PORT is honored for compatibility with common hosting setups.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("DIAGNOSD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = p
	}
	if v := getenv("DIAGNOSD_MODEL"); v != "" {
		cfg.ModelPath = v
	}
	if v := getenv("DIAGNOSD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("DIAGNOSD_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := getenv("DIAGNOSD_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := getenv("DIAGNOSD_PREDICT_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return fmt.Errorf("invalid DIAGNOSD_PREDICT_TIMEOUT_MS %q", v)
		}
		cfg.PredictTimeoutMS = ms
	}
	return nil
}

// ApplyDefaults fills unspecified fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.ModelPath == "" {
		cfg.ModelPath = DefaultModelPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.CORS.Enabled && len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
}

// ListenAddr returns Addr when set, otherwise ":<Port>".
func (c Config) ListenAddr() string {
	if c.Addr != "" {
		return c.Addr
	}
	return ":" + strconv.Itoa(c.Port)
}
