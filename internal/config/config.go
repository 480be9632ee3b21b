// Package config loads agentbrief settings from an optional YAML file, a
// .env file and AGENTBRIEF_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/agentbrief/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	LLM    LLMConfig    `yaml:"llm"`
	Store  StoreConfig  `yaml:"store"`
	Bundle BundleConfig `yaml:"bundle"`
	Server ServerConfig `yaml:"server"`
}

// LLMConfig controls optional section enhancement. Credentials are not read
// from the file; they come from the environment (see llm.ConfigFromEnv).
type LLMConfig struct {
	Enhance     bool          `yaml:"enhance"`
	Provider    string        `yaml:"provider" validate:"omitempty,oneof=anthropic openai gemini openrouter mock"`
	Model       string        `yaml:"model"`
	Timeout     time.Duration `yaml:"timeout" validate:"gte=0"`
	MaxTokens   int           `yaml:"max_tokens" validate:"gte=256,lte=32000"`
	Temperature float64       `yaml:"temperature" validate:"gte=0,lte=1"`
	CacheSize   int           `yaml:"cache_size" validate:"gte=0,lte=4096"`
}

// StoreConfig selects the history database. An empty DSN means the default
// SQLite file; postgres:// URLs select Postgres.
type StoreConfig struct {
	DSN    string `yaml:"dsn"`
	Record bool   `yaml:"record"`
}

// BundleConfig controls where bundles are written or published.
type BundleConfig struct {
	OutputDir   string `yaml:"output_dir" validate:"required"`
	Endpoint    string `yaml:"endpoint"`
	Region      string `yaml:"region"`
	AccessKey   string `yaml:"access_key" validate:"required_with=Endpoint"`
	SecretKey   string `yaml:"secret_key" validate:"required_with=Endpoint"`
	Bucket      string `yaml:"bucket" validate:"required_with=Endpoint"`
	Prefix      string `yaml:"prefix"`
	UseSSL      bool   `yaml:"use_ssl"`
	Concurrency int    `yaml:"concurrency" validate:"gte=1,lte=32"`
}

// CanPublish reports whether object-storage settings are complete.
func (b BundleConfig) CanPublish() bool {
	return b.Endpoint != "" && b.Bucket != "" && b.AccessKey != "" && b.SecretKey != ""
}

// ServerConfig configures the live preview server.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Timeout:     20 * time.Second,
			MaxTokens:   2048,
			Temperature: 0.3,
			CacheSize:   64,
		},
		Store: StoreConfig{Record: true},
		Bundle: BundleConfig{
			OutputDir:   ".",
			Region:      "us-east-1",
			UseSSL:      true,
			Concurrency: 4,
		},
		Server: ServerConfig{Addr: "127.0.0.1:7878"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/agentbrief/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "agentbrief", "config.yaml"), nil
}

// Load builds the configuration. path may be empty, in which case the
// default path is used if it exists. An explicitly named file must exist.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// LLMProvider resolves the provider configuration. The provider comes from
// AGENTBRIEF_LLM_PROVIDER, else the file; if it has no key, the vendors'
// standard key variables are checked instead. The file's model and timeout
// apply to whichever provider wins.
func (c *Config) LLMProvider() llm.Config {
	pc := llm.ConfigFromEnv()
	if c.LLM.Provider != "" && os.Getenv(llm.EnvPrefix+"LLM_PROVIDER") == "" {
		pc.Provider = c.LLM.Provider
	}
	if !pc.HasCredentials() {
		if discovered, ok := llm.DiscoverConfig(); ok {
			pc = discovered
		}
	}
	if c.LLM.Model != "" {
		switch pc.Provider {
		case "anthropic":
			pc.Anthropic.Model = c.LLM.Model
		case "openai":
			pc.OpenAI.Model = c.LLM.Model
		case "gemini":
			pc.Gemini.Model = c.LLM.Model
		case "openrouter":
			pc.OpenRouter.Model = c.LLM.Model
		}
	}
	if c.LLM.Timeout > 0 {
		pc.Timeout = c.LLM.Timeout
	}
	return pc
}

func applyEnv(c *Config) {
	str := func(name string, into *string) {
		if v := strings.TrimSpace(os.Getenv(llm.EnvPrefix + name)); v != "" {
			*into = v
		}
	}
	boolean := func(name string, into *bool) {
		if v := strings.TrimSpace(os.Getenv(llm.EnvPrefix + name)); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*into = b
			}
		}
	}

	boolean("ENHANCE", &c.LLM.Enhance)
	str("DB", &c.Store.DSN)
	boolean("RECORD", &c.Store.Record)

	str("BUNDLE_DIR", &c.Bundle.OutputDir)
	str("S3_ENDPOINT", &c.Bundle.Endpoint)
	str("S3_REGION", &c.Bundle.Region)
	str("S3_ACCESS_KEY", &c.Bundle.AccessKey)
	str("S3_SECRET_KEY", &c.Bundle.SecretKey)
	str("S3_BUCKET", &c.Bundle.Bucket)
	str("S3_PREFIX", &c.Bundle.Prefix)
	boolean("S3_USE_SSL", &c.Bundle.UseSSL)

	str("SERVER_ADDR", &c.Server.Addr)
}
