package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

var defaultModels = map[string]string{
	ProviderGemini: "gemini-2.5-flash",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderMock:   "mock",
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Documents DocumentsConfig `mapstructure:"documents"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Host           string        `mapstructure:"host"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type LLMConfig struct {
	Provider          string        `mapstructure:"provider"`
	APIKey            string        `mapstructure:"api_key"`
	Model             string        `mapstructure:"model"`
	BaseURL           string        `mapstructure:"base_url"`
	ProcessingTimeout time.Duration `mapstructure:"processing_timeout"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	CleanupTimeout    time.Duration `mapstructure:"cleanup_timeout"`
}

// DocumentsConfig points at the two party platform PDFs on local disk.
type DocumentsConfig struct {
	Conservative string `mapstructure:"conservative"`
	Liberal      string `mapstructure:"liberal"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"host":            "server.host",
	"port":            "server.port",
	"provider":        "llm.provider",
	"model":           "llm.model",
	"conservative":    "documents.conservative",
	"liberal":         "documents.liberal",
	"log-level":       "log.level",
	"log-format":      "log.format",
	"config":          "config",
	"read-timeout":    "server.read_timeout",
	"write-timeout":   "server.write_timeout",
	"request-timeout": "server.request_timeout",
}

// Flags returns the command line flags understood by LoadConfig. Parse errors
// are returned to the caller.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("platform-compare", pflag.ContinueOnError)
	fs.String("config", "", "path to a config file (yaml, json or toml)")
	fs.String("host", "", "listen host")
	fs.String("port", "", "listen port")
	fs.String("provider", "", "document service provider: gemini, openai or mock")
	fs.String("model", "", "model used for generation")
	fs.String("conservative", "", "path to the Conservative Party platform PDF")
	fs.String("liberal", "", "path to the Liberal Party platform PDF")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("log-format", "", "log format: text or json")
	fs.Duration("read-timeout", 0, "HTTP server read timeout")
	fs.Duration("write-timeout", 0, "HTTP server write timeout")
	fs.Duration("request-timeout", 0, "per-request deadline for API routes, 0 disables")
	return fs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config", "")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.read_timeout", "30s")
	// zero disables: a comparison runs as long as the provider's client allows
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.request_timeout", "0s")
	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.processing_timeout", "60s")
	v.SetDefault("llm.poll_interval", "2s")
	v.SetDefault("llm.cleanup_timeout", "15s")
	v.SetDefault("documents.conservative", "data/conservative_plan.pdf")
	v.SetDefault("documents.liberal", "data/liberal_plan.pdf")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig resolves configuration from defaults, an optional config file,
// the environment and the given flags, in increasing order of precedence.
// Only flags that were explicitly set override other sources.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.api_key", "GOOGLE_API_KEY", "LLM_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, err
	}

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
			}
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Info("Configuration loaded successfully", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	return &cfg, nil
}

func (c *Config) validate() error {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	model, ok := defaultModels[c.LLM.Provider]
	if !ok {
		return fmt.Errorf("unsupported llm provider %q", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		c.LLM.Model = model
	}
	if c.LLM.PollInterval <= 0 {
		return fmt.Errorf("llm.poll_interval must be positive")
	}
	if c.Documents.Conservative == "" || c.Documents.Liberal == "" {
		return fmt.Errorf("both documents.conservative and documents.liberal must be set")
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	return nil
}

func (l LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// Logger builds the process logger described by the log section.
func (l LogConfig) Logger(w io.Writer) *slog.Logger {
	level, err := l.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
