package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/llm"
	"github.com/Veraticus/finance-pro/internal/locale"
	"github.com/Veraticus/finance-pro/internal/storage"
)

// EnvPrefix is the prefix of environment overrides, e.g. FINPRO_LOCALE.
const EnvPrefix = "FINPRO"

// Config is the resolved application configuration.
type Config struct {
	Storage   storage.Config
	Locale    locale.Locale
	Currency  string
	LogLevel  string
	LogFormat string
	LLM       llm.Config
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("storage.backend", storage.BackendSQLite)
	v.SetDefault("locale", string(locale.Default))
	v.SetDefault("currency", locale.DefaultCurrency)
	v.SetDefault("llm.provider", llm.ProviderGemini)
	v.SetDefault("llm.temperature", 0.8)
	v.SetDefault("llm.max_tokens", 256)
	v.SetDefault("llm.history_limit", llm.DefaultHistoryLimit)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay", time.Second)
	v.SetDefault("llm.rate_limit", 10)
	v.SetDefault("llm.timeout", llm.DefaultTimeout)
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		p = ExpandPath(p)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// DotEnvPaths returns the .env files consulted at startup, most specific first.
func DotEnvPaths() []string {
	return []string{".env", filepath.Join(ConfigDir(), ".env")}
}

// Load resolves the full configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	storageCfg, err := LoadStorageConfig(v)
	if err != nil {
		return nil, err
	}

	return &Config{
		Storage:   storageCfg,
		LLM:       LoadLLMConfig(v),
		Locale:    locale.Parse(v.GetString("locale")),
		Currency:  v.GetString("currency"),
		LogLevel:  v.GetString("logging.level"),
		LogFormat: v.GetString("logging.format"),
	}, nil
}

// LoadStorageConfig resolves the storage backend and its location.
func LoadStorageConfig(v *viper.Viper) (storage.Config, error) {
	backend := strings.ToLower(v.GetString("storage.backend"))
	path := ExpandPath(v.GetString("storage.path"))

	switch backend {
	case storage.BackendSQLite, "":
		backend = storage.BackendSQLite
		if path == "" {
			path = filepath.Join(DataDir(), AppName+".db")
		}
	case storage.BackendFile:
		if path == "" {
			path = filepath.Join(DataDir(), "state")
		}
	case storage.BackendMemory:
	default:
		return storage.Config{}, fmt.Errorf("%w: storage.backend must be sqlite, file or memory, got %q",
			common.ErrInvalidConfig, backend)
	}

	return storage.Config{Backend: backend, Path: path}, nil
}

// LoadLLMConfig resolves the advice provider settings.
// The API key is looked up in this order:
// 1. llm.api_key (config file or FINPRO_LLM_API_KEY)
// 2. API_KEY
// 3. the provider's conventional variable, e.g. GEMINI_API_KEY
func LoadLLMConfig(v *viper.Viper) llm.Config {
	provider := strings.ToLower(v.GetString("llm.provider"))
	if provider == "" {
		provider = llm.ProviderGemini
	}

	cfg := llm.Config{
		Provider:       provider,
		APIKey:         v.GetString("llm.api_key"),
		Model:          v.GetString("llm.model"),
		BaseURL:        v.GetString("llm.base_url"),
		ClaudeCodePath: v.GetString("llm.claude_code_path"),
		Temperature:    v.GetFloat64("llm.temperature"),
		MaxTokens:      v.GetInt("llm.max_tokens"),
		HistoryLimit:   v.GetInt("llm.history_limit"),
		MaxRetries:     v.GetInt("llm.max_retries"),
		RetryDelay:     v.GetDuration("llm.retry_delay"),
		RateLimit:      v.GetInt("llm.rate_limit"),
		Timeout:        v.GetDuration("llm.timeout"),
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("API_KEY")
	}
	if cfg.APIKey == "" {
		if name, ok := providerKeyEnv[provider]; ok {
			cfg.APIKey = os.Getenv(name)
		}
	}

	return cfg
}

var providerKeyEnv = map[string]string{
	llm.ProviderGemini:    "GEMINI_API_KEY",
	llm.ProviderOpenAI:    "OPENAI_API_KEY",
	llm.ProviderAnthropic: "ANTHROPIC_API_KEY",
}
