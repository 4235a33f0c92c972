package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds application configuration.
type Config struct {
	Port                    string
	Env                     string
	LogMode                 string
	UploadDir               string
	MaxUploadBytes          int64
	CORSAllowOrigin         []string
	LLMProvider             string
	LLMModel                string
	OpenAIAPIKey            string
	GeminiAPIKey            string
	LLMTimeout              time.Duration
	MockMode                bool
	MockDelayDisabled       bool
	RateLimitGeneratePerMin int
}

// Load reads configuration from an optional .env file and the environment, with defaults.
func Load() Config {
	return LoadFrom(".env", "cmd/.env")
}

// LoadFrom is Load with explicit env file candidates. Missing files are ignored.
func LoadFrom(envFiles ...string) Config {
	v := viper.New()
	setDefaults(v)
	for _, path := range envFiles {
		fv := viper.New()
		fv.SetConfigFile(path)
		fv.SetConfigType("env")
		if err := fv.ReadInConfig(); err != nil {
			continue
		}
		for _, key := range fv.AllKeys() {
			v.SetDefault(key, fv.Get(key))
		}
	}
	v.AutomaticEnv()
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "4000")
	v.SetDefault("env", "dev")
	v.SetDefault("log_mode", "dev")
	v.SetDefault("upload_dir", "./uploads")
	v.SetDefault("max_upload_mb", 20)
	v.SetDefault("cors_allow_origins", "*")
	v.SetDefault("llm_provider", ProviderOpenAI)
	v.SetDefault("llm_model", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("llm_timeout_seconds", 120)
	v.SetDefault("mock_mode", false)
	v.SetDefault("mock_delay_disabled", false)
	v.SetDefault("rate_limit_generate_per_min", 30)
}

func fromViper(v *viper.Viper) Config {
	provider := normalizeProvider(v.GetString("llm_provider"))
	model := strings.TrimSpace(v.GetString("llm_model"))
	if model == "" {
		model = defaultModel(provider)
	}
	maxMB := v.GetInt64("max_upload_mb")
	if maxMB <= 0 {
		maxMB = 20
	}
	timeout := v.GetInt("llm_timeout_seconds")
	if timeout <= 0 {
		timeout = 120
	}
	return Config{
		Port:                    v.GetString("port"),
		Env:                     normalizeEnv(v.GetString("env")),
		LogMode:                 v.GetString("log_mode"),
		UploadDir:               v.GetString("upload_dir"),
		MaxUploadBytes:          maxMB << 20,
		CORSAllowOrigin:         splitAndTrim(v.GetString("cors_allow_origins")),
		LLMProvider:             provider,
		LLMModel:                model,
		OpenAIAPIKey:            strings.TrimSpace(v.GetString("openai_api_key")),
		GeminiAPIKey:            strings.TrimSpace(v.GetString("gemini_api_key")),
		LLMTimeout:              time.Duration(timeout) * time.Second,
		MockMode:                v.GetBool("mock_mode"),
		MockDelayDisabled:       v.GetBool("mock_delay_disabled"),
		RateLimitGeneratePerMin: v.GetInt("rate_limit_generate_per_min"),
	}
}

// APIKey returns the credential for the configured provider.
func (c Config) APIKey() string {
	if c.LLMProvider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// ModelCredentialPresent reports whether real model calls are possible.
func (c Config) ModelCredentialPresent() bool {
	return strings.TrimSpace(c.APIKey()) != ""
}

// WithModelOverrides applies command-line provider and model overrides. The
// provider is normalized like LLM_PROVIDER. When only the provider changes, a
// model that was the old provider's default follows to the new provider's.
func (c Config) WithModelOverrides(provider, model string) Config {
	if strings.TrimSpace(provider) != "" {
		next := normalizeProvider(provider)
		if next != c.LLMProvider && (c.LLMModel == "" || c.LLMModel == defaultModel(c.LLMProvider)) {
			c.LLMModel = defaultModel(next)
		}
		c.LLMProvider = next
	}
	if m := strings.TrimSpace(model); m != "" {
		c.LLMModel = m
	}
	if c.LLMModel == "" {
		c.LLMModel = defaultModel(c.LLMProvider)
	}
	return c
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-1.5-flash"
	}
	return "gpt-4o-mini"
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ProviderGemini, "google":
		return ProviderGemini
	default:
		return ProviderOpenAI
	}
}
