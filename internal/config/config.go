package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	DatabasePath  string
	HTTPAddr      string
	TelegramToken string
	LogLevel      string

	LLM       LLM
	Narrative Narrative
	Seed      Seed
}

// LLM configures the text generation backend
type LLM struct {
	APIKey  string
	Model   string
	UseMock bool
}

// Narrative configures the analysis narrative cache
type Narrative struct {
	CacheSize int
	CacheTTL  time.Duration
}

// Seed configures synthetic data generation
type Seed struct {
	Players           int
	SessionsPerPlayer int
	Concurrency       int
	UseLLM            bool
	RandomSeed        uint64
}

// Defaults registers default values for every key on v
func Defaults(v *viper.Viper) {
	v.SetDefault("database_path", "./playmood.db")
	v.SetDefault("http_addr", ":8000")
	v.SetDefault("telegram_bot_token", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("google_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("narrative_cache_size", 128)
	v.SetDefault("narrative_cache_ttl", 10*time.Minute)
	v.SetDefault("seed_players", 50)
	v.SetDefault("seed_sessions_per_player", 5)
	v.SetDefault("seed_concurrency", 4)
	v.SetDefault("seed_use_llm", false)
	v.SetDefault("seed_random_seed", 0)
}

// Load loads configuration from an optional .env file, the environment and
// any flags already bound on v
func Load(v *viper.Viper) (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	Defaults(v)
	v.AutomaticEnv()

	apiKey := v.GetString("google_api_key")

	// Without an API key the mock client is the only thing that can work
	useMock := apiKey == ""
	if v.IsSet("use_mock_llm") {
		useMock = v.GetBool("use_mock_llm")
	}

	cfg := &Config{
		DatabasePath:  v.GetString("database_path"),
		HTTPAddr:      v.GetString("http_addr"),
		TelegramToken: v.GetString("telegram_bot_token"),
		LogLevel:      v.GetString("log_level"),
		LLM: LLM{
			APIKey:  apiKey,
			Model:   v.GetString("gemini_model"),
			UseMock: useMock,
		},
		Narrative: Narrative{
			CacheSize: v.GetInt("narrative_cache_size"),
			CacheTTL:  v.GetDuration("narrative_cache_ttl"),
		},
		Seed: Seed{
			Players:           v.GetInt("seed_players"),
			SessionsPerPlayer: v.GetInt("seed_sessions_per_player"),
			Concurrency:       v.GetInt("seed_concurrency"),
			UseLLM:            v.GetBool("seed_use_llm"),
			RandomSeed:        v.GetUint64("seed_random_seed"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if !c.LLM.UseMock && c.LLM.APIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY is required unless USE_MOCK_LLM is set")
	}
	if c.Seed.Players < 0 || c.Seed.SessionsPerPlayer < 0 {
		return fmt.Errorf("seed sizes must not be negative")
	}
	if c.Seed.Concurrency < 1 {
		c.Seed.Concurrency = 1
	}
	return nil
}
