// Package config loads runtime configuration from an optional YAML file with
// environment-variable overrides for secrets. Every field has a safe default
// so the binary runs locally with no setup beyond API keys.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Auth      AuthConfig      `yaml:"auth"`
	Redis     RedisConfig     `yaml:"redis"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	LLM       LLMConfig       `yaml:"llm"`
	Chat      ChatConfig      `yaml:"chat"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// User is a statically configured login. PasswordHash is a bcrypt hash.
type User struct {
	Name         string `yaml:"name"`
	PasswordHash string `yaml:"passwordHash"`
	Role         string `yaml:"role"` // admin or user
}

// AuthConfig holds JWT settings and the static user list.
type AuthConfig struct {
	JWTSecret      string `yaml:"jwtSecret"` // JWT_SECRET overrides
	JWTExpiryHours int    `yaml:"jwtExpiryHours"`
	Users          []User `yaml:"users"`
}

// RedisConfig holds the session summary store settings.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// PineconeConfig holds the hosted vector index settings.
type PineconeConfig struct {
	APIKey    string `yaml:"apiKey"` // PINECONE_API_KEY overrides
	IndexName string `yaml:"indexName"`
	IndexHost string `yaml:"indexHost"` // optional; resolved when empty
	Namespace string `yaml:"namespace"`
}

// RetrievalConfig selects and configures the retrieval backend.
type RetrievalConfig struct {
	Backend    string         `yaml:"backend"` // pinecone, sqlite or memory
	TopK       int            `yaml:"topK"`
	SQLitePath string         `yaml:"sqlitePath"`
	Pinecone   PineconeConfig `yaml:"pinecone"`
}

// GeminiConfig configures the hosted-cloud primary provider.
type GeminiConfig struct {
	Enabled    bool   `yaml:"enabled"`
	APIKey     string `yaml:"apiKey"` // GEMINI_API_KEY overrides
	BaseURL    string `yaml:"baseURL"`
	Model      string `yaml:"model"`
	EmbedModel string `yaml:"embedModel"`
}

// OllamaConfig configures the self-hosted-local provider.
type OllamaConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"baseURL"`
	Model   string `yaml:"model"`
}

// GroqConfig configures the cloud-fallback provider.
type GroqConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"apiKey"` // GROQ_API_KEY overrides
	BaseURL string `yaml:"baseURL"`
	Model   string `yaml:"model"`
}

// LLMConfig holds provider settings and shared generation limits.
type LLMConfig struct {
	RequestTimeoutSeconds int          `yaml:"requestTimeoutSeconds"`
	ProbeTimeoutSeconds   int          `yaml:"probeTimeoutSeconds"`
	Temperature           float64      `yaml:"temperature"`
	MaxTokens             int          `yaml:"maxTokens"`
	Gemini                GeminiConfig `yaml:"gemini"`
	Ollama                OllamaConfig `yaml:"ollama"`
	Groq                  GroqConfig   `yaml:"groq"`
}

// ChatConfig holds currency normalization and the support persona.
type ChatConfig struct {
	CurrencySymbol string  `yaml:"currencySymbol"`
	ConversionRate float64 `yaml:"conversionRate"`
	SupportPersona string  `yaml:"supportPersona"`
}

// Load reads the YAML file at path (skipped when path is empty or missing),
// then applies env overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// defaults returns a config that runs locally: Ollama-only generation,
// in-memory retrieval, no Redis.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Log:    LogConfig{Level: "info"},
		Auth:   AuthConfig{JWTExpiryHours: 24},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		Retrieval: RetrievalConfig{
			Backend:    "memory",
			TopK:       5,
			SQLitePath: "sahayak.db",
		},
		LLM: LLMConfig{
			RequestTimeoutSeconds: 30,
			ProbeTimeoutSeconds:   5,
			Temperature:           0.2,
			MaxTokens:             4096,
			Gemini: GeminiConfig{
				Enabled:    true,
				Model:      "gemini-1.5-pro",
				EmbedModel: "text-embedding-004",
			},
			Ollama: OllamaConfig{
				Enabled: true,
				BaseURL: "http://localhost:11434",
				Model:   "deepseek-r1:latest",
			},
			Groq: GroqConfig{
				Enabled: true,
				Model:   "llama-3-70b-8192",
			},
		},
		Chat: ChatConfig{
			CurrencySymbol: "₹",
			ConversionRate: 83,
		},
	}
}

// applyEnvOverrides lets secrets and deployment endpoints come from the
// environment instead of the config file.
func applyEnvOverrides(cfg *Config) {
	cfg.Auth.JWTSecret = envOr("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Retrieval.Pinecone.APIKey = envOr("PINECONE_API_KEY", cfg.Retrieval.Pinecone.APIKey)
	cfg.Retrieval.Pinecone.IndexName = envOr("PINECONE_INDEX_NAME", cfg.Retrieval.Pinecone.IndexName)
	cfg.LLM.Gemini.APIKey = envOr("GEMINI_API_KEY", cfg.LLM.Gemini.APIKey)
	cfg.LLM.Groq.APIKey = envOr("GROQ_API_KEY", cfg.LLM.Groq.APIKey)
	cfg.LLM.Ollama.BaseURL = envOr("OLLAMA_BASE_URL", cfg.LLM.Ollama.BaseURL)
	cfg.LLM.Ollama.Model = envOr("OLLAMA_MODEL", cfg.LLM.Ollama.Model)
	cfg.Redis.Addr = envOr("REDIS_ADDR", cfg.Redis.Addr)

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}

// RequestTimeout returns the generation call timeout as a Duration.
func (c *LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// ProbeTimeout returns the health probe timeout as a Duration.
func (c *LLMConfig) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
