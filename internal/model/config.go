package model

import "time"

// Config holds the complete runtime configuration. Defaults come from
// DefaultConfig; viper layers config file, VERASCOPE_* env vars and flags on
// top.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Limits      LimitsConfig      `yaml:"limits" mapstructure:"limits"`
	Media       MediaConfig       `yaml:"media" mapstructure:"media"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Forensics   ForensicsConfig   `yaml:"forensics" mapstructure:"forensics"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Storage     StorageConfig     `yaml:"storage" mapstructure:"storage"`
	Notify      NotifyConfig      `yaml:"notify" mapstructure:"notify"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
}

// HTTPConfig controls outbound URL fetches.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	RetryAttempts int           `yaml:"retry_attempts" mapstructure:"retry_attempts"`
}

// CacheConfig controls the fetch cache.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir             string        `yaml:"dir" mapstructure:"dir"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// LimitsConfig holds content-length ceilings.
type LimitsConfig struct {
	MaxContentChars int `yaml:"max_content_chars" mapstructure:"max_content_chars"`
	BiasPromptChars int `yaml:"bias_prompt_chars" mapstructure:"bias_prompt_chars"`
	MaxListEntries  int `yaml:"max_list_entries" mapstructure:"max_list_entries"`
}

// MediaConfig gates media uploads before any network call. The anonymous
// surface gets the smaller ceiling and the wider MIME list.
type MediaConfig struct {
	MaxUploadBytes     int64    `yaml:"max_upload_bytes" mapstructure:"max_upload_bytes"`
	MaxUploadBytesAuth int64    `yaml:"max_upload_bytes_auth" mapstructure:"max_upload_bytes_auth"`
	AllowedTypes       []string `yaml:"allowed_types" mapstructure:"allowed_types"`
	AllowedTypesAuth   []string `yaml:"allowed_types_auth" mapstructure:"allowed_types_auth"`
}

// LLMConfig selects and configures the narrative generator.
type LLMConfig struct {
	Provider  string        `yaml:"provider" mapstructure:"provider"`
	Model     string        `yaml:"model" mapstructure:"model"`
	APIKey    string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ForensicsConfig configures the media-forensics inference endpoint.
type ForensicsConfig struct {
	Endpoint      string        `yaml:"endpoint" mapstructure:"endpoint"`
	APIKey        string        `yaml:"api_key" mapstructure:"api_key"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	DeepfakeClass string        `yaml:"deepfake_class" mapstructure:"deepfake_class"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr      string `yaml:"addr" mapstructure:"addr"`
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

// StorageConfig configures result persistence.
type StorageConfig struct {
	DSN string `yaml:"dsn" mapstructure:"dsn"`
}

// NotifyConfig configures the best-effort notification webhook.
type NotifyConfig struct {
	WebhookURL string        `yaml:"webhook_url" mapstructure:"webhook_url"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ConcurrencyConfig bounds background work.
type ConcurrencyConfig struct {
	VetWorkers   int `yaml:"vet_workers" mapstructure:"vet_workers"`
	BatchWorkers int `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Verascope/0.1 (+https://github.com/dmarkov/verascope)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
			RetryAttempts: 1,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             15 * time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Limits: LimitsConfig{
			MaxContentChars: 5000,
			BiasPromptChars: 3000,
			MaxListEntries:  5,
		},
		Media: MediaConfig{
			MaxUploadBytes:     10 << 20,
			MaxUploadBytesAuth: 50 << 20,
			AllowedTypes: []string{
				"image/jpeg", "image/png", "image/gif", "image/webp",
				"video/mp4", "video/webm",
			},
			AllowedTypesAuth: []string{
				"image/jpeg", "image/png", "image/webp", "video/mp4",
			},
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "",
			Timeout:   30 * time.Second,
			MaxTokens: 1000,
		},
		Forensics: ForensicsConfig{
			Timeout:       60 * time.Second,
			DeepfakeClass: "yes_deepfake",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Storage: StorageConfig{
			DSN: "verascope.db",
		},
		Notify: NotifyConfig{
			Timeout: 10 * time.Second,
		},
		Concurrency: ConcurrencyConfig{
			VetWorkers:   4,
			BatchWorkers: 4,
		},
	}
}
