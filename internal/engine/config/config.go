package config

import (
	"linkedin-content-engine/pkg/config"
)

// Engine holds content-engine tuning parameters.
type Engine struct {
	QualityThreshold     float64 `mapstructure:"quality_threshold"`
	MaxGenerateAttempts  int     `mapstructure:"max_generate_attempts"`
	BatchSize            int     `mapstructure:"batch_size"`
	MaxConcurrent        int     `mapstructure:"max_concurrent"`
	CacheTTLDays         int     `mapstructure:"cache_ttl_days"`
	RecommendationLimit  int     `mapstructure:"recommendation_limit"`
	TopIndustryLimit     int     `mapstructure:"top_industry_limit"`
	PerformanceWindowDay int     `mapstructure:"performance_window_days"`
	LearnCronSpec        string  `mapstructure:"learn_cron_spec"`
}

// Collector holds story-collection settings.
type Collector struct {
	FeedURLs         []string `mapstructure:"feed_urls"`
	MaxStoriesPerRun int      `mapstructure:"max_stories_per_run"`
	RequestTimeout   string   `mapstructure:"request_timeout"`
	CronSpec         string   `mapstructure:"cron_spec"`
}

// OpenAI holds the configuration for the OpenAI chat completion API.
type OpenAI struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// AI selects the primary text-completion provider; the other acts as fallback.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// Telegram holds configuration for the review notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the content service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Engine    Engine          `mapstructure:"engine"`
	Collector Collector       `mapstructure:"collector"`
	OpenAI    OpenAI          `mapstructure:"openai"`
	Gemini    Gemini          `mapstructure:"gemini"`
	AI        AI              `mapstructure:"ai"`
	Telegram  Telegram        `mapstructure:"telegram"`
}

// Load loads the content-service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Engine.QualityThreshold == 0 {
		cfg.Engine.QualityThreshold = 0.7
	}
	if cfg.Engine.MaxGenerateAttempts == 0 {
		cfg.Engine.MaxGenerateAttempts = 3
	}
	if cfg.Engine.BatchSize == 0 {
		cfg.Engine.BatchSize = 5
	}
	if cfg.Engine.MaxConcurrent == 0 {
		cfg.Engine.MaxConcurrent = 3
	}
	if cfg.Engine.CacheTTLDays == 0 {
		cfg.Engine.CacheTTLDays = 7
	}
	if cfg.Engine.RecommendationLimit == 0 {
		cfg.Engine.RecommendationLimit = 5
	}
	if cfg.Engine.TopIndustryLimit == 0 {
		cfg.Engine.TopIndustryLimit = 5
	}
	if cfg.Engine.PerformanceWindowDay == 0 {
		cfg.Engine.PerformanceWindowDay = 30
	}
}
