package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort          int    `mapstructure:"APP_PORT"`
	StorageBackend   string `mapstructure:"STORAGE_BACKEND"` // "sqlite" or "redis"
	DatabasePath     string `mapstructure:"DATABASE_PATH"`
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	GeneratorBackend string `mapstructure:"GENERATOR_BACKEND"` // "mock" or "ollama"
	OllamaURL        string `mapstructure:"OLLAMA_URL"`
	OllamaModel      string `mapstructure:"OLLAMA_MODEL"`
	ImageBackend     string `mapstructure:"IMAGE_BACKEND"` // "off" or "http"
	ImageURL         string `mapstructure:"IMAGE_URL"`
	RemindersEnabled bool   `mapstructure:"REMINDERS_ENABLED"`
	SystemPrompt     string `mapstructure:"SYSTEM_PROMPT"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
}

func Load() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("STORAGE_BACKEND", "sqlite")
	viper.SetDefault("DATABASE_PATH", "./data/itelo.db")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("GENERATOR_BACKEND", "mock")
	viper.SetDefault("OLLAMA_URL", "http://localhost:11434")
	viper.SetDefault("OLLAMA_MODEL", "llama3.2")
	viper.SetDefault("IMAGE_BACKEND", "off")
	viper.SetDefault("IMAGE_URL", "")
	viper.SetDefault("REMINDERS_ENABLED", true)
	viper.SetDefault("SYSTEM_PROMPT", "You are a helpful, slightly light-hearted and fun assistant. Keep your responses concise and engaging.")
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
