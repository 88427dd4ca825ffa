package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`

	Providers struct {
		OpenAIAPIKey   string `mapstructure:"openai_api_key"`
		OpenAIModel    string `mapstructure:"openai_model"`
		GeminiAPIKey   string `mapstructure:"gemini_api_key"`
		GeminiModel    string `mapstructure:"gemini_model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"providers"`

	Summarization struct {
		MaxLength int `mapstructure:"max_length"`
		MinLength int `mapstructure:"min_length"`
	} `mapstructure:"summarization"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.addr", "localhost")
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("providers.openai_model", "gpt-4o-mini")
	viper.SetDefault("providers.gemini_model", "gemini-1.5-flash")
	viper.SetDefault("providers.timeout_seconds", 30)
	viper.SetDefault("summarization.max_length", 50)
	viper.SetDefault("summarization.min_length", 20)

	viper.AutomaticEnv()
	// Bind the conventional key env vars so no config file is needed to
	// enable the model collaborators.
	viper.BindEnv("providers.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("providers.gemini_api_key", "GEMINI_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env vars cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
