package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/avelinek/lira-core/core/commands"
)

const defaultBasePrompt = "You are Lira, a concise voice assistant. Keep spoken " +
	"answers short and conversational."

type appConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	Voice      string `mapstructure:"voice"`
	BasePrompt string `mapstructure:"base_prompt"`
	Locale     string `mapstructure:"locale"`

	InputTranscripts  bool `mapstructure:"input_transcripts"`
	OutputTranscripts bool `mapstructure:"output_transcripts"`

	// Rules optionally replaces the built-in phrase rules.
	Rules []commands.Rule `mapstructure:"rules"`
}

func loadConfig(path string) (appConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("lira")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lira")
	}

	// Registered empty so AutomaticEnv can surface LIRA_API_KEY.
	v.SetDefault("api_key", "")
	v.SetDefault("model", "models/gemini-2.0-flash-live-001")
	v.SetDefault("voice", "Aoede")
	v.SetDefault("base_prompt", defaultBasePrompt)
	v.SetDefault("locale", "en")
	v.SetDefault("input_transcripts", true)
	v.SetDefault("output_transcripts", true)

	v.SetEnvPrefix("LIRA")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return appConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var config appConfig
	if err := v.Unmarshal(&config); err != nil {
		return appConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if config.APIKey == "" {
		config.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if config.APIKey == "" {
		return appConfig{}, fmt.Errorf("no API key configured (set api_key or GEMINI_API_KEY)")
	}

	return config, nil
}

// commandRules returns the configured phrase rules, filtered to the
// configured locale when one is set. English rules always stay active.
func (c appConfig) commandRules() []commands.Rule {
	rules := c.Rules
	if len(rules) == 0 {
		rules = commands.DefaultRules()
	}

	if c.Locale == "" {
		return rules
	}

	filtered := make([]commands.Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.Locale == c.Locale || rule.Locale == "en" {
			filtered = append(filtered, rule)
		}
	}
	return filtered
}
