package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load loads and validates configuration from:
// 1. Default values
// 2. the YAML file at path (optional; an empty path or a missing file is fine)
// 3. BOT_* environment variables
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := loadConfig(v, path); err != nil {
		return nil, fmt.Errorf("%w: failed to load config file: %w", ErrConfiguration, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %w", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return cfg, nil
}

// Validate checks struct tags on the whole configuration tree.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("single_string_verb", singleStringVerb); err != nil {
		return fmt.Errorf("failed to register validator: %w", err)
	}
	return validate.Struct(c)
}

// singleStringVerb accepts a format string with exactly one %s and no other
// verbs. %% is allowed.
func singleStringVerb(fl validator.FieldLevel) bool {
	return countStringVerbs(fl.Field().String()) == 1
}

// countStringVerbs returns the number of %s verbs in format, or -1 if it
// holds any other verb or a dangling %.
func countStringVerbs(format string) int {
	n := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		if i == len(format) {
			return -1
		}
		switch format[i] {
		case '%':
		case 's':
			n++
		default:
			return -1
		}
	}
	return n
}

// loadConfig wires the file and environment sources into v.
func loadConfig(v *viper.Viper, path string) error {
	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return nil
	}
	v.SetConfigFile(path)

	// Allow missing config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// setDefaults registers defaults for every key so AutomaticEnv can override
// any of them during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultLogJSON)

	// Telegram defaults
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.poll_timeout", DefaultTelegramPollTimeout)

	// DiceBear defaults
	v.SetDefault("dicebear.base_url", DefaultDiceBearBaseURL)

	// Pipeline defaults
	v.SetDefault("bot.max_concurrent_updates", DefaultBotMaxConcurrentUpdates)
	v.SetDefault("bot.update_buffer", DefaultBotUpdateBuffer)
	v.SetDefault("bot.error_buffer", DefaultBotErrorBuffer)

	// Reply texts
	v.SetDefault("messages.help", DefaultMessages.Help)
	v.SetDefault("messages.use_command", DefaultMessages.UseCommand)
	v.SetDefault("messages.unknown_command", DefaultMessages.UnknownCommand)
	v.SetDefault("messages.seed_required_fmt", DefaultMessages.SeedRequiredFmt)
	v.SetDefault("messages.caption_fmt", DefaultMessages.CaptionFmt)
	v.SetDefault("messages.fetch_failed", DefaultMessages.FetchFailed)
	v.SetDefault("messages.send_failed", DefaultMessages.SendFailed)

	// Scheduler defaults
	v.SetDefault("scheduler.tasks."+ProbeTaskName+".enabled", DefaultProbeTaskEnable)
	v.SetDefault("scheduler.tasks."+ProbeTaskName+".schedule", DefaultProbeSchedule)
	v.SetDefault("scheduler.tasks."+ProbeTaskName+".timeout", DefaultProbeTimeout)
}
