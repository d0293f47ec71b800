// Package config manages application configuration from environment variables,
// an optional config file, and default values.
package config

import (
	"errors"
	"time"
)

// ErrConfiguration wraps every error returned by Load.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration. Values can be set via
// environment variables prefixed with BOT_ (e.g. BOT_TELEGRAM_TOKEN) or
// through config.yaml.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	DiceBear  DiceBearConfig  `mapstructure:"dicebear"`
	Bot       BotConfig       `mapstructure:"bot"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds Bot API credentials and polling settings.
type TelegramConfig struct {
	Token       string        `mapstructure:"token"        validate:"required"`
	PollTimeout time.Duration `mapstructure:"poll_timeout" validate:"min=1s,max=10m"`
}

// DiceBearConfig points the avatar fetcher at the image API.
type DiceBearConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

// BotConfig tunes the update pipeline.
type BotConfig struct {
	MaxConcurrentUpdates int `mapstructure:"max_concurrent_updates" validate:"min=1,max=1000"`
	UpdateBuffer         int `mapstructure:"update_buffer"          validate:"min=0"`
	ErrorBuffer          int `mapstructure:"error_buffer"           validate:"min=1"`
}

// MessagesConfig is the table of user-facing replies.
type MessagesConfig struct {
	Help            string `mapstructure:"help"              validate:"required"`
	UseCommand      string `mapstructure:"use_command"       validate:"required"`
	UnknownCommand  string `mapstructure:"unknown_command"   validate:"required"`
	SeedRequiredFmt string `mapstructure:"seed_required_fmt" validate:"required,single_string_verb"`
	CaptionFmt      string `mapstructure:"caption_fmt"       validate:"required,single_string_verb"`
	FetchFailed     string `mapstructure:"fetch_failed"      validate:"required"`
	SendFailed      string `mapstructure:"send_failed"       validate:"required"`
}

// SchedulerConfig lists background tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a task and sets its cron schedule.
type TaskConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Schedule string        `mapstructure:"schedule" validate:"required_if=Enabled true"`
	Timeout  time.Duration `mapstructure:"timeout"  validate:"min=0"`
}
