// Package main contains the entrypoint for the DiceBear avatar Telegram bot.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/spf13/pflag"

	"github.com/Khurshid0109/Dicebear/internal/avatar"
	"github.com/Khurshid0109/Dicebear/internal/bot"
	"github.com/Khurshid0109/Dicebear/internal/bot/handlers"
	"github.com/Khurshid0109/Dicebear/internal/bot/tasks"
	"github.com/Khurshid0109/Dicebear/internal/config"
	"github.com/Khurshid0109/Dicebear/internal/logger"
	"github.com/Khurshid0109/Dicebear/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx, os.Args[1:])
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run wires config, logger, transport, dispatcher, event loop and scheduler,
// blocks until shutdown, and returns the process exit code.
func run(ctx context.Context, args []string) int {
	flags := pflag.NewFlagSet("bot", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "./config.yaml", "Path to configuration file")
	if err := flags.Parse(args); err != nil {
		slog.Error("Failed to parse flags", "error", err)
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	registry := avatar.MustDefaultRegistry()
	// One shared client; cancellation comes from each request's context.
	httpClient := &http.Client{}
	fetcher := avatar.NewHTTPFetcher(httpClient, cfg.DiceBear.BaseURL, log)

	inbox := telegram.NewInbox(cfg.Bot.UpdateBuffer, cfg.Bot.ErrorBuffer, log)
	botOpts := append([]tgbot.Option{tgbot.WithMiddlewares(logger.Middleware(log))}, inbox.Options()...)
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, cfg.Telegram.PollTimeout, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := telegram.Identify(ctx, tg)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Bot started", "bot_id", me.ID, "bot_username", "@"+me.Username)

	dispatcher := handlers.NewDispatcher(handlers.HandlerDeps{
		Logger:      log,
		Messages:    cfg.Messages,
		Registry:    registry,
		Fetcher:     fetcher,
		Replier:     telegram.NewSender(tg),
		BotUsername: me.Username,
	})
	loop := bot.NewEventLoop(dispatcher, log, cfg.Bot.MaxConcurrentUpdates)

	taskMap := tasks.RegisterAllTasks(tasks.TaskDeps{Logger: log, Fetcher: fetcher, Config: cfg})
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, taskMap)
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, tg, inbox, loop, sched)

	log.Info("Starting bot...", "styles", registry.Commands())
	runErr := app.Run(ctx) // Run blocks until context is cancelled or an error occurs
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	httpClient.CloseIdleConnections()
	log.Info("Bot stopped gracefully.")
	return 0
}
