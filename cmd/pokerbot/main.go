package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/susu3304/pokerbot/internal/api"
	"github.com/susu3304/pokerbot/internal/bot"
	"github.com/susu3304/pokerbot/internal/config"
	"github.com/susu3304/pokerbot/internal/logger"
	"github.com/susu3304/pokerbot/internal/poker"
	"github.com/susu3304/pokerbot/internal/slack"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Fatalf("Failed to load config: %v", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	controllers := map[string]*poker.Controller{}

	// Slack: commands and button callbacks arrive over HTTP
	if cfg.SlackEnabled() {
		client := slack.New(ctx, cfg.SlackAPIURL, cfg.SlackAccessToken)
		ctrl := poker.NewController(poker.NewStore(), poker.NewDirectory(), client, log.WithField("platform", api.PlatformSlack))
		controllers[api.PlatformSlack] = ctrl
		ctrl.Warm(ctx)
	}

	// Discord: commands and button presses arrive over the gateway
	var discordBot *bot.Bot
	if cfg.DiscordEnabled() {
		discordBot, err = bot.New(cfg.DiscordToken, poker.NewStore(), poker.NewDirectory(), log)
		if err != nil {
			log.Fatalf("Failed to create discord bot: %v", err)
		}
		controllers[api.PlatformDiscord] = discordBot.Controller()
		if err := discordBot.Start(); err != nil {
			log.Fatalf("Failed to start discord bot: %v", err)
		}
	}

	// Initialize API server
	apiServer := api.New(cfg, log, controllers)
	go func() {
		if err := apiServer.Start(); err != nil {
			log.Errorf("API server error: %v", err)
		}
	}()

	// Wait for signal to stop
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	cancelRun()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("API server shutdown")
	}
	if discordBot != nil {
		if err := discordBot.Stop(); err != nil {
			log.WithError(err).Warn("discord session close")
		}
	}
	for _, ctrl := range controllers {
		ctrl.Wait()
	}
}
