package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/susu3304/pokerbot/internal/poker"
)

type Bot struct {
	ctx     context.Context
	cancel  context.CancelFunc
	session *discordgo.Session
	poker   *poker.Controller
	log     logrus.FieldLogger
}

func New(token string, store *poker.Store, dir *poker.Directory, log logrus.FieldLogger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	log = log.WithField("platform", "discord")
	ctx, cancel := context.WithCancel(context.Background())
	bot := &Bot{
		ctx:     ctx,
		cancel:  cancel,
		session: session,
		poker:   poker.NewController(store, dir, newPlatform(session), log),
		log:     log,
	}

	// Register event handlers
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onGuildCreate)
	session.AddHandler(bot.onInteractionCreate)

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	return bot, nil
}

// Controller exposes the poker controller driven by this bot.
func (b *Bot) Controller() *poker.Controller { return b.poker }

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	b.log.Info("Discord bot is running")
	return nil
}

// Stop closes the gateway and abandons any directory warm-up in flight.
func (b *Bot) Stop() error {
	b.cancel()
	return b.session.Close()
}

// Warm preloads the directory once guilds are known.
func (b *Bot) Warm() {
	b.poker.Warm(b.ctx)
}
