package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/pokerbot/internal/commands"
)

func (b *Bot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	b.log.Infof("%s is connected!", event.User.Username)

	// Register commands for all guilds
	for _, guild := range event.Guilds {
		if err := b.registerGuildCommands(guild.ID); err != nil {
			b.log.WithError(err).Errorf("Failed to register commands for guild %s", guild.ID)
		}
	}
	b.Warm()
}

func (b *Bot) onGuildCreate(s *discordgo.Session, event *discordgo.GuildCreate) {
	b.log.Infof("Guild available/joined: %s (id=%s), ensuring commands", event.Name, event.ID)
	if err := b.registerGuildCommands(event.ID); err != nil {
		b.log.WithError(err).Errorf("Failed to register commands for guild %s", event.ID)
	}
}

func (b *Bot) registerGuildCommands(guildID string) error {
	cmds := commands.GetCommands()
	// Delete existing commands and register new ones
	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, guildID, cmds)
	if err != nil {
		return err
	}

	b.log.Infof("Registered application commands for guild %s", guildID)
	return nil
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == commands.PokerCommand {
			commands.HandlePoker(s, i, b.poker, b.log)
		}
	case discordgo.InteractionMessageComponent:
		if commands.IsVote(i.MessageComponentData().CustomID) {
			commands.HandleVote(s, i, b.poker, b.log)
		}
	}
}
