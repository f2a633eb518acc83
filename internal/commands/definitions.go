package commands

import "github.com/bwmarrin/discordgo"

const PokerCommand = "poker"

func GetCommands() []*discordgo.ApplicationCommand {
	ticket := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "ticket",
			Description: "Ticket id, e.g. PROJ-123",
			Required:    true,
		},
	}
	return []*discordgo.ApplicationCommand{
		{
			Name:         PokerCommand,
			Description:  "Planning poker for a ticket",
			DMPermission: boolPtr(false),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start estimating a ticket in this channel",
					Options:     ticket,
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stop",
					Description: "Close voting and show the result",
					Options:     ticket,
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show who has not voted yet",
					Options:     ticket,
				},
			},
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}
