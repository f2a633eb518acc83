package commands

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/susu3304/pokerbot/internal/poker"
)

// HandlePoker runs /poker start|stop|status <ticket>.
func HandlePoker(s *discordgo.Session, i *discordgo.InteractionCreate, ctrl *poker.Controller, log logrus.FieldLogger) {
	respond(s, i, pokerCommand(context.Background(), i, ctrl), log)
}

// HandleVote records a vote button press.
func HandleVote(s *discordgo.Session, i *discordgo.InteractionCreate, ctrl *poker.Controller, log logrus.FieldLogger) {
	respond(s, i, vote(context.Background(), i, ctrl), log)
}

func pokerCommand(ctx context.Context, i *discordgo.InteractionCreate, ctrl *poker.Controller) poker.Response {
	data := i.ApplicationCommandData()
	text := ""
	if len(data.Options) > 0 {
		sub := data.Options[0]
		text = sub.Name
		if ticket := getStringOption(sub.Options, "ticket"); ticket != nil {
			text += " " + *ticket
		}
	}
	return ctrl.Handle(ctx, poker.Command{Text: text, ChannelID: i.ChannelID})
}

func vote(ctx context.Context, i *discordgo.InteractionCreate, ctrl *poker.Controller) poker.Response {
	action := poker.VoteAction{
		Value:     strings.TrimPrefix(i.MessageComponentData().CustomID, votePrefix),
		ChannelID: i.ChannelID,
	}
	if u := interactionUser(i); u != nil {
		action.UserID = u.ID
		action.UserName = u.Username
	}
	if i.Message != nil {
		action.OriginalText = i.Message.Content
	}
	return ctrl.Vote(ctx, action)
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, resp poker.Response, log logrus.FieldLogger) {
	if err := s.InteractionRespond(i.Interaction, toInteractionResponse(resp)); err != nil {
		log.WithError(err).Error("failed to respond to interaction")
	}
}
