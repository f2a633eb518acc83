package commands

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/susu3304/pokerbot/internal/poker"
)

type stubPlatform struct{}

func (stubPlatform) ChannelInfo(ctx context.Context, channelID string) (poker.ChannelInfo, error) {
	return poker.ChannelInfo{ID: channelID, Name: "estimates", Members: []string{"U1", "U2"}}, nil
}

func (stubPlatform) User(ctx context.Context, userID string) (poker.User, error) {
	return poker.User{ID: userID, Name: userID}, nil
}

func (stubPlatform) Users(ctx context.Context) ([]poker.User, error) { return nil, nil }

func (stubPlatform) PostMessage(ctx context.Context, channelID, text string) error { return nil }

func newController() *poker.Controller {
	log, _ := test.NewNullLogger()
	return poker.NewController(poker.NewStore(), poker.NewDirectory(), stubPlatform{}, log)
}

func slashCommand(sub, ticket string) *discordgo.InteractionCreate {
	opt := &discordgo.ApplicationCommandInteractionDataOption{
		Name: sub,
		Type: discordgo.ApplicationCommandOptionSubCommand,
	}
	if ticket != "" {
		opt.Options = []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "ticket", Type: discordgo.ApplicationCommandOptionString, Value: ticket},
		}
	}
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "C1",
		Data: discordgo.ApplicationCommandInteractionData{
			Name:    PokerCommand,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{opt},
		},
	}}
}

func buttonPress(userID, customID, prompt string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionMessageComponent,
		ChannelID: "C1",
		Member:    &discordgo.Member{User: &discordgo.User{ID: userID, Username: "name-" + userID}},
		Message:   &discordgo.Message{Content: prompt},
		Data:      discordgo.MessageComponentInteractionData{CustomID: customID},
	}}
}

func TestPokerCommandFlow(t *testing.T) {
	ctrl := newController()
	ctx := context.Background()

	start := pokerCommand(ctx, slashCommand("start", "PROJ-1"), ctrl)
	ctrl.Wait()
	rendered := toInteractionResponse(start)
	assert.Equal(t, "Please give your poker vote for PROJ-1", rendered.Data.Content)
	assert.Zero(t, rendered.Data.Flags)
	require.Len(t, rendered.Data.Components, 2)

	row := rendered.Data.Components[0].(discordgo.ActionsRow)
	require.Len(t, row.Components, 5)
	first := row.Components[0].(discordgo.Button)
	assert.True(t, IsVote(first.CustomID))

	resp := vote(ctx, buttonPress("U1", first.CustomID, start.Text), ctrl)
	assert.Equal(t, "You have voted 0 for PROJ-1", resp.Text)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, toInteractionResponse(resp).Data.Flags)

	status := pokerCommand(ctx, slashCommand("status", "PROJ-1"), ctrl)
	assert.Contains(t, status.Text, "Still waiting on: U2")
}

func TestPokerCommandWithoutTicket(t *testing.T) {
	resp := pokerCommand(context.Background(), slashCommand("stop", ""), newController())
	assert.Equal(t, poker.Ephemeral, resp.ResponseType)
	assert.Contains(t, resp.Text, "correct format")
}

func TestAbstainButtonStyle(t *testing.T) {
	assert.Equal(t, discordgo.SecondaryButton, voteButton("?").Style)
	assert.Equal(t, discordgo.PrimaryButton, voteButton("8").Style)
	assert.Equal(t, "poker:vote:8", voteButton("8").CustomID)
	assert.False(t, IsVote("reg_resp:1"))
}
