package commands

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/pokerbot/internal/poker"
)

const votePrefix = "poker:vote:"

// IsVote reports whether a component custom id belongs to a vote button.
func IsVote(customID string) bool {
	return strings.HasPrefix(customID, votePrefix)
}

// toInteractionResponse renders a poker response for Discord. Each vote
// group becomes one row of buttons.
func toInteractionResponse(resp poker.Response) *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{
		Content: resp.Text,
	}
	if resp.Private() {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	for _, group := range resp.Attachments {
		row := discordgo.ActionsRow{}
		for _, action := range group.Actions {
			row.Components = append(row.Components, voteButton(action.Value))
		}
		data.Components = append(data.Components, row)
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

func voteButton(value string) discordgo.Button {
	style := discordgo.PrimaryButton
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		style = discordgo.SecondaryButton
	}
	return discordgo.Button{
		Label:    value,
		Style:    style,
		CustomID: votePrefix + value,
	}
}
