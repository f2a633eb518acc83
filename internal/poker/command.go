package poker

import (
	"regexp"
	"strings"
)

// Command is an inbound slash command, e.g. "start PROJ-1".
type Command struct {
	Text      string
	ChannelID string
}

const (
	OptionStart  = "start"
	OptionStop   = "stop"
	OptionStatus = "status"
)

// ParseCommand splits the command text into option and ticket.
func ParseCommand(text string) (option, ticket string, err error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", "", ErrBadCommandFormat
	}
	switch fields[0] {
	case OptionStart, OptionStop, OptionStatus:
		return fields[0], fields[1], nil
	}
	return "", "", ErrBadCommandFormat
}

// VoteAction is a button press on a voting prompt.
type VoteAction struct {
	Value        string
	UserID       string
	UserName     string
	ChannelID    string
	OriginalText string
}

var ticketPattern = regexp.MustCompile(`\w+-\d+$`)

// TicketFromPrompt extracts the trailing ticket id from a prompt. It
// returns "" when the text does not end in one.
func TicketFromPrompt(text string) string {
	return ticketPattern.FindString(text)
}
