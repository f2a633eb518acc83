package poker

import (
	"fmt"
	"strconv"
)

const (
	InChannel = "in_channel"
	Ephemeral = "ephemeral"
)

// Response is the synchronous reply to a command or vote callback.
type Response struct {
	ResponseType    string       `json:"response_type"`
	Text            string       `json:"text"`
	ReplaceOriginal bool         `json:"replace_original"`
	Attachments     []Attachment `json:"attachments,omitempty"`
}

func (r Response) Private() bool { return r.ResponseType == Ephemeral }

type Attachment struct {
	Text           string   `json:"text"`
	Color          string   `json:"color"`
	AttachmentType string   `json:"attachment_type"`
	CallbackID     string   `json:"callback_id"`
	Actions        []Action `json:"actions"`
}

type Action struct {
	Name    string   `json:"name"`
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Value   string   `json:"value"`
	Confirm *Confirm `json:"confirm,omitempty"`
}

type Confirm struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	OkText      string `json:"ok_text"`
	DismissText string `json:"dismiss_text"`
}

// Estimates is the ordered card deck offered on every prompt.
var Estimates = []string{"0", "1", "2", "3", "5", "8", "13", "21", "34", "?"}

const (
	firstGroupSize = 5
	CallbackID     = "planning-poker"
)

func voteAttachments() []Attachment {
	groups := []Attachment{newVoteGroup(), newVoteGroup()}
	for i, value := range Estimates {
		g := 1
		if i < firstGroupSize {
			g = 0
		}
		groups[g].Actions = append(groups[g].Actions, voteAction(value))
	}
	return groups
}

func newVoteGroup() Attachment {
	return Attachment{
		Color:          "#3AA3E3",
		AttachmentType: "default",
		CallbackID:     CallbackID,
		Actions:        []Action{},
	}
}

func voteAction(value string) Action {
	confirm := &Confirm{
		Title:       "Are you sure ?",
		Text:        fmt.Sprintf("Are you sure you want to vote %s ?", value),
		OkText:      "Yes",
		DismissText: "No",
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		confirm.Text = "Are you sure you want to abstain from voting?"
	}
	return Action{Name: value, Text: value, Type: "button", Value: value, Confirm: confirm}
}

func private(text string) Response {
	return Response{ResponseType: Ephemeral, Text: text}
}

func public(text string) Response {
	return Response{ResponseType: InChannel, Text: text}
}
