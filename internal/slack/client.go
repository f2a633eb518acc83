// Package slack adapts the Slack Web API to the poker controller's Platform.
package slack

import (
	"context"
	"fmt"
	"strings"

	slackapi "github.com/slack-go/slack"
	"github.com/susu3304/pokerbot/internal/poker"
	"golang.org/x/oauth2"
)

const memberPageSize = 200

type Client struct {
	api *slackapi.Client
}

// New returns a client that authenticates every call with token.
func New(ctx context.Context, baseURL, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return &Client{
		api: slackapi.New(token,
			slackapi.OptionAPIURL(strings.TrimRight(baseURL, "/")+"/"),
			slackapi.OptionHTTPClient(oauth2.NewClient(ctx, src)),
		),
	}
}

var _ poker.Platform = (*Client)(nil)

func (c *Client) ChannelInfo(ctx context.Context, channelID string) (poker.ChannelInfo, error) {
	ch, err := c.api.GetConversationInfoContext(ctx, &slackapi.GetConversationInfoInput{ChannelID: channelID})
	if err != nil {
		return poker.ChannelInfo{}, fmt.Errorf("slack conversations.info: %w", err)
	}

	var members []string
	params := &slackapi.GetUsersInConversationParameters{ChannelID: channelID, Limit: memberPageSize}
	for {
		page, cursor, err := c.api.GetUsersInConversationContext(ctx, params)
		if err != nil {
			return poker.ChannelInfo{}, fmt.Errorf("slack conversations.members: %w", err)
		}
		members = append(members, page...)
		if cursor == "" {
			break
		}
		params.Cursor = cursor
	}

	return poker.ChannelInfo{ID: ch.ID, Name: ch.Name, Members: members}, nil
}

func (c *Client) User(ctx context.Context, userID string) (poker.User, error) {
	u, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return poker.User{}, fmt.Errorf("slack users.info: %w", err)
	}
	return poker.User{ID: u.ID, Name: u.Name}, nil
}

// Users lists every active member of the workspace.
func (c *Client) Users(ctx context.Context) ([]poker.User, error) {
	all, err := c.api.GetUsersContext(ctx, slackapi.GetUsersOptionLimit(memberPageSize))
	if err != nil {
		return nil, fmt.Errorf("slack users.list: %w", err)
	}
	users := make([]poker.User, 0, len(all))
	for _, u := range all {
		if u.Deleted {
			continue
		}
		users = append(users, poker.User{ID: u.ID, Name: u.Name})
	}
	return users, nil
}

func (c *Client) PostMessage(ctx context.Context, channelID, text string) error {
	if _, _, err := c.api.PostMessageContext(ctx, channelID, slackapi.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("slack chat.postMessage: %w", err)
	}
	return nil
}
