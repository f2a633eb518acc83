package poker

import "context"

// ChannelInfo is a channel as reported by the chat platform.
type ChannelInfo struct {
	ID      string
	Name    string
	Members []string
}

// Platform is the chat platform client the controller calls out to.
// Implementations hold their own credentials.
type Platform interface {
	ChannelInfo(ctx context.Context, channelID string) (ChannelInfo, error)
	User(ctx context.Context, userID string) (User, error)
	Users(ctx context.Context) ([]User, error)
	PostMessage(ctx context.Context, channelID, text string) error
}
