package bot

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/susu3304/pokerbot/internal/poker"
)

const memberPageSize = 1000

// discordAPI is the slice of *discordgo.Session the platform needs.
type discordAPI interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// platform adapts a Discord session to poker.Platform. A channel's roster
// is the human membership of the guild that owns it.
type platform struct {
	api    discordAPI
	guilds func() []string
}

func newPlatform(s *discordgo.Session) *platform {
	return &platform{
		api: s,
		guilds: func() []string {
			s.State.RLock()
			defer s.State.RUnlock()
			ids := make([]string, 0, len(s.State.Guilds))
			for _, g := range s.State.Guilds {
				ids = append(ids, g.ID)
			}
			return ids
		},
	}
}

var _ poker.Platform = (*platform)(nil)

func (p *platform) ChannelInfo(ctx context.Context, channelID string) (poker.ChannelInfo, error) {
	ch, err := p.api.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return poker.ChannelInfo{}, err
	}
	if ch.GuildID == "" {
		return poker.ChannelInfo{}, errors.New("channel is not part of a guild")
	}
	members, err := p.members(ctx, ch.GuildID)
	if err != nil {
		return poker.ChannelInfo{}, err
	}
	info := poker.ChannelInfo{ID: ch.ID, Name: ch.Name}
	for _, m := range members {
		info.Members = append(info.Members, m.ID)
	}
	return info, nil
}

func (p *platform) User(ctx context.Context, userID string) (poker.User, error) {
	u, err := p.api.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		return poker.User{}, err
	}
	return poker.User{ID: u.ID, Name: u.Username}, nil
}

func (p *platform) Users(ctx context.Context) ([]poker.User, error) {
	var users []poker.User
	for _, guildID := range p.guilds() {
		members, err := p.members(ctx, guildID)
		if err != nil {
			return nil, err
		}
		users = append(users, members...)
	}
	return users, nil
}

func (p *platform) members(ctx context.Context, guildID string) ([]poker.User, error) {
	var out []poker.User
	after := ""
	for {
		page, err := p.api.GuildMembers(guildID, after, memberPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		for _, m := range page {
			if m.User == nil {
				continue
			}
			after = m.User.ID
			if m.User.Bot {
				continue
			}
			out = append(out, poker.User{ID: m.User.ID, Name: memberName(m)})
		}
		if len(page) < memberPageSize {
			return out, nil
		}
	}
}

func memberName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	return m.User.Username
}

// PostMessage makes up to two attempts, retrying only on timeouts.
func (p *platform) PostMessage(ctx context.Context, channelID, text string) error {
	const attemptTimeout = 12 * time.Second
	const maxAttempts = 2

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		sendCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		_, err := p.api.ChannelMessageSend(channelID, text, discordgo.WithContext(sendCtx))
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isTemporaryOrTimeout(err) {
			return err
		}
		time.Sleep(time.Duration(300+rand.Intn(500)) * time.Millisecond)
	}
	return lastErr
}

func isTemporaryOrTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}
