package poker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type post struct {
	ChannelID string
	Text      string
}

type fakePlatform struct {
	mu       sync.Mutex
	channels map[string]ChannelInfo
	users    map[string]User
	userErrs map[string]error
	gate     chan struct{}
	posts    []post
	lookups  int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		channels: map[string]ChannelInfo{
			"C1": {ID: "C1", Name: "general", Members: []string{"A", "B", "C"}},
			"C2": {ID: "C2", Name: "random", Members: []string{"A", "D"}},
		},
		users: map[string]User{
			"A": {ID: "A", Name: "alice"},
			"B": {ID: "B", Name: "bob"},
			"C": {ID: "C", Name: "carol"},
			"D": {ID: "D", Name: "dave"},
		},
		userErrs: map[string]error{},
	}
}

func (f *fakePlatform) ChannelInfo(ctx context.Context, channelID string) (ChannelInfo, error) {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	info, ok := f.channels[channelID]
	if !ok {
		return ChannelInfo{}, errors.New("channel_not_found")
	}
	return info, nil
}

func (f *fakePlatform) User(ctx context.Context, userID string) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if err := f.userErrs[userID]; err != nil {
		return User{}, err
	}
	u, ok := f.users[userID]
	if !ok {
		return User{}, errors.New("user_not_found")
	}
	return u, nil
}

func (f *fakePlatform) Users(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakePlatform) PostMessage(ctx context.Context, channelID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, post{ChannelID: channelID, Text: text})
	return nil
}

func (f *fakePlatform) Posts() []post {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]post(nil), f.posts...)
}

func (f *fakePlatform) Hold() {
	f.mu.Lock()
	f.gate = make(chan struct{})
	f.mu.Unlock()
}

func (f *fakePlatform) Release() {
	f.mu.Lock()
	close(f.gate)
	f.gate = nil
	f.mu.Unlock()
}

type fixture struct {
	ctrl     *Controller
	store    *Store
	dir      *Directory
	platform *fakePlatform
	hook     *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	f := &fixture{
		store:    NewStore(),
		dir:      NewDirectory(),
		platform: newFakePlatform(),
		hook:     hook,
	}
	f.ctrl = NewController(f.store, f.dir, f.platform, log)
	return f
}

func (f *fixture) vote(ticket, userID, value string) Response {
	return f.ctrl.Vote(context.Background(), VoteAction{
		Value:        value,
		UserID:       userID,
		UserName:     f.platform.users[userID].Name,
		ChannelID:    "C1",
		OriginalText: "Please give your poker vote for " + ticket,
	})
}
