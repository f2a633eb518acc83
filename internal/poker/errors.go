package poker

import (
	"errors"
	"fmt"
)

var (
	ErrBadCommandFormat = errors.New("bad command format")
	ErrNoSuchSession    = errors.New("no such session")
	ErrDuplicateSession = errors.New("session already in progress")
	ErrUnauthorized     = errors.New("session belongs to another channel")
)

// UnauthorizedError names the channel that owns the session.
type UnauthorizedError struct {
	Ticket      string
	ChannelID   string
	ChannelName string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s is owned by channel %s", ErrUnauthorized, e.Ticket, e.ChannelName)
}

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }
