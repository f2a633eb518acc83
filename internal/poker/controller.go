package poker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const badFormatText = "Please enter the command in correct format e.g. /planning-poker start or stop or status JIRA-1001"

// Controller drives session lifecycles for one chat platform.
type Controller struct {
	store    *Store
	dir      *Directory
	resolver *Resolver
	platform Platform
	log      logrus.FieldLogger
	now      func() time.Time

	wg sync.WaitGroup
}

func NewController(store *Store, dir *Directory, platform Platform, log logrus.FieldLogger) *Controller {
	return &Controller{
		store:    store,
		dir:      dir,
		resolver: NewResolver(platform, dir, log),
		platform: platform,
		log:      log,
		now:      time.Now,
	}
}

// Sessions returns a snapshot of every live session.
func (c *Controller) Sessions() []Session { return c.store.List() }

// Wait blocks until background roster resolution and warm-up have finished.
func (c *Controller) Wait() { c.wg.Wait() }

// Warm loads the workspace directory in the background. Cancelling ctx
// abandons the load; Wait covers it.
func (c *Controller) Warm(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.resolver.Warm(ctx); err != nil {
			c.log.WithError(err).Warn("failed to warm directory")
		}
	}()
}

// Handle parses and dispatches a slash command.
func (c *Controller) Handle(ctx context.Context, cmd Command) Response {
	option, ticket, err := ParseCommand(cmd.Text)
	if err != nil {
		c.log.WithField("text", cmd.Text).Info("rejected malformed command")
		return c.errorResponse(err, "")
	}
	switch option {
	case OptionStart:
		return c.Start(ctx, ticket, cmd.ChannelID)
	case OptionStop:
		return c.Stop(ctx, ticket, cmd.ChannelID)
	default:
		return c.Status(ctx, ticket, cmd.ChannelID)
	}
}

// Start registers a session and resolves its roster in the background.
func (c *Controller) Start(ctx context.Context, ticket, channelID string) Response {
	sess, err := c.store.Create(ticket, channelID, c.now())
	if err != nil {
		return c.errorResponse(err, ticket)
	}
	c.log.WithFields(logrus.Fields{"ticket": ticket, "channel": channelID}).Info("session started")

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.resolveRoster(context.WithoutCancel(ctx), sess)
	}()

	return Response{
		ResponseType: InChannel,
		Text:         "Please give your poker vote for " + ticket,
		Attachments:  voteAttachments(),
	}
}

func (c *Controller) resolveRoster(ctx context.Context, sess Session) {
	log := c.log.WithFields(logrus.Fields{"ticket": sess.Ticket, "channel": sess.Channel.ID})
	ch, err := c.resolver.ResolveChannel(ctx, sess.Channel.ID)
	if err != nil {
		log.WithError(err).Error("roster resolution failed")
		return
	}
	res := c.store.Resolve(sess.Ticket, sess.ID, ch)
	if !res.Applied {
		log.Info("session closed before roster resolved")
		return
	}
	if res.Closed {
		c.broadcastClosure(ctx, res.Session)
	}
	if err := c.resolver.BackfillMissing(ctx, ch.Members); err != nil {
		log.WithError(err).Warn("directory backfill failed")
	}
}

// Stop closes the session and publishes its result in the channel.
func (c *Controller) Stop(ctx context.Context, ticket, channelID string) Response {
	sess, err := c.store.Remove(ticket, channelID)
	if err != nil {
		return c.errorResponse(err, ticket)
	}
	c.log.WithField("ticket", ticket).Info("session stopped")
	return public(RenderResult(sess) + UnvotedNames(sess, c.dir) + "\nThanks for voting.")
}

// Status reports who has not voted yet.
func (c *Controller) Status(ctx context.Context, ticket, channelID string) Response {
	sess, err := c.store.Inspect(ticket, channelID)
	if err != nil {
		return c.errorResponse(err, ticket)
	}
	if !sess.Channel.Resolved {
		return public("Members of this channel are still being looked up for " + ticket + ".")
	}
	unvoted := UnvotedNames(sess, c.dir)
	if unvoted == "" {
		return public("Everyone has voted for " + ticket + ".")
	}
	return public(strings.TrimPrefix(unvoted, "\n"))
}

// Vote records a button press. Votes for unknown tickets are answered
// with a private notice rather than an error.
func (c *Controller) Vote(ctx context.Context, a VoteAction) Response {
	ticket := TicketFromPrompt(a.OriginalText)
	rating := ParseRating(a.Value)
	log := c.log.WithFields(logrus.Fields{"ticket": ticket, "user": a.UserName})

	var unauth *UnauthorizedError
	res, err := c.store.Cast(ticket, a.ChannelID, Vote{UserID: a.UserID, UserName: a.UserName, Rating: rating})
	switch {
	case errors.Is(err, ErrNoSuchSession):
		log.Info("vote for closed session")
		label := ticket
		if label == "" {
			label = "this ticket"
		}
		resp := private(fmt.Sprintf("Voting for %s is closed.", label))
		resp.ReplaceOriginal = true
		return resp
	case errors.As(err, &unauth):
		log.WithField("channel", a.ChannelID).Info("vote from foreign channel")
		return private(fmt.Sprintf("This game was not started in this channel. Please go to channel %s to vote.", unauth.ChannelName))
	case err != nil:
		return c.errorResponse(err, ticket)
	}
	log.WithField("rating", rating.String()).Info("vote recorded")

	if res.Closed {
		c.broadcastClosure(ctx, res.Session)
		resp := private(fmt.Sprintf("Planning for %s is complete.", ticket))
		resp.ReplaceOriginal = true
		return resp
	}
	if res.Changed {
		return private(fmt.Sprintf("You have voted again %s for %s", rating, ticket))
	}
	return private(fmt.Sprintf("You have voted %s for %s", rating, ticket))
}

func (c *Controller) broadcastClosure(ctx context.Context, sess Session) {
	log := c.log.WithField("ticket", sess.Ticket)
	log.Info("all members have voted, closing session")
	text := RenderResult(sess) + "\nThanks for voting."
	if err := c.platform.PostMessage(context.WithoutCancel(ctx), sess.Channel.ID, text); err != nil {
		log.WithError(err).Error("failed to post result")
	}
}

func (c *Controller) errorResponse(err error, ticket string) Response {
	var unauth *UnauthorizedError
	switch {
	case errors.As(err, &unauth):
		return private(fmt.Sprintf("This game was not started in this channel. Please go to channel %s to stop or get status of the game.", unauth.ChannelName))
	case errors.Is(err, ErrDuplicateSession):
		return private(fmt.Sprintf("Planning for %s is already in progress", ticket))
	case errors.Is(err, ErrNoSuchSession):
		return private("Planning for this ticket is not started yet.")
	case errors.Is(err, ErrBadCommandFormat):
		return private(badFormatText)
	}
	c.log.WithError(err).Error("unexpected controller error")
	return private("Something went wrong, please try again.")
}
