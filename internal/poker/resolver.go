package poker

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Resolver reconciles channel rosters against the Directory.
type Resolver struct {
	platform Platform
	dir      *Directory
	log      logrus.FieldLogger
}

func NewResolver(platform Platform, dir *Directory, log logrus.FieldLogger) *Resolver {
	return &Resolver{platform: platform, dir: dir, log: log}
}

func (r *Resolver) ResolveChannel(ctx context.Context, channelID string) (Channel, error) {
	info, err := r.platform.ChannelInfo(ctx, channelID)
	if err != nil {
		return Channel{}, fmt.Errorf("resolve channel %s: %w", channelID, err)
	}
	return Channel{
		ID:          info.ID,
		Name:        info.Name,
		MemberCount: len(info.Members),
		Members:     info.Members,
		Resolved:    true,
	}, nil
}

// BackfillMissing looks up the members the Directory does not know yet.
func (r *Resolver) BackfillMissing(ctx context.Context, members []string) error {
	missing := r.dir.Missing(members)
	if len(missing) == 0 {
		return nil
	}
	r.log.WithField("count", len(missing)).Info("fetching unknown channel members")
	return r.Backfill(ctx, missing)
}

// Backfill fetches every user concurrently and merges them only if all
// lookups succeed.
func (r *Resolver) Backfill(ctx context.Context, userIDs []string) error {
	users := make([]User, len(userIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range userIDs {
		i, id := i, id
		g.Go(func() error {
			u, err := r.platform.User(gctx, id)
			if err != nil {
				return fmt.Errorf("lookup user %s: %w", id, err)
			}
			users[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	r.dir.Merge(users)
	return nil
}

// Warm loads every workspace user into the Directory.
func (r *Resolver) Warm(ctx context.Context) error {
	users, err := r.platform.Users(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	r.dir.Merge(users)
	r.log.WithField("count", len(users)).Info("directory warmed")
	return nil
}
