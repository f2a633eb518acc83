package poker

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store owns every live session, keyed by ticket. All compound
// check-then-act operations run under a single lock.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers an unresolved session for ticket started from channelID.
func (st *Store) Create(ticket, channelID string, now time.Time) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[ticket]; ok {
		return Session{}, ErrDuplicateSession
	}
	sess := &Session{
		ID:        uuid.New(),
		Ticket:    ticket,
		CreatedAt: now,
		Channel:   Channel{ID: channelID},
		Votes:     make(map[string]Vote),
	}
	st.sessions[ticket] = sess
	return sess.clone(), nil
}

func (st *Store) Get(ticket string) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[ticket]
	if !ok {
		return Session{}, ErrNoSuchSession
	}
	return sess.clone(), nil
}

// Resolve fills in the roster of the session incarnation id. Applied is
// false when that incarnation is gone, e.g. stopped while resolving. Votes
// cast during resolution count towards closure, so Closed may be set here.
func (st *Store) Resolve(ticket string, id uuid.UUID, ch Channel) CastResult {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[ticket]
	if !ok || sess.ID != id {
		return CastResult{}
	}
	if ch.ID == "" {
		ch.ID = sess.Channel.ID
	}
	ch.Members = append([]string(nil), ch.Members...)
	ch.MemberCount = len(ch.Members)
	ch.Resolved = true
	sess.Channel = ch
	res := CastResult{Applied: true}
	if sess.complete() {
		delete(st.sessions, ticket)
		res.Closed = true
	}
	res.Session = sess.clone()
	return res
}

// Inspect returns the session if channelID owns it.
func (st *Store) Inspect(ticket, channelID string) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, err := st.owned(ticket, channelID)
	if err != nil {
		return Session{}, err
	}
	return sess.clone(), nil
}

// Remove deletes the session if channelID owns it and returns its final state.
func (st *Store) Remove(ticket, channelID string) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, err := st.owned(ticket, channelID)
	if err != nil {
		return Session{}, err
	}
	delete(st.sessions, ticket)
	return sess.clone(), nil
}

// CastResult describes the effect of a vote or roster resolution.
type CastResult struct {
	Applied bool
	Changed bool
	Closed  bool
	Session Session
}

// Cast records v, overwriting an earlier vote by the same user. When the
// roster is resolved and every member has voted the session is removed and
// the result reports Closed. An empty channelID skips the ownership check.
func (st *Store) Cast(ticket, channelID string, v Vote) (CastResult, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[ticket]
	if !ok {
		return CastResult{}, ErrNoSuchSession
	}
	if channelID != "" {
		if err := sess.authorize(channelID); err != nil {
			return CastResult{}, err
		}
	}
	_, changed := sess.Votes[v.UserID]
	sess.Votes[v.UserID] = v
	res := CastResult{Applied: true, Changed: changed}
	if sess.complete() {
		delete(st.sessions, ticket)
		res.Closed = true
	}
	res.Session = sess.clone()
	return res, nil
}

// List returns every live session, oldest first.
func (st *Store) List() []Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]Session, 0, len(st.sessions))
	for _, sess := range st.sessions {
		out = append(out, sess.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Ticket < out[j].Ticket
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *Store) owned(ticket, channelID string) (*Session, error) {
	sess, ok := st.sessions[ticket]
	if !ok {
		return nil, ErrNoSuchSession
	}
	if err := sess.authorize(channelID); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Session) authorize(channelID string) error {
	if s.Channel.ID == channelID {
		return nil
	}
	name := s.Channel.Name
	if name == "" {
		name = s.Channel.ID
	}
	return &UnauthorizedError{Ticket: s.Ticket, ChannelID: s.Channel.ID, ChannelName: name}
}
