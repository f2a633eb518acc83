package poker

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rating is a single estimate. Abstentions aggregate as zero.
type Rating struct {
	Value   float64
	Abstain bool
}

// ParseRating treats anything that is not a number as an abstention.
func ParseRating(raw string) Rating {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Rating{Abstain: true}
	}
	return Rating{Value: v}
}

func (r Rating) String() string {
	if r.Abstain {
		return "0"
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

type Vote struct {
	UserID   string
	UserName string
	Rating   Rating
}

// Channel is the roster snapshot taken when a session starts.
type Channel struct {
	ID          string
	Name        string
	MemberCount int
	Members     []string
	Resolved    bool
}

type Session struct {
	ID        uuid.UUID
	Ticket    string
	CreatedAt time.Time
	Channel   Channel
	Votes     map[string]Vote
}

func (s *Session) clone() Session {
	out := *s
	out.Channel.Members = append([]string(nil), s.Channel.Members...)
	out.Votes = make(map[string]Vote, len(s.Votes))
	for k, v := range s.Votes {
		out.Votes[k] = v
	}
	return out
}

// complete reports whether every roster member has voted.
func (s *Session) complete() bool {
	return s.Channel.Resolved && s.Channel.MemberCount > 0 && len(s.Votes) >= s.Channel.MemberCount
}
