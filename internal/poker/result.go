package poker

import (
	"fmt"
	"sort"
	"strings"
)

// RenderResult lists every vote of the session, one line per voter.
func RenderResult(s Session) string {
	votes := make([]Vote, 0, len(s.Votes))
	for _, v := range s.Votes {
		votes = append(votes, v)
	}
	sort.Slice(votes, func(i, j int) bool {
		if votes[i].UserName == votes[j].UserName {
			return votes[i].UserID < votes[j].UserID
		}
		return votes[i].UserName < votes[j].UserName
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Planning poker result for %s:", s.Ticket)
	if len(votes) == 0 {
		b.WriteString("\nNobody voted.")
	}
	for _, v := range votes {
		name := v.UserName
		if name == "" {
			name = v.UserID
		}
		fmt.Fprintf(&b, "\n%s voted: %s", name, v.Rating)
	}
	return b.String()
}

// UnvotedNames renders the roster members that have not voted yet, or ""
// when nobody is outstanding or the roster is not known.
func UnvotedNames(s Session, dir *Directory) string {
	if !s.Channel.Resolved {
		return ""
	}
	var names []string
	for _, id := range s.Channel.Members {
		if _, ok := s.Votes[id]; ok {
			continue
		}
		names = append(names, dir.DisplayName(id))
	}
	if len(names) == 0 {
		return ""
	}
	return "\nStill waiting on: " + strings.Join(names, ", ")
}
