package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/slack-go/slack"
	"github.com/susu3304/pokerbot/internal/poker"
)

type sessionView struct {
	Platform    string    `json:"platform"`
	Ticket      string    `json:"ticket"`
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name,omitempty"`
	Resolved    bool      `json:"resolved"`
	Members     int       `json:"members"`
	Votes       int       `json:"votes"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (a *API) handleSlackCommand(ctrl *poker.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "invalid form body", http.StatusBadRequest)
			return
		}
		resp := ctrl.Handle(r.Context(), poker.Command{
			Text:      cmd.Text,
			ChannelID: cmd.ChannelID,
		})
		writeJSON(w, resp)
	}
}

func (a *API) handleSlackAction(ctrl *poker.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form body", http.StatusBadRequest)
			return
		}
		var cb slack.InteractionCallback
		if err := json.Unmarshal([]byte(r.PostForm.Get("payload")), &cb); err != nil {
			a.log.WithError(err).Warn("undecodable action payload")
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		actions := cb.ActionCallback.AttachmentActions
		if len(actions) == 0 {
			http.Error(w, "missing action", http.StatusBadRequest)
			return
		}
		resp := ctrl.Vote(r.Context(), poker.VoteAction{
			Value:        actions[0].Value,
			UserID:       cb.User.ID,
			UserName:     cb.User.Name,
			ChannelID:    cb.Channel.ID,
			OriginalText: cb.OriginalMessage.Text,
		})
		writeJSON(w, resp)
	}
}

// Protected handlers
func (a *API) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if claims, ok := r.Context().Value(claimsKey{}).(*Claims); ok {
		a.log.WithField("operator", claims.Subject).Debug("listing sessions")
	}
	platforms := make([]string, 0, len(a.controllers))
	for name := range a.controllers {
		platforms = append(platforms, name)
	}
	sort.Strings(platforms)

	views := []sessionView{}
	for _, name := range platforms {
		for _, s := range a.controllers[name].Sessions() {
			views = append(views, sessionView{
				Platform:    name,
				Ticket:      s.Ticket,
				ChannelID:   s.Channel.ID,
				ChannelName: s.Channel.Name,
				Resolved:    s.Channel.Resolved,
				Members:     s.Channel.MemberCount,
				Votes:       len(s.Votes),
				CreatedAt:   s.CreatedAt,
			})
		}
	}
	writeJSON(w, views)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
