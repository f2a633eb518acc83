package slack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	Channel string
	Text    string
}

type recorder struct {
	mu     sync.Mutex
	posted []message
}

func (r *recorder) messages() []message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]message(nil), r.posted...)
}

func newTestServer(t *testing.T) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	mux := http.NewServeMux()
	mux.HandleFunc("/conversations.info", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer xoxb-test", r.Header.Get("Authorization"))
		if r.FormValue("channel") != "C1" {
			w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
			return
		}
		w.Write([]byte(`{"ok":true,"channel":{"id":"C1","name":"general"}}`))
	})
	mux.HandleFunc("/conversations.members", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("cursor") == "" {
			w.Write([]byte(`{"ok":true,"members":["A","B"],"response_metadata":{"next_cursor":"page2"}}`))
			return
		}
		w.Write([]byte(`{"ok":true,"members":["C"],"response_metadata":{"next_cursor":""}}`))
	})
	mux.HandleFunc("/users.info", func(w http.ResponseWriter, r *http.Request) {
		id := r.FormValue("user")
		w.Write([]byte(`{"ok":true,"user":{"id":"` + id + `","name":"user-` + id + `"}}`))
	})
	mux.HandleFunc("/users.list", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"members":[{"id":"A","name":"alice"},{"id":"Z","name":"gone","deleted":true}],"response_metadata":{"next_cursor":""}}`))
	})
	mux.HandleFunc("/chat.postMessage", func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.posted = append(rec.posted, message{Channel: r.FormValue("channel"), Text: r.FormValue("text")})
		rec.mu.Unlock()
		w.Write([]byte(`{"ok":true,"channel":"C1","ts":"1700000000.000100"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestChannelInfoPaginatesMembers(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(context.Background(), srv.URL+"/", "xoxb-test")

	info, err := c.ChannelInfo(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, "C1", info.ID)
	assert.Equal(t, "general", info.Name)
	assert.Equal(t, []string{"A", "B", "C"}, info.Members)

	_, err = c.ChannelInfo(context.Background(), "C2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestUsers(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(context.Background(), srv.URL, "xoxb-test")

	u, err := c.User(context.Background(), "B")
	require.NoError(t, err)
	assert.Equal(t, "user-B", u.Name)

	all, err := c.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "alice", all[0].Name)
}

func TestPostMessage(t *testing.T) {
	srv, rec := newTestServer(t)
	c := New(context.Background(), srv.URL, "xoxb-test")

	require.NoError(t, c.PostMessage(context.Background(), "C1", "done"))
	assert.Equal(t, []message{{Channel: "C1", Text: "done"}}, rec.messages())
}

func TestHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := New(context.Background(), srv.URL, "xoxb-test")

	_, err := c.User(context.Background(), "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slack users.info")
	assert.Contains(t, err.Error(), "500")
}
