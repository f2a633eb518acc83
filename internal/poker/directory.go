package poker

import "sync"

// User is a workspace member as reported by the chat platform.
type User struct {
	ID   string
	Name string
}

// Directory caches display names for user ids for the lifetime of the process.
type Directory struct {
	mu    sync.RWMutex
	names map[string]string
}

func NewDirectory() *Directory {
	return &Directory{names: make(map[string]string)}
}

func (d *Directory) Name(userID string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.names[userID]
	return name, ok
}

// DisplayName falls back to the id for unknown users.
func (d *Directory) DisplayName(userID string) string {
	if name, ok := d.Name(userID); ok && name != "" {
		return name
	}
	return userID
}

// Missing returns the ids not yet cached, deduplicated, in input order.
func (d *Directory) Missing(userIDs []string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	seen := make(map[string]struct{}, len(userIDs))
	var out []string
	for _, id := range userIDs {
		if id == "" {
			continue
		}
		if _, ok := d.names[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (d *Directory) Merge(users []User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range users {
		if u.ID == "" {
			continue
		}
		d.names[u.ID] = u.Name
	}
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.names)
}
