// Package directory resolves user IDs to display names for the schedule
// view. Lookups go through an in-process cache so building a large tree does
// not hit the user table once per node.
package directory

import (
	"context"
	"sync"

	"github.com/dedatech/workplan/internal/repository"
)

// CachedDirectory is a read-through cache over the user store. Misses are
// cached as empty strings so a user that never registered is looked up at
// most once per process.
type CachedDirectory struct {
	users repository.UserRepo

	mu    sync.RWMutex
	names map[string]string
}

// NewCachedDirectory creates a directory backed by the given user store.
func NewCachedDirectory(users repository.UserRepo) *CachedDirectory {
	return &CachedDirectory{users: users, names: make(map[string]string)}
}

// DisplayName resolves a user ID to a display name. Unknown IDs and store
// errors both resolve to the empty string; display names are cosmetic and
// must never fail a schedule build.
func (d *CachedDirectory) DisplayName(ctx context.Context, userID string) string {
	if userID == "" {
		return ""
	}

	d.mu.RLock()
	name, ok := d.names[userID]
	d.mu.RUnlock()
	if ok {
		return name
	}

	user, err := d.users.GetByID(ctx, userID)
	if err == nil {
		name = user.DisplayName
	}

	d.mu.Lock()
	d.names[userID] = name
	d.mu.Unlock()
	return name
}

// Invalidate drops a cached entry so the next lookup re-reads the store.
// Called after a user upsert changes a display name.
func (d *CachedDirectory) Invalidate(userID string) {
	d.mu.Lock()
	delete(d.names, userID)
	d.mu.Unlock()
}
