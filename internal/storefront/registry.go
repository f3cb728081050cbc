package storefront

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Registry hands out one Session per shopper id and forgets sessions that
// have been idle longer than idleTTL.
type Registry struct {
	deps    Deps
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewRegistry(deps Deps, idleTTL time.Duration) *Registry {
	return &Registry{
		deps:     deps,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

func (r *Registry) Get(shopperID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[shopperID]
	if !ok {
		e = &entry{session: NewSession(shopperID, r.deps)}
		r.sessions[shopperID] = e
	}
	e.lastSeen = r.now()
	return e.session
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops idle sessions and returns how many were removed. Sessions with
// a submission in flight are kept.
func (r *Registry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) && !e.session.submitter.Pending() {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
