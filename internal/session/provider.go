// Package session holds the authenticated-user snapshot consumed by the
// dashboards. Token decoding and issuance happen upstream; whatever the auth
// layer persisted is read back here and cached in memory, with an explicit
// RefreshFromStorage instead of hidden global state.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RoleAdmin marks a session allowed into the admin dashboard.
const RoleAdmin = "ADMIN"

// Snapshot is the decoded session the auth layer stored.
type Snapshot struct {
	UserID    int64     `json:"user_id"`
	Subject   string    `json:"subject"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the snapshot's credential has lapsed. A zero
// expiry never expires.
func (s *Snapshot) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Label derives the display name from the subject: the part of an email
// address before the @, or the whole subject when it is not an email.
func (s *Snapshot) Label() string {
	if s.Subject == "" {
		return ""
	}
	return strings.SplitN(s.Subject, "@", 2)[0]
}

// Store persists a snapshot across sessions.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Clear(ctx context.Context) error
}

// Provider caches the snapshot in memory and satisfies domain.SessionProvider.
type Provider struct {
	store  Store
	logger *zerolog.Logger
	now    func() time.Time

	mu   sync.RWMutex
	snap *Snapshot
}

// NewProvider builds a provider over a store. Call RefreshFromStorage to
// pick up a previously persisted session.
func NewProvider(store Store, logger *zerolog.Logger) *Provider {
	return &Provider{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// RefreshFromStorage replaces the cached snapshot with whatever the store
// holds. An expired persisted session is discarded.
func (p *Provider) RefreshFromStorage(ctx context.Context) error {
	snap, err := p.store.Load(ctx)
	if err != nil {
		return err
	}
	if snap != nil && snap.Expired(p.now()) {
		p.logger.Debug().Msg("persisted session expired, discarding")
		snap = nil
		_ = p.store.Clear(ctx)
	}

	p.mu.Lock()
	p.snap = snap
	p.mu.Unlock()
	return nil
}

// Establish stores a fresh snapshot after login.
func (p *Provider) Establish(ctx context.Context, snap Snapshot) error {
	if err := p.store.Save(ctx, &snap); err != nil {
		return err
	}
	p.mu.Lock()
	p.snap = &snap
	p.mu.Unlock()
	return nil
}

func (p *Provider) current() *Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.snap == nil || p.snap.Expired(p.now()) {
		return nil
	}
	return p.snap
}

// IsAuthenticated reports whether a live session is cached.
func (p *Provider) IsAuthenticated() bool {
	return p.current() != nil
}

// IsAdmin reports whether the live session carries the admin role.
func (p *Provider) IsAdmin() bool {
	snap := p.current()
	return snap != nil && snap.Role == RoleAdmin
}

// CurrentUserID returns the authenticated user's id.
func (p *Provider) CurrentUserID() (int64, bool) {
	snap := p.current()
	if snap == nil {
		return 0, false
	}
	return snap.UserID, true
}

// CurrentUserLabel returns the display name for the session, empty when
// nobody is signed in.
func (p *Provider) CurrentUserLabel() string {
	snap := p.current()
	if snap == nil {
		return ""
	}
	return snap.Label()
}

// Logout drops the cached session and clears the store. Clearing the store
// is best effort; the in-memory session is gone either way.
func (p *Provider) Logout() {
	p.mu.Lock()
	p.snap = nil
	p.mu.Unlock()

	if err := p.store.Clear(context.Background()); err != nil {
		p.logger.Error().Err(err).Msg("clear session store failed")
	}
}
