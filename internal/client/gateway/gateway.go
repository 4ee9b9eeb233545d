// Package gateway wraps the remote service client with a one-way circuit
// breaker over the local cache. Once any remote call fails, the session is
// permanently downgraded to the cache; a fresh session re-probes the
// remote. The fallback path replays the same logical mutation against the
// cached collection, so no operation is lost across the downgrade.
package gateway

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/pecc/timetracking/internal/client/localcache"
	"github.com/pecc/timetracking/internal/core/domain"
	"github.com/pecc/timetracking/internal/core/ports"
)

// Gateway implements ports.DataStore with remote-first, cache-fallback
// semantics. Construct one per session; the breaker flag is instance
// state, not a global.
type Gateway struct {
	remote ports.DataStore
	cache  *localcache.Store
	log    zerolog.Logger

	mu              sync.Mutex
	remoteAvailable bool
	listeners       []func(remoteAvailable bool)

	// idSeq synthesizes ids for creates once the remote no longer assigns
	// them. Seeded from the wall clock so fallback ids sit above any
	// server-assigned id from earlier in the session, then strictly
	// incremented so rapid calls can never collide.
	idSeq atomic.Int64
}

// New returns a Gateway starting in the remote-available state.
func New(remote ports.DataStore, cache *localcache.Store, log zerolog.Logger) *Gateway {
	g := &Gateway{
		remote:          remote,
		cache:           cache,
		log:             log,
		remoteAvailable: true,
	}
	g.idSeq.Store(time.Now().UnixMilli())
	return g
}

// RemoteAvailable exposes the breaker state for passive display. Callers
// must not branch on it; only the gateway itself picks the path.
func (g *Gateway) RemoteAvailable() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remoteAvailable
}

// OnStateChange registers fn to be called on every breaker transition.
// The flag is monotonic, so fn fires at most once per session, with false.
func (g *Gateway) OnStateChange(fn func(remoteAvailable bool)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

func (g *Gateway) online() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.remoteAvailable
}

// downgrade trips the breaker. Safe to call repeatedly; listeners are
// notified only on the actual transition.
func (g *Gateway) downgrade(op string, err error) {
	g.mu.Lock()
	if !g.remoteAvailable {
		g.mu.Unlock()
		return
	}
	g.remoteAvailable = false
	listeners := make([]func(bool), len(g.listeners))
	copy(listeners, g.listeners)
	g.mu.Unlock()

	g.log.Warn().Err(err).Str("operation", op).Msg("remote unavailable, downgrading to local cache for the rest of the session")
	for _, fn := range listeners {
		fn(false)
	}
}

func (g *Gateway) nextID() int64 {
	return g.idSeq.Add(1)
}

// Login tries the remote, then falls back to a credential scan of the
// cached users. A wrong password therefore resolves to
// domain.ErrInvalidCredentials on either path.
func (g *Gateway) Login(ctx context.Context, name, password string) (*domain.User, error) {
	if g.online() {
		u, err := g.remote.Login(ctx, name, password)
		if err == nil {
			return u, nil
		}
		g.downgrade("login", err)
	}

	users, err := g.cache.Users()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Name == name && u.Password == password {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (g *Gateway) ListUsers(ctx context.Context) ([]domain.User, error) {
	if g.online() {
		users, err := g.remote.ListUsers(ctx)
		if err == nil {
			return users, nil
		}
		g.downgrade("list users", err)
	}
	return g.cache.Users()
}

func (g *Gateway) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	if g.online() {
		created, err := g.remote.CreateUser(ctx, u)
		if err == nil {
			return created, nil
		}
		g.downgrade("create user", err)
	}

	u.ID = g.nextID()
	u.ForcePasswordChange = true
	users, err := g.cache.Users()
	if err != nil {
		return nil, err
	}
	if err := g.cache.SetUsers(append(users, u)); err != nil {
		return nil, err
	}
	return &u, nil
}

func (g *Gateway) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	if g.online() {
		updated, err := g.remote.UpdateUser(ctx, u)
		if err == nil {
			return updated, nil
		}
		g.downgrade("update user", err)
	}

	users, err := g.cache.Users()
	if err != nil {
		return nil, err
	}
	// Replace-by-id; a missing id is a silent no-op and the input record
	// is returned as-is.
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
			if err := g.cache.SetUsers(users); err != nil {
				return nil, err
			}
			break
		}
	}
	return &u, nil
}

func (g *Gateway) DeleteUser(ctx context.Context, id int64) error {
	if g.online() {
		err := g.remote.DeleteUser(ctx, id)
		if err == nil {
			return nil
		}
		g.downgrade("delete user", err)
	}

	users, err := g.cache.Users()
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	return g.cache.SetUsers(kept)
}

func (g *Gateway) ListTimeEntries(ctx context.Context) ([]domain.TimeEntry, error) {
	if g.online() {
		entries, err := g.remote.ListTimeEntries(ctx)
		if err == nil {
			return entries, nil
		}
		g.downgrade("list time entries", err)
	}
	return g.cache.TimeEntries()
}

func (g *Gateway) CreateTimeEntry(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error) {
	if g.online() {
		created, err := g.remote.CreateTimeEntry(ctx, e)
		if err == nil {
			return created, nil
		}
		g.downgrade("create time entry", err)
	}

	e.ID = g.nextID()
	entries, err := g.cache.TimeEntries()
	if err != nil {
		return nil, err
	}
	if err := g.cache.SetTimeEntries(append(entries, e)); err != nil {
		return nil, err
	}
	return &e, nil
}

func (g *Gateway) UpdateTimeEntry(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error) {
	if g.online() {
		updated, err := g.remote.UpdateTimeEntry(ctx, e)
		if err == nil {
			return updated, nil
		}
		g.downgrade("update time entry", err)
	}

	entries, err := g.cache.TimeEntries()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == e.ID {
			entries[i] = e
			if err := g.cache.SetTimeEntries(entries); err != nil {
				return nil, err
			}
			break
		}
	}
	return &e, nil
}

func (g *Gateway) ListSubmissions(ctx context.Context) ([]domain.ContractorSubmission, error) {
	if g.online() {
		subs, err := g.remote.ListSubmissions(ctx)
		if err == nil {
			return subs, nil
		}
		g.downgrade("list submissions", err)
	}
	return g.cache.Submissions()
}

func (g *Gateway) CreateSubmission(ctx context.Context, s domain.ContractorSubmission) (*domain.ContractorSubmission, error) {
	if g.online() {
		created, err := g.remote.CreateSubmission(ctx, s)
		if err == nil {
			return created, nil
		}
		g.downgrade("create submission", err)
	}

	s.ID = g.nextID()
	if s.SubmissionDate.IsZero() {
		s.SubmissionDate = time.Now().UTC()
	}
	subs, err := g.cache.Submissions()
	if err != nil {
		return nil, err
	}
	if err := g.cache.SetSubmissions(append(subs, s)); err != nil {
		return nil, err
	}
	return &s, nil
}
