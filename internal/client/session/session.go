// Package session holds the authoritative in-memory copies of the three
// collections and the authenticated identity for one client session. Every
// mutating intent routes through the resilient gateway and applies the
// canonical record the gateway returns — never optimistically — and each
// applied change replaces the affected collection wholesale.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pecc/timetracking/internal/core/domain"
	"github.com/pecc/timetracking/internal/core/ports"
)

// DataGateway is what the session store needs from the resilient gateway:
// the full DataStore contract plus the breaker state and its transition
// event.
type DataGateway interface {
	ports.DataStore
	RemoteAvailable() bool
	OnStateChange(fn func(remoteAvailable bool))
}

// Snapshot is the read-only view handed to subscribers and callers. Slices
// are fresh copies; mutating them does not touch the store.
type Snapshot struct {
	CurrentUser     *domain.User
	Users           []domain.User
	TimeEntries     []domain.TimeEntry
	Submissions     []domain.ContractorSubmission
	RemoteAvailable bool
}

// Store is the session/state store.
type Store struct {
	gw        DataGateway
	geocoder  ports.Geocoder
	assistant ports.Assistant
	log       zerolog.Logger

	mu          sync.Mutex
	current     *domain.User
	users       []domain.User
	entries     []domain.TimeEntry
	submissions []domain.ContractorSubmission
	listeners   map[int]func(Snapshot)
	nextID      int
}

// New builds a Store over gw. geocoder and assistant may be nil; intents
// that need them degrade (placeholder location) or fail (Ask) accordingly.
func New(gw DataGateway, geocoder ports.Geocoder, assistant ports.Assistant, log zerolog.Logger) *Store {
	s := &Store{
		gw:        gw,
		geocoder:  geocoder,
		assistant: assistant,
		log:       log,
		listeners: make(map[int]func(Snapshot)),
	}
	gw.OnStateChange(func(bool) { s.publish() })
	return s
}

// Subscribe registers fn for every applied state change and returns its
// cancel function. fn is called outside the store lock.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Snapshot returns the current read-only view.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Users:           append([]domain.User(nil), s.users...),
		TimeEntries:     append([]domain.TimeEntry(nil), s.entries...),
		Submissions:     append([]domain.ContractorSubmission(nil), s.submissions...),
		RemoteAvailable: s.gw.RemoteAvailable(),
	}
	if s.current != nil {
		u := *s.current
		snap.CurrentUser = &u
	}
	return snap
}

// publish notifies all subscribers with a fresh snapshot.
func (s *Store) publish() {
	s.mu.Lock()
	snap := s.snapshotLocked()
	listeners := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// Login authenticates and, on success, loads all three collections through
// the gateway so the session starts from canonical data.
func (s *Store) Login(ctx context.Context, name, password string) (*domain.User, error) {
	u, err := s.gw.Login(ctx, name, password)
	if err != nil {
		return nil, err
	}

	users, err := s.gw.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.gw.ListTimeEntries(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.gw.ListSubmissions(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = u
	s.users = users
	s.entries = entries
	s.submissions = subs
	s.mu.Unlock()

	s.log.Info().Str("user", u.Name).Str("role", string(u.Role)).Bool("force_password_change", u.ForcePasswordChange).Msg("login")
	s.publish()
	return u, nil
}

// Logout clears the authenticated identity and the collections.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	s.users = nil
	s.entries = nil
	s.submissions = nil
	s.mu.Unlock()
	s.publish()
}

// guard rejects intents before login and, while a password change is
// pending, gates everything except the password change itself.
func (s *Store) guard() (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.User{}, domain.ErrNotAuthenticated
	}
	if s.current.ForcePasswordChange {
		return domain.User{}, domain.ErrPasswordChangeRequired
	}
	return *s.current, nil
}

// ChangePassword sets a new password for the authenticated user and clears
// the forced-change flag. It is the only mutating intent reachable while
// the flag is set.
func (s *Store) ChangePassword(ctx context.Context, newPassword string) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return domain.ErrNotAuthenticated
	}
	updated := *s.current
	s.mu.Unlock()

	if newPassword == "" {
		return fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
	}

	updated.Password = newPassword
	updated.ForcePasswordChange = false
	canonical, err := s.gw.UpdateUser(ctx, updated)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = canonical
	s.replaceUserLocked(*canonical)
	s.mu.Unlock()
	s.publish()
	return nil
}

// ClockIn opens a time entry for the authenticated user at the given
// coordinates. At most one open entry may exist per user.
func (s *Store) ClockIn(ctx context.Context, latitude, longitude float64) (*domain.TimeEntry, error) {
	user, err := s.guard()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	_, open := domain.OpenEntry(s.entries, user.ID)
	s.mu.Unlock()
	if open {
		return nil, domain.ErrOpenEntry
	}

	entry := domain.TimeEntry{
		UserID:          user.ID,
		UserName:        user.Name,
		ClockIn:         time.Now().UTC(),
		ClockInLocation: s.locate(ctx, latitude, longitude),
	}
	if err := domain.ValidateTimeEntry(entry); err != nil {
		return nil, err
	}

	created, err := s.gw.CreateTimeEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries = append(s.entries, *created)
	s.mu.Unlock()
	s.publish()
	return created, nil
}

// ClockOut closes the authenticated user's open entry at the given
// coordinates. The clock-out side of an entry is set exactly once.
func (s *Store) ClockOut(ctx context.Context, latitude, longitude float64) (*domain.TimeEntry, error) {
	user, err := s.guard()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	entry, ok := domain.OpenEntry(s.entries, user.ID)
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrNoOpenEntry
	}

	now := time.Now().UTC()
	loc := s.locate(ctx, latitude, longitude)
	entry.ClockOut = &now
	entry.ClockOutLocation = &loc
	if err := domain.ValidateTimeEntry(entry); err != nil {
		return nil, err
	}

	updated, err := s.gw.UpdateTimeEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.replaceEntryLocked(*updated)
	s.mu.Unlock()
	s.publish()
	return updated, nil
}

// AddOvertime accumulates overtime on the authenticated user's open entry.
// Hours must be non-negative; zero hours is a no-op by construction.
func (s *Store) AddOvertime(ctx context.Context, hours float64) (*domain.TimeEntry, error) {
	user, err := s.guard()
	if err != nil {
		return nil, err
	}
	if hours < 0 {
		return nil, fmt.Errorf("%w: overtime hours must be >= 0", domain.ErrValidation)
	}

	s.mu.Lock()
	entry, ok := domain.OpenEntry(s.entries, user.ID)
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrNoOpenEntry
	}
	if hours == 0 {
		return &entry, nil
	}

	entry.OvertimeHours += hours
	updated, err := s.gw.UpdateTimeEntry(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.replaceEntryLocked(*updated)
	s.mu.Unlock()
	s.publish()
	return updated, nil
}

// SubmitContractorWork appends a submission owned by the authenticated
// contractor. Submissions are immutable once created.
func (s *Store) SubmitContractorWork(ctx context.Context, sub domain.ContractorSubmission) (*domain.ContractorSubmission, error) {
	user, err := s.guard()
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleContractor {
		return nil, domain.ErrForbidden
	}

	sub.ContractorID = user.ID
	if sub.SubmissionDate.IsZero() {
		sub.SubmissionDate = time.Now().UTC()
	}
	if err := domain.ValidateSubmission(sub); err != nil {
		return nil, err
	}

	created, err := s.gw.CreateSubmission(ctx, sub)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.submissions = append(s.submissions, *created)
	s.mu.Unlock()
	s.publish()
	return created, nil
}

// CreateUser adds an account with a role the current user may manage. The
// new account always starts with a forced password change; when no
// password is supplied a temporary one is generated.
func (s *Store) CreateUser(ctx context.Context, name string, role domain.Role, password string) (*domain.User, error) {
	actor, err := s.guard()
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanManage(role) {
		return nil, domain.ErrForbidden
	}
	if password == "" {
		password = fmt.Sprintf("temp%d", time.Now().UnixMilli())
	}

	user := domain.User{Name: name, Role: role, Password: password, ForcePasswordChange: true}
	if err := domain.ValidateUser(user); err != nil {
		return nil, err
	}

	created, err := s.gw.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.users = append(s.users, *created)
	s.mu.Unlock()
	s.publish()
	return created, nil
}

// UpdateUser replaces a managed account. The authenticated identity can
// never be edited through this path.
func (s *Store) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	actor, err := s.guard()
	if err != nil {
		return nil, err
	}
	if u.ID == actor.ID {
		return nil, domain.ErrSelfManagement
	}
	if !actor.Role.CanManage(u.Role) {
		return nil, domain.ErrForbidden
	}
	if err := domain.ValidateUser(u); err != nil {
		return nil, err
	}

	updated, err := s.gw.UpdateUser(ctx, u)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.replaceUserLocked(*updated)
	s.mu.Unlock()
	s.publish()
	return updated, nil
}

// DeleteUser removes a managed account. The authenticated identity can
// never be deleted through this path.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	actor, err := s.guard()
	if err != nil {
		return err
	}
	if id == actor.ID {
		return domain.ErrSelfManagement
	}

	s.mu.Lock()
	var target *domain.User
	for i := range s.users {
		if s.users[i].ID == id {
			target = &s.users[i]
			break
		}
	}
	s.mu.Unlock()
	if target == nil {
		return domain.ErrNotFound
	}
	if !actor.Role.CanManage(target.Role) {
		return domain.ErrForbidden
	}

	if err := s.gw.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	s.mu.Unlock()
	s.publish()
	return nil
}

// ManageableUsers returns the accounts the authenticated user may manage:
// roles within its reach, excluding itself.
func (s *Store) ManageableUsers() ([]domain.User, error) {
	actor, err := s.guard()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.User
	for _, u := range s.users {
		if u.ID == actor.ID {
			continue
		}
		if actor.Role.CanManage(u.Role) {
			out = append(out, u)
		}
	}
	return out, nil
}

// Ask forwards an administrator question to the assistant together with a
// JSON summary of the tracked data. Only admins and creators may ask.
func (s *Store) Ask(ctx context.Context, question string) (string, error) {
	actor, err := s.guard()
	if err != nil {
		return "", err
	}
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleCreator {
		return "", domain.ErrForbidden
	}
	if s.assistant == nil {
		return "", errors.New("assistant not configured")
	}

	s.mu.Lock()
	summary := struct {
		Users       []domain.User                 `json:"users"`
		TimeEntries []domain.TimeEntry            `json:"timeEntries"`
		Submissions []domain.ContractorSubmission `json:"contractorSubmissions"`
	}{s.users, s.entries, s.submissions}
	s.mu.Unlock()

	dataContext, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("serialize assistant context: %w", err)
	}
	return s.assistant.Ask(ctx, question, string(dataContext))
}

// locate resolves coordinates through the geocoder. A geocoder failure
// degrades to a bare coordinate description; it never fails the intent.
func (s *Store) locate(ctx context.Context, latitude, longitude float64) domain.LocationInfo {
	fallback := domain.LocationInfo{
		Latitude:    latitude,
		Longitude:   longitude,
		Description: fmt.Sprintf("%.4f, %.4f", latitude, longitude),
	}
	if s.geocoder == nil {
		return fallback
	}

	loc, err := s.geocoder.Lookup(ctx, latitude, longitude)
	if err != nil {
		s.log.Warn().Err(err).Float64("lat", latitude).Float64("lng", longitude).Msg("geocoder lookup failed, using coordinates")
		return fallback
	}
	return loc
}

func (s *Store) replaceUserLocked(u domain.User) {
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return
		}
	}
	s.users = append(s.users, u)
}

func (s *Store) replaceEntryLocked(e domain.TimeEntry) {
	for i := range s.entries {
		if s.entries[i].ID == e.ID {
			s.entries[i] = e
			return
		}
	}
	s.entries = append(s.entries, e)
}
