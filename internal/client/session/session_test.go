package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pecc/timetracking/internal/core/domain"
)

// memGateway is an in-memory DataGateway for session tests.
type memGateway struct {
	mu      sync.Mutex
	users   []domain.User
	entries []domain.TimeEntry
	subs    []domain.ContractorSubmission
	nextID  int64
	online  bool
}

func newMemGateway() *memGateway {
	return &memGateway{
		users:  domain.SeedUsers(),
		nextID: 1000,
		online: true,
	}
}

func (g *memGateway) id() int64 { g.nextID++; return g.nextID }

func (g *memGateway) RemoteAvailable() bool    { return g.online }
func (g *memGateway) OnStateChange(func(bool)) {}

func (g *memGateway) Login(_ context.Context, name, password string) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, u := range g.users {
		if u.Name == name && u.Password == password {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

func (g *memGateway) ListUsers(context.Context) ([]domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.User(nil), g.users...), nil
}

func (g *memGateway) CreateUser(_ context.Context, u domain.User) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	u.ID = g.id()
	u.ForcePasswordChange = true
	g.users = append(g.users, u)
	return &u, nil
}

func (g *memGateway) UpdateUser(_ context.Context, u domain.User) (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.users {
		if g.users[i].ID == u.ID {
			g.users[i] = u
		}
	}
	return &u, nil
}

func (g *memGateway) DeleteUser(_ context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	kept := g.users[:0]
	for _, u := range g.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	g.users = kept
	return nil
}

func (g *memGateway) ListTimeEntries(context.Context) ([]domain.TimeEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.TimeEntry(nil), g.entries...), nil
}

func (g *memGateway) CreateTimeEntry(_ context.Context, e domain.TimeEntry) (*domain.TimeEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e.ID = g.id()
	g.entries = append(g.entries, e)
	return &e, nil
}

func (g *memGateway) UpdateTimeEntry(_ context.Context, e domain.TimeEntry) (*domain.TimeEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.entries {
		if g.entries[i].ID == e.ID {
			g.entries[i] = e
		}
	}
	return &e, nil
}

func (g *memGateway) ListSubmissions(context.Context) ([]domain.ContractorSubmission, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.ContractorSubmission(nil), g.subs...), nil
}

func (g *memGateway) CreateSubmission(_ context.Context, s domain.ContractorSubmission) (*domain.ContractorSubmission, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s.ID = g.id()
	g.subs = append(g.subs, s)
	return &s, nil
}

func newTestStore(t *testing.T) (*Store, *memGateway) {
	t.Helper()
	gw := newMemGateway()
	return New(gw, nil, nil, zerolog.Nop()), gw
}

func login(t *testing.T, s *Store, name, password string) *domain.User {
	t.Helper()
	u, err := s.Login(context.Background(), name, password)
	if err != nil {
		t.Fatalf("login %s: %v", name, err)
	}
	return u
}

func TestForcedPasswordChangeGatesIntents(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	u := login(t, s, "Alice", "password123")
	if !u.ForcePasswordChange {
		t.Fatalf("Alice must require a password change")
	}

	// Every dashboard intent is blocked until the password change succeeds.
	if _, err := s.ClockIn(ctx, 1, 2); !errors.Is(err, domain.ErrPasswordChangeRequired) {
		t.Fatalf("clock-in must be gated, got %v", err)
	}
	if _, err := s.AddOvertime(ctx, 1); !errors.Is(err, domain.ErrPasswordChangeRequired) {
		t.Fatalf("overtime must be gated, got %v", err)
	}
	if _, err := s.ManageableUsers(); !errors.Is(err, domain.ErrPasswordChangeRequired) {
		t.Fatalf("user management must be gated, got %v", err)
	}

	if err := s.ChangePassword(ctx, "newpass1"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	snap := s.Snapshot()
	if snap.CurrentUser == nil || snap.CurrentUser.ForcePasswordChange {
		t.Fatalf("flag must be cleared after the change: %+v", snap.CurrentUser)
	}
	if snap.CurrentUser.Password != "newpass1" {
		t.Fatalf("expected the new password to be applied")
	}
	if _, err := s.ClockIn(ctx, 1, 2); err != nil {
		t.Fatalf("clock-in must work after the change: %v", err)
	}
}

func TestClockInOutInvariant(t *testing.T) {
	s, gw := newTestStore(t)
	ctx := context.Background()
	login(t, s, "Bob", "password456")

	entry, err := s.ClockIn(ctx, 34.05, -118.24)
	if err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if !entry.IsOpen() {
		t.Fatalf("fresh entry must be open")
	}
	if entry.ClockInLocation.Description == "" {
		t.Fatalf("clock-in must carry a location description")
	}

	// A second clock-in while open must be refused.
	if _, err := s.ClockIn(ctx, 1, 2); !errors.Is(err, domain.ErrOpenEntry) {
		t.Fatalf("expected ErrOpenEntry, got %v", err)
	}

	closed, err := s.ClockOut(ctx, 34.05, -118.24)
	if err != nil {
		t.Fatalf("clock out: %v", err)
	}
	if closed.IsOpen() || closed.ClockOutLocation == nil {
		t.Fatalf("closed entry must carry clock-out side: %+v", closed)
	}

	// At most one open entry per user, always.
	open := 0
	for _, e := range gw.entries {
		if e.UserID == closed.UserID && e.IsOpen() {
			open++
		}
	}
	if open != 0 {
		t.Fatalf("expected no open entries after clock-out, got %d", open)
	}

	if _, err := s.ClockOut(ctx, 1, 2); !errors.Is(err, domain.ErrNoOpenEntry) {
		t.Fatalf("expected ErrNoOpenEntry, got %v", err)
	}
}

func TestAddOvertimeZeroIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	login(t, s, "Bob", "password456")

	if _, err := s.ClockIn(ctx, 1, 2); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	if _, err := s.AddOvertime(ctx, 1.5); err != nil {
		t.Fatalf("add overtime: %v", err)
	}

	for i := 0; i < 2; i++ {
		entry, err := s.AddOvertime(ctx, 0)
		if err != nil {
			t.Fatalf("zero overtime %d: %v", i, err)
		}
		if entry.OvertimeHours != 1.5 {
			t.Fatalf("zero hours changed overtime: %v", entry.OvertimeHours)
		}
	}

	if _, err := s.AddOvertime(ctx, -1); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("negative overtime must be rejected, got %v", err)
	}
}

func TestSubmitContractorWork(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	login(t, s, "Charlie", "password789")

	created, err := s.SubmitContractorWork(ctx, domain.ContractorSubmission{
		EmployeeName: "Dave",
		Cedula:       "123456789",
		Obra:         "Proyecto Edificio Central",
		HoursWorked:  40,
		DailyRate:    500,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.ContractorID != 3 {
		t.Fatalf("submission must be owned by the contractor, got %d", created.ContractorID)
	}
	if created.Cost() != 2500 {
		t.Fatalf("expected cost 2500, got %v", created.Cost())
	}
	if created.SubmissionDate.IsZero() {
		t.Fatalf("submission date must be defaulted")
	}

	// Negative hours are rejected before any write.
	if _, err := s.SubmitContractorWork(ctx, domain.ContractorSubmission{
		EmployeeName: "Eve", Cedula: "9", Obra: "x", HoursWorked: -1, DailyRate: 450,
	}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSubmitRequiresContractorRole(t *testing.T) {
	s, _ := newTestStore(t)
	login(t, s, "Bob", "password456")

	_, err := s.SubmitContractorWork(context.Background(), domain.ContractorSubmission{
		EmployeeName: "Dave", Cedula: "1", Obra: "x", HoursWorked: 8, DailyRate: 100,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for employee, got %v", err)
	}
}

func TestManageableUsersExcludesAdminsAndSelf(t *testing.T) {
	s, _ := newTestStore(t)
	admin := login(t, s, "Admin User", "adminpassword")

	manageable, err := s.ManageableUsers()
	if err != nil {
		t.Fatalf("manageable users: %v", err)
	}
	if len(manageable) == 0 {
		t.Fatalf("admin must see manageable accounts")
	}
	for _, u := range manageable {
		if u.ID == admin.ID {
			t.Fatalf("manageable list must exclude the authenticated identity")
		}
		if u.Role == domain.RoleAdmin || u.Role == domain.RoleCreator {
			t.Fatalf("admin must not manage %s accounts", u.Role)
		}
	}
}

func TestUserManagementGates(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	admin := login(t, s, "Admin User", "adminpassword")

	// Admin cannot create another admin; a creator can.
	if _, err := s.CreateUser(ctx, "Eve", domain.RoleAdmin, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin creating admin must be forbidden, got %v", err)
	}
	created, err := s.CreateUser(ctx, "Eve", domain.RoleEmployee, "")
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if !created.ForcePasswordChange || created.Password == "" {
		t.Fatalf("new account must carry a temporary password and forced change: %+v", created)
	}

	// Self-management is refused by id, before any role check.
	self := *admin
	self.Name = "Renamed"
	if _, err := s.UpdateUser(ctx, self); !errors.Is(err, domain.ErrSelfManagement) {
		t.Fatalf("expected ErrSelfManagement on update, got %v", err)
	}
	if err := s.DeleteUser(ctx, admin.ID); !errors.Is(err, domain.ErrSelfManagement) {
		t.Fatalf("expected ErrSelfManagement on delete, got %v", err)
	}

	if err := s.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("delete managed user: %v", err)
	}
}

func TestSubscribersSeeAppliedChanges(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	login(t, s, "Bob", "password456")

	var mu sync.Mutex
	var last Snapshot
	notified := 0
	cancel := s.Subscribe(func(snap Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		last = snap
		notified++
	})
	defer cancel()

	if _, err := s.ClockIn(ctx, 1, 2); err != nil {
		t.Fatalf("clock in: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if notified == 0 {
		t.Fatalf("subscriber must be notified")
	}
	if len(last.TimeEntries) != 1 {
		t.Fatalf("snapshot must carry the applied entry, got %d", len(last.TimeEntries))
	}
	if _, ok := domain.OpenEntry(last.TimeEntries, last.CurrentUser.ID); !ok {
		t.Fatalf("snapshot must show the open entry")
	}
}

func TestLoginFailure(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.Login(context.Background(), "Alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if s.Snapshot().CurrentUser != nil {
		t.Fatalf("failed login must not authenticate")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := newTestStore(t)
	login(t, s, "Bob", "password456")

	snap := s.Snapshot()
	if len(snap.Users) == 0 {
		t.Fatalf("expected users in snapshot")
	}
	snap.Users[0].Name = "Mutated"

	if s.Snapshot().Users[0].Name == "Mutated" {
		t.Fatalf("snapshot mutation leaked into the store")
	}
}

func TestGuardBeforeLogin(t *testing.T) {
	s, _ := newTestStore(t)
	if _, err := s.ClockIn(context.Background(), 1, 2); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}
