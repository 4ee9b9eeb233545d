package domain

import (
	"errors"
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	out := in.Add(8*time.Hour + 30*time.Minute)

	entry := TimeEntry{ClockIn: in, ClockOut: &out}
	hours, ok := entry.Duration()
	if !ok {
		t.Fatalf("expected duration to be defined")
	}
	if hours != 8.5 {
		t.Fatalf("expected 8.5 hours, got %v", hours)
	}

	open := TimeEntry{ClockIn: in}
	if _, ok := open.Duration(); ok {
		t.Fatalf("duration of an open entry must be undefined")
	}
	if !open.IsOpen() {
		t.Fatalf("entry without clockOut must be open")
	}
}

func TestOpenEntry(t *testing.T) {
	in := time.Now().UTC()
	out := in.Add(time.Hour)
	entries := []TimeEntry{
		{ID: 1, UserID: 1, ClockIn: in, ClockOut: &out},
		{ID: 2, UserID: 1, ClockIn: in},
		{ID: 3, UserID: 2, ClockIn: in, ClockOut: &out},
	}

	e, ok := OpenEntry(entries, 1)
	if !ok || e.ID != 2 {
		t.Fatalf("expected open entry 2 for user 1, got %+v ok=%v", e, ok)
	}
	if _, ok := OpenEntry(entries, 2); ok {
		t.Fatalf("user 2 has no open entry")
	}
}

func TestTotalOvertime(t *testing.T) {
	entries := []TimeEntry{
		{OvertimeHours: 1.5},
		{},
		{OvertimeHours: 2},
	}
	if got := TotalOvertime(entries); got != 3.5 {
		t.Fatalf("expected 3.5, got %v", got)
	}
}

func TestContractorCost(t *testing.T) {
	sub := ContractorSubmission{HoursWorked: 40, DailyRate: 500}
	if got := sub.Cost(); got != 2500 {
		t.Fatalf("expected cost 2500, got %v", got)
	}
}

func TestManageableRoles(t *testing.T) {
	creator := ManageableRoles(RoleCreator)
	if len(creator) != 3 {
		t.Fatalf("creator must manage 3 roles, got %v", creator)
	}
	if !RoleCreator.CanManage(RoleAdmin) {
		t.Fatalf("creator must manage admins")
	}

	admin := ManageableRoles(RoleAdmin)
	for _, r := range admin {
		if r == RoleAdmin || r == RoleCreator {
			t.Fatalf("admin must not manage %s", r)
		}
	}
	if RoleAdmin.CanManage(RoleAdmin) {
		t.Fatalf("admin must not manage other admins")
	}

	if got := ManageableRoles(RoleEmployee); got != nil {
		t.Fatalf("employee manages nobody, got %v", got)
	}
	if got := ManageableRoles(RoleContractor); got != nil {
		t.Fatalf("contractor manages nobody, got %v", got)
	}
}

func TestValidateSubmission(t *testing.T) {
	good := ContractorSubmission{
		ContractorID: 3,
		EmployeeName: "Dave",
		Cedula:       "123",
		Obra:         "Obra X",
		HoursWorked:  40,
		DailyRate:    500,
	}
	if err := ValidateSubmission(good); err != nil {
		t.Fatalf("valid submission rejected: %v", err)
	}

	bad := good
	bad.HoursWorked = -1
	if err := ValidateSubmission(bad); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for negative hours, got %v", err)
	}

	bad = good
	bad.DailyRate = -0.5
	if err := ValidateSubmission(bad); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for negative rate, got %v", err)
	}
}

func TestValidateTimeEntry(t *testing.T) {
	in := time.Now().UTC()
	entry := TimeEntry{UserID: 1, UserName: "Alice", ClockIn: in}
	if err := ValidateTimeEntry(entry); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}

	entry.OvertimeHours = -2
	if err := ValidateTimeEntry(entry); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for negative overtime, got %v", err)
	}

	before := in.Add(-time.Hour)
	entry.OvertimeHours = 0
	entry.ClockOut = &before
	if err := ValidateTimeEntry(entry); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for clockOut before clockIn, got %v", err)
	}
}
