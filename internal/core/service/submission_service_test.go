package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pecc/timetracking/internal/core/domain"
)

type stubSubmissionRepo struct {
	subs   []domain.ContractorSubmission
	nextID int64
}

func (r *stubSubmissionRepo) List(context.Context) ([]domain.ContractorSubmission, error) {
	return append([]domain.ContractorSubmission(nil), r.subs...), nil
}

func (r *stubSubmissionRepo) Create(_ context.Context, s domain.ContractorSubmission) (*domain.ContractorSubmission, error) {
	r.nextID++
	s.ID = r.nextID
	r.subs = append(r.subs, s)
	return &s, nil
}

func TestSubmissionService_Create_DefaultsDate(t *testing.T) {
	repo := &stubSubmissionRepo{}
	svc := NewSubmissionService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), domain.ContractorSubmission{
		ContractorID: 3,
		EmployeeName: "Dave",
		Cedula:       "12345",
		Obra:         "Site A",
		HoursWorked:  40,
		DailyRate:    500,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.SubmissionDate.IsZero() {
		t.Fatalf("submission date must default to now")
	}
	if got := created.Cost(); got != 2500 {
		t.Fatalf("expected cost 2500, got %v", got)
	}
}

func TestSubmissionService_Create_RejectsNegativeHours(t *testing.T) {
	repo := &stubSubmissionRepo{}
	svc := NewSubmissionService(repo, nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), domain.ContractorSubmission{
		ContractorID:   3,
		EmployeeName:   "Dave",
		Cedula:         "12345",
		Obra:           "Site A",
		HoursWorked:    -8,
		DailyRate:      500,
		SubmissionDate: time.Now().UTC(),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(repo.subs) != 0 {
		t.Fatalf("nothing may be persisted on validation failure")
	}
}

func TestSubmissionService_AppendOnly(t *testing.T) {
	repo := &stubSubmissionRepo{}
	svc := NewSubmissionService(repo, nil, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, domain.ContractorSubmission{
			ContractorID: 3,
			EmployeeName: "Dave",
			Cedula:       "12345",
			Obra:         "Site A",
			HoursWorked:  8,
			DailyRate:    500,
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	subs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(subs))
	}
	for i, s := range subs {
		if s.ID != int64(i+1) {
			t.Fatalf("ids must be assigned in order: %+v", subs)
		}
	}
}
