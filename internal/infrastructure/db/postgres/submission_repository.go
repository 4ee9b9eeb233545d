package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pecc/timetracking/internal/core/domain"
)

// SubmissionRepository persists contractor submissions. The table is
// append-only.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

func (r *SubmissionRepository) List(ctx context.Context) ([]domain.ContractorSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, contractor_id, employee_name, cedula, obra,
		        hours_worked, daily_rate, submission_date
		 FROM contractor_submissions ORDER BY submission_date`)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.ContractorSubmission
	for rows.Next() {
		var s domain.ContractorSubmission
		err := rows.Scan(&s.ID, &s.ContractorID, &s.EmployeeName, &s.Cedula,
			&s.Obra, &s.HoursWorked, &s.DailyRate, &s.SubmissionDate)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		s.SubmissionDate = s.SubmissionDate.UTC()
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *SubmissionRepository) Create(ctx context.Context, s domain.ContractorSubmission) (*domain.ContractorSubmission, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contractor_submissions(contractor_id, employee_name, cedula,
			obra, hours_worked, daily_rate, submission_date)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		s.ContractorID, s.EmployeeName, s.Cedula, s.Obra,
		s.HoursWorked, s.DailyRate, s.SubmissionDate.UTC(),
	).Scan(&s.ID)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return &s, nil
}
