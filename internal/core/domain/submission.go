package domain

import "time"

// HoursPerDay is the policy divisor used to convert hours worked at a daily
// rate into a cost. It is a fixed business constant, not derived from the
// entries themselves.
const HoursPerDay = 8.0

// ContractorSubmission is an append-only record of hours a contractor
// reports for a third party. Immutable once created; never deleted.
type ContractorSubmission struct {
	ID             int64     `json:"id"`
	ContractorID   int64     `json:"contractorId"`
	EmployeeName   string    `json:"employeeName" validate:"required"`
	Cedula         string    `json:"cedula" validate:"required"`
	Obra           string    `json:"obra" validate:"required"`
	HoursWorked    float64   `json:"hoursWorked" validate:"gte=0"`
	DailyRate      float64   `json:"dailyRate" validate:"gte=0"`
	SubmissionDate time.Time `json:"submissionDate"`
}

// Cost is the amount owed for the submission: hoursWorked * dailyRate / 8.
func (s ContractorSubmission) Cost() float64 {
	return s.HoursWorked * s.DailyRate / HoursPerDay
}
