package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// The validation stage runs ahead of both the remote and cache write paths.
// The source system persisted whatever it was given; negative hours and
// rates are now rejected outright rather than flagged.

var validate = validator.New()

// ValidateUser checks entity shape before any write.
func ValidateUser(u User) error {
	return wrapValidation("user", validate.Struct(u))
}

// ValidateTimeEntry checks entity shape before any write.
func ValidateTimeEntry(e TimeEntry) error {
	if err := wrapValidation("time entry", validate.Struct(e)); err != nil {
		return err
	}
	if e.ClockIn.IsZero() {
		return fmt.Errorf("%w: time entry: clockIn is required", ErrValidation)
	}
	if e.ClockOut != nil && e.ClockOut.Before(e.ClockIn) {
		return fmt.Errorf("%w: time entry: clockOut precedes clockIn", ErrValidation)
	}
	return nil
}

// ValidateSubmission checks entity shape before any write.
func ValidateSubmission(s ContractorSubmission) error {
	if err := wrapValidation("contractor submission", validate.Struct(s)); err != nil {
		return err
	}
	if s.ContractorID == 0 {
		return fmt.Errorf("%w: contractor submission: contractorId is required", ErrValidation)
	}
	return nil
}

func wrapValidation(entity string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrValidation, entity, err)
}
