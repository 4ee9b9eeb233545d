package remote

import (
	"fmt"
	"time"

	"github.com/pecc/timetracking/internal/core/domain"
)

// Wire types own the boundary translation: snake_case field names and
// ISO-8601 timestamp strings on the wire, camelCase structs with time.Time
// in memory. The mapping is explicit and field-by-field in both directions
// so nothing is dropped or renamed by accident; the round-trip tests hold
// it lossless.

type wireUser struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Role                string `json:"role"`
	Password            string `json:"password,omitempty"`
	ForcePasswordChange bool   `json:"force_password_change"`
}

func toWireUser(u domain.User) wireUser {
	return wireUser{
		ID:                  u.ID,
		Name:                u.Name,
		Role:                string(u.Role),
		Password:            u.Password,
		ForcePasswordChange: u.ForcePasswordChange,
	}
}

func (w wireUser) toDomain() domain.User {
	return domain.User{
		ID:                  w.ID,
		Name:                w.Name,
		Role:                domain.Role(w.Role),
		Password:            w.Password,
		ForcePasswordChange: w.ForcePasswordChange,
	}
}

type wireLocation struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
	MapURI      string  `json:"map_uri,omitempty"`
}

func toWireLocation(l domain.LocationInfo) wireLocation {
	return wireLocation{
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Description: l.Description,
		MapURI:      l.MapURI,
	}
}

func (w wireLocation) toDomain() domain.LocationInfo {
	return domain.LocationInfo{
		Latitude:    w.Latitude,
		Longitude:   w.Longitude,
		Description: w.Description,
		MapURI:      w.MapURI,
	}
}

type wireTimeEntry struct {
	ID               int64         `json:"id"`
	UserID           int64         `json:"user_id"`
	UserName         string        `json:"user_name"`
	ClockIn          string        `json:"clock_in"`
	ClockOut         *string       `json:"clock_out,omitempty"`
	ClockInLocation  wireLocation  `json:"clock_in_location"`
	ClockOutLocation *wireLocation `json:"clock_out_location,omitempty"`
	OvertimeHours    float64       `json:"overtime_hours"`
}

func toWireTimeEntry(e domain.TimeEntry) wireTimeEntry {
	w := wireTimeEntry{
		ID:              e.ID,
		UserID:          e.UserID,
		UserName:        e.UserName,
		ClockIn:         formatInstant(e.ClockIn),
		ClockInLocation: toWireLocation(e.ClockInLocation),
		OvertimeHours:   e.OvertimeHours,
	}
	if e.ClockOut != nil {
		out := formatInstant(*e.ClockOut)
		w.ClockOut = &out
	}
	if e.ClockOutLocation != nil {
		loc := toWireLocation(*e.ClockOutLocation)
		w.ClockOutLocation = &loc
	}
	return w
}

func (w wireTimeEntry) toDomain() (domain.TimeEntry, error) {
	clockIn, err := parseInstant(w.ClockIn)
	if err != nil {
		return domain.TimeEntry{}, fmt.Errorf("time entry %d: clock_in: %w", w.ID, err)
	}

	e := domain.TimeEntry{
		ID:              w.ID,
		UserID:          w.UserID,
		UserName:        w.UserName,
		ClockIn:         clockIn,
		ClockInLocation: w.ClockInLocation.toDomain(),
		OvertimeHours:   w.OvertimeHours,
	}
	if w.ClockOut != nil {
		clockOut, err := parseInstant(*w.ClockOut)
		if err != nil {
			return domain.TimeEntry{}, fmt.Errorf("time entry %d: clock_out: %w", w.ID, err)
		}
		e.ClockOut = &clockOut
	}
	if w.ClockOutLocation != nil {
		loc := w.ClockOutLocation.toDomain()
		e.ClockOutLocation = &loc
	}
	return e, nil
}

type wireSubmission struct {
	ID             int64   `json:"id"`
	ContractorID   int64   `json:"contractor_id"`
	EmployeeName   string  `json:"employee_name"`
	Cedula         string  `json:"cedula"`
	Obra           string  `json:"obra"`
	HoursWorked    float64 `json:"hours_worked"`
	DailyRate      float64 `json:"daily_rate"`
	SubmissionDate string  `json:"submission_date"`
}

func toWireSubmission(s domain.ContractorSubmission) wireSubmission {
	return wireSubmission{
		ID:             s.ID,
		ContractorID:   s.ContractorID,
		EmployeeName:   s.EmployeeName,
		Cedula:         s.Cedula,
		Obra:           s.Obra,
		HoursWorked:    s.HoursWorked,
		DailyRate:      s.DailyRate,
		SubmissionDate: formatInstant(s.SubmissionDate),
	}
}

func (w wireSubmission) toDomain() (domain.ContractorSubmission, error) {
	date, err := parseInstant(w.SubmissionDate)
	if err != nil {
		return domain.ContractorSubmission{}, fmt.Errorf("submission %d: submission_date: %w", w.ID, err)
	}
	return domain.ContractorSubmission{
		ID:             w.ID,
		ContractorID:   w.ContractorID,
		EmployeeName:   w.EmployeeName,
		Cedula:         w.Cedula,
		Obra:           w.Obra,
		HoursWorked:    w.HoursWorked,
		DailyRate:      w.DailyRate,
		SubmissionDate: date,
	}, nil
}

// Timestamps cross the wire as ISO-8601 strings and are re-hydrated into
// time.Time on every read.

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
