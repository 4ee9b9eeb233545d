package handler

import "time"

// --- Request / Response types ---
//
// The JSON contract is snake_case with ISO-8601 timestamps. These types are
// intentionally separate from domain types so the wire format is not coupled
// to internal changes.

type loginRequest struct {
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userRequest struct {
	Name                string `json:"name" validate:"required"`
	Role                string `json:"role" validate:"required,oneof=employee contractor admin creator"`
	Password            string `json:"password"`
	ForcePasswordChange bool   `json:"force_password_change"`
}

// userResponse carries the password so the offline cache holds everything
// needed to authenticate without the server. Hardening the credential flow
// is out of scope for now.
type userResponse struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Role                string `json:"role"`
	Password            string `json:"password,omitempty"`
	ForcePasswordChange bool   `json:"force_password_change"`
}

type locationPayload struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
	MapURI      string  `json:"map_uri,omitempty"`
}

type timeEntryRequest struct {
	UserID           int64            `json:"user_id"   validate:"required"`
	UserName         string           `json:"user_name" validate:"required"`
	ClockIn          time.Time        `json:"clock_in"  validate:"required"`
	ClockOut         *time.Time       `json:"clock_out,omitempty"`
	ClockInLocation  locationPayload  `json:"clock_in_location"`
	ClockOutLocation *locationPayload `json:"clock_out_location,omitempty"`
	OvertimeHours    float64          `json:"overtime_hours" validate:"gte=0"`
}

type timeEntryResponse struct {
	ID               int64            `json:"id"`
	UserID           int64            `json:"user_id"`
	UserName         string           `json:"user_name"`
	ClockIn          time.Time        `json:"clock_in"`
	ClockOut         *time.Time       `json:"clock_out,omitempty"`
	ClockInLocation  locationPayload  `json:"clock_in_location"`
	ClockOutLocation *locationPayload `json:"clock_out_location,omitempty"`
	OvertimeHours    float64          `json:"overtime_hours"`
}

type submissionRequest struct {
	ContractorID   int64     `json:"contractor_id" validate:"required"`
	EmployeeName   string    `json:"employee_name" validate:"required"`
	Cedula         string    `json:"cedula"        validate:"required"`
	Obra           string    `json:"obra"          validate:"required"`
	HoursWorked    float64   `json:"hours_worked"  validate:"gte=0"`
	DailyRate      float64   `json:"daily_rate"    validate:"gte=0"`
	SubmissionDate time.Time `json:"submission_date"`
}

type submissionResponse struct {
	ID             int64     `json:"id"`
	ContractorID   int64     `json:"contractor_id"`
	EmployeeName   string    `json:"employee_name"`
	Cedula         string    `json:"cedula"`
	Obra           string    `json:"obra"`
	HoursWorked    float64   `json:"hours_worked"`
	DailyRate      float64   `json:"daily_rate"`
	SubmissionDate time.Time `json:"submission_date"`
}
