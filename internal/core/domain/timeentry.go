package domain

import "time"

// LocationInfo is a geocoded position attached to one side of a time entry.
// Immutable once attached; produced by the geocoding collaborator and never
// persisted on its own.
type LocationInfo struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
	MapURI      string  `json:"mapUri,omitempty"`
}

// TimeEntry records one clock-in/clock-out cycle for a user.
//
// Invariant: a user has at most one entry with ClockOut unset (the "open"
// entry). ClockOut and ClockOutLocation are set exactly once; OvertimeHours
// only ever grows, and only while the entry is open.
type TimeEntry struct {
	ID               int64         `json:"id"`
	UserID           int64         `json:"userId"`
	UserName         string        `json:"userName" validate:"required"`
	ClockIn          time.Time     `json:"clockIn"`
	ClockOut         *time.Time    `json:"clockOut,omitempty"`
	ClockInLocation  LocationInfo  `json:"clockInLocation"`
	ClockOutLocation *LocationInfo `json:"clockOutLocation,omitempty"`
	OvertimeHours    float64       `json:"overtimeHours,omitempty" validate:"gte=0"`
}

// IsOpen reports whether the entry has not been clocked out yet.
func (e TimeEntry) IsOpen() bool {
	return e.ClockOut == nil
}

// Duration returns the worked time in hours. The second return is false
// while the entry is still open, in which case the duration is undefined.
func (e TimeEntry) Duration() (float64, bool) {
	if e.ClockOut == nil {
		return 0, false
	}
	return e.ClockOut.Sub(e.ClockIn).Hours(), true
}

// OpenEntry returns the open entry for userID, if any.
func OpenEntry(entries []TimeEntry, userID int64) (TimeEntry, bool) {
	for _, e := range entries {
		if e.UserID == userID && e.IsOpen() {
			return e, true
		}
	}
	return TimeEntry{}, false
}

// TotalOvertime sums overtime hours across entries.
func TotalOvertime(entries []TimeEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.OvertimeHours
	}
	return total
}
