package domain

import "time"

// Seed data mirrors the canonical store's initial contents. The local cache
// seeds itself with the same records on first run so a session that starts
// offline sees the same accounts the server would have.

// SeedUsers returns the built-in default accounts.
func SeedUsers() []User {
	return []User{
		{ID: 1, Name: "Alice", Role: RoleEmployee, Password: "password123", ForcePasswordChange: true},
		{ID: 2, Name: "Bob", Role: RoleEmployee, Password: "password456"},
		{ID: 3, Name: "Charlie", Role: RoleContractor, Password: "password789"},
		{ID: 4, Name: "Admin User", Role: RoleAdmin, Password: "adminpassword"},
		{ID: 5, Name: "Creator User", Role: RoleCreator, Password: "creatorpassword"},
	}
}

// SeedTimeEntries returns sample closed entries for the default employees.
func SeedTimeEntries() []TimeEntry {
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(time.Hour)
	aliceOut := yesterday.Add(8 * time.Hour)
	twoDaysAgo := time.Now().UTC().AddDate(0, 0, -2).Truncate(time.Hour)
	bobOut := twoDaysAgo.Add(9 * time.Hour)

	union := LocationInfo{Latitude: 34.0522, Longitude: -118.2437, Description: "Union Station, Los Angeles"}
	cityHall := LocationInfo{Latitude: 40.7128, Longitude: -74.0060, Description: "City Hall, New York"}

	return []TimeEntry{
		{
			ID:               1,
			UserID:           1,
			UserName:         "Alice",
			ClockIn:          yesterday,
			ClockOut:         &aliceOut,
			ClockInLocation:  union,
			ClockOutLocation: &union,
			OvertimeHours:    1.5,
		},
		{
			ID:               2,
			UserID:           2,
			UserName:         "Bob",
			ClockIn:          twoDaysAgo,
			ClockOut:         &bobOut,
			ClockInLocation:  cityHall,
			ClockOutLocation: &cityHall,
		},
	}
}

// SeedSubmissions returns sample contractor submissions.
func SeedSubmissions() []ContractorSubmission {
	return []ContractorSubmission{
		{
			ID:             1,
			ContractorID:   3,
			EmployeeName:   "Dave",
			Cedula:         "123456789",
			Obra:           "Proyecto Edificio Central",
			HoursWorked:    40,
			DailyRate:      500,
			SubmissionDate: time.Now().UTC().AddDate(0, 0, -5),
		},
		{
			ID:             2,
			ContractorID:   3,
			EmployeeName:   "Eve",
			Cedula:         "987654321",
			Obra:           "Remodelación Ala Oeste",
			HoursWorked:    35,
			DailyRate:      450,
			SubmissionDate: time.Now().UTC().AddDate(0, 0, -3),
		},
	}
}
