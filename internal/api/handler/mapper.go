package handler

import (
	"github.com/pecc/timetracking/internal/core/domain"
)

// --- Request → domain ---

func toDomainUser(id int64, req userRequest) domain.User {
	return domain.User{
		ID:                  id,
		Name:                req.Name,
		Role:                domain.Role(req.Role),
		Password:            req.Password,
		ForcePasswordChange: req.ForcePasswordChange,
	}
}

func toDomainLocation(p locationPayload) domain.LocationInfo {
	return domain.LocationInfo{
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Description: p.Description,
		MapURI:      p.MapURI,
	}
}

func toDomainEntry(id int64, req timeEntryRequest) domain.TimeEntry {
	e := domain.TimeEntry{
		ID:              id,
		UserID:          req.UserID,
		UserName:        req.UserName,
		ClockIn:         req.ClockIn.UTC(),
		ClockInLocation: toDomainLocation(req.ClockInLocation),
		OvertimeHours:   req.OvertimeHours,
	}
	if req.ClockOut != nil {
		out := req.ClockOut.UTC()
		e.ClockOut = &out
	}
	if req.ClockOutLocation != nil {
		loc := toDomainLocation(*req.ClockOutLocation)
		e.ClockOutLocation = &loc
	}
	return e
}

func toDomainSubmission(req submissionRequest) domain.ContractorSubmission {
	return domain.ContractorSubmission{
		ContractorID:   req.ContractorID,
		EmployeeName:   req.EmployeeName,
		Cedula:         req.Cedula,
		Obra:           req.Obra,
		HoursWorked:    req.HoursWorked,
		DailyRate:      req.DailyRate,
		SubmissionDate: req.SubmissionDate.UTC(),
	}
}

// --- Domain → response ---

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:                  u.ID,
		Name:                u.Name,
		Role:                string(u.Role),
		Password:            u.Password,
		ForcePasswordChange: u.ForcePasswordChange,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func toLocationPayload(l domain.LocationInfo) locationPayload {
	return locationPayload{
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Description: l.Description,
		MapURI:      l.MapURI,
	}
}

func toEntryResponse(e domain.TimeEntry) timeEntryResponse {
	resp := timeEntryResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		UserName:        e.UserName,
		ClockIn:         e.ClockIn.UTC(),
		ClockInLocation: toLocationPayload(e.ClockInLocation),
		OvertimeHours:   e.OvertimeHours,
	}
	if e.ClockOut != nil {
		out := e.ClockOut.UTC()
		resp.ClockOut = &out
	}
	if e.ClockOutLocation != nil {
		loc := toLocationPayload(*e.ClockOutLocation)
		resp.ClockOutLocation = &loc
	}
	return resp
}

func toEntryResponses(entries []domain.TimeEntry) []timeEntryResponse {
	out := make([]timeEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}
	return out
}

func toSubmissionResponse(s domain.ContractorSubmission) submissionResponse {
	return submissionResponse{
		ID:             s.ID,
		ContractorID:   s.ContractorID,
		EmployeeName:   s.EmployeeName,
		Cedula:         s.Cedula,
		Obra:           s.Obra,
		HoursWorked:    s.HoursWorked,
		DailyRate:      s.DailyRate,
		SubmissionDate: s.SubmissionDate.UTC(),
	}
}

func toSubmissionResponses(subs []domain.ContractorSubmission) []submissionResponse {
	out := make([]submissionResponse, len(subs))
	for i, s := range subs {
		out[i] = toSubmissionResponse(s)
	}
	return out
}
