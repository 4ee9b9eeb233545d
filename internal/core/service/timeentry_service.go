package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pecc/timetracking/internal/core/domain"
	"github.com/pecc/timetracking/internal/core/ports"
)

// TimeEntryService implements the server-side time entry use cases and
// holds the entry lifecycle invariants: one open entry per user, clock-out
// set exactly once, overtime only growing and only while open.
type TimeEntryService struct {
	repo  ports.TimeEntryRepository
	cache CollectionCache
	log   zerolog.Logger
}

func NewTimeEntryService(repo ports.TimeEntryRepository, cache CollectionCache, log zerolog.Logger) *TimeEntryService {
	return &TimeEntryService{repo: repo, cache: cache, log: log}
}

func (s *TimeEntryService) List(ctx context.Context) ([]domain.TimeEntry, error) {
	if s.cache != nil {
		var cached []domain.TimeEntry
		if hit, err := s.cache.Get(ctx, cacheKeyEntries, &cached); err != nil {
			s.log.Warn().Err(err).Msg("entry list cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyEntries, entries); err != nil {
			s.log.Warn().Err(err).Msg("entry list cache write failed")
		}
	}
	return entries, nil
}

func (s *TimeEntryService) Create(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error) {
	if err := domain.ValidateTimeEntry(e); err != nil {
		return nil, err
	}

	open, err := s.repo.HasOpenEntry(ctx, e.UserID)
	if err != nil {
		return nil, err
	}
	if open && e.IsOpen() {
		return nil, domain.ErrOpenEntry
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.log.Info().Int64("id", created.ID).Int64("user_id", created.UserID).Msg("time entry opened")
	return created, nil
}

func (s *TimeEntryService) Update(ctx context.Context, e domain.TimeEntry) (*domain.TimeEntry, error) {
	if err := domain.ValidateTimeEntry(e); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, e.ID)
	if err != nil {
		return nil, err
	}

	if e.OvertimeHours < existing.OvertimeHours {
		return nil, domain.ErrValidation
	}
	if !existing.IsOpen() {
		// A closed entry is immutable: no second clock-out, no further
		// overtime.
		if e.OvertimeHours != existing.OvertimeHours {
			return nil, domain.ErrEntryClosed
		}
		if e.ClockOut == nil || !e.ClockOut.Equal(*existing.ClockOut) {
			return nil, domain.ErrEntryClosed
		}
	}

	updated, err := s.repo.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	if existing.IsOpen() && !updated.IsOpen() {
		s.log.Info().Int64("id", updated.ID).Int64("user_id", updated.UserID).Msg("time entry closed")
	}
	return updated, nil
}

func (s *TimeEntryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, cacheKeyEntries); err != nil {
		s.log.Warn().Err(err).Msg("entry cache invalidation failed")
	}
}
