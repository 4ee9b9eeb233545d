package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pecc/timetracking/internal/core/domain"
	"github.com/pecc/timetracking/internal/core/ports"
)

// SubmissionService implements the append-only contractor submission use
// cases. Submissions are never updated or deleted.
type SubmissionService struct {
	repo  ports.SubmissionRepository
	cache CollectionCache
	log   zerolog.Logger
}

func NewSubmissionService(repo ports.SubmissionRepository, cache CollectionCache, log zerolog.Logger) *SubmissionService {
	return &SubmissionService{repo: repo, cache: cache, log: log}
}

func (s *SubmissionService) List(ctx context.Context) ([]domain.ContractorSubmission, error) {
	if s.cache != nil {
		var cached []domain.ContractorSubmission
		if hit, err := s.cache.Get(ctx, cacheKeySubmissions, &cached); err != nil {
			s.log.Warn().Err(err).Msg("submission list cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeySubmissions, subs); err != nil {
			s.log.Warn().Err(err).Msg("submission list cache write failed")
		}
	}
	return subs, nil
}

func (s *SubmissionService) Create(ctx context.Context, sub domain.ContractorSubmission) (*domain.ContractorSubmission, error) {
	if sub.SubmissionDate.IsZero() {
		sub.SubmissionDate = time.Now().UTC()
	}
	if err := domain.ValidateSubmission(sub); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, cacheKeySubmissions); err != nil {
			s.log.Warn().Err(err).Msg("submission cache invalidation failed")
		}
	}
	s.log.Info().Int64("id", created.ID).Int64("contractor_id", created.ContractorID).Float64("cost", created.Cost()).Msg("submission recorded")
	return created, nil
}
