package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pecc/timetracking/internal/core/domain"
	"github.com/pecc/timetracking/internal/core/ports"
)

// UserService implements the server-side user management use cases.
type UserService struct {
	repo  ports.UserRepository
	cache CollectionCache
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache CollectionCache, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, log: log}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	if s.cache != nil {
		var cached []domain.User
		if hit, err := s.cache.Get(ctx, cacheKeyUsers, &cached); err != nil {
			s.log.Warn().Err(err).Msg("user list cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyUsers, users); err != nil {
			s.log.Warn().Err(err).Msg("user list cache write failed")
		}
	}
	return users, nil
}

// Create adds an account. The new account always starts with a forced
// password change; when no password is supplied a temporary one is
// generated, to be replaced on first login.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	password := in.Password
	if password == "" {
		password = fmt.Sprintf("temp%d", time.Now().UnixMilli())
	}

	user := domain.User{
		Name:                in.Name,
		Role:                in.Role,
		Password:            password,
		ForcePasswordChange: true,
	}
	if err := domain.ValidateUser(user); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyUsers)
	s.log.Info().Int64("id", created.ID).Str("name", created.Name).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, u domain.User) (*domain.User, error) {
	if err := domain.ValidateUser(u); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyUsers)
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cacheKeyUsers)
	s.log.Info().Int64("id", id).Msg("user deleted")
	return nil
}

func (s *UserService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
	}
}
