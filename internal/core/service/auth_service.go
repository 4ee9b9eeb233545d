package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pecc/timetracking/internal/core/domain"
	"github.com/pecc/timetracking/internal/core/ports"
)

// AuthService implements login against the canonical store. Credentials
// are compared in plaintext; the source system works this way on purpose
// and hardening it is out of scope.
type AuthService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, log: log}
}

func (s *AuthService) Login(ctx context.Context, name, password string) (*domain.User, error) {
	if name == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByCredentials(ctx, name, password)
	if err != nil {
		s.log.Debug().Str("name", name).Msg("login rejected")
		return nil, err
	}

	s.log.Info().Str("name", user.Name).Str("role", string(user.Role)).Msg("login accepted")
	return user, nil
}
