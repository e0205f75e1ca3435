package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
	"github.com/ahsasnagar11/typeshit3/internal/pkg/validate"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("user not found")
	ErrDependenciesNil = errors.New("feed dependencies are not configured")
)

type UserStore interface {
	Exists(ctx context.Context, userID string) (bool, error)
	ListCandidates(ctx context.Context, excludeUserID string) ([]model.User, error)
}

type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

// Candidates returns every other profile for the browse screen. A flat
// exclude-self scan, no preference or distance filtering.
func (s *Service) Candidates(ctx context.Context, userID string) ([]model.User, error) {
	if s.users == nil {
		return nil, ErrDependenciesNil
	}

	userID = strings.TrimSpace(userID)
	if !validate.UserID(userID) {
		return nil, ErrValidation
	}

	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	candidates, err := s.users.ListCandidates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	if candidates == nil {
		candidates = []model.User{}
	}

	return candidates, nil
}
