package matches

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
	"github.com/ahsasnagar11/typeshit3/internal/pkg/validate"
	pgrepo "github.com/ahsasnagar11/typeshit3/internal/repo/postgres"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("user not found")
	ErrDependenciesNil = errors.New("match dependencies are not configured")
)

type MatchStore interface {
	CreateEdge(ctx context.Context, tx pgx.Tx, userID, targetID string) (bool, error)
	ListMatchedProfiles(ctx context.Context, userID string) ([]model.PublicProfile, error)
}

type LikeStore interface {
	DeleteReceived(ctx context.Context, tx pgx.Tx, userID, fromUserID string) (bool, error)
}

type UserStore interface {
	Exists(ctx context.Context, userID string) (bool, error)
	ExistsTx(ctx context.Context, tx pgx.Tx, userID string) (bool, error)
}

type TxRunner func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error

type Config struct {
	// AllowDummyIDs keeps the seeded-demo escape hatch: identifiers
	// with the dummy prefix short-circuit match creation without
	// touching the store. Off outside local environments.
	AllowDummyIDs bool
}

type Dependencies struct {
	Pool     *pgxpool.Pool
	Matches  MatchStore
	Likes    LikeStore
	Users    UserStore
	TxRunner TxRunner
	Logger   *zap.Logger
}

type Service struct {
	matches MatchStore
	likes   LikeStore
	users   UserStore
	runTx   TxRunner
	logger  *zap.Logger
	cfg     Config
}

func NewService(deps Dependencies, cfg Config) *Service {
	runTx := deps.TxRunner
	if runTx == nil && deps.Pool != nil {
		pool := deps.Pool
		runTx = func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return pgrepo.WithTx(ctx, pool, fn)
		}
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		matches: deps.Matches,
		likes:   deps.Likes,
		users:   deps.Users,
		runTx:   runTx,
		logger:  logger,
		cfg:     cfg,
	}
}

// Create records a mutual match between two users and clears the
// current user's received-like entry from the selected user. Every
// write happens in one transaction.
func (s *Service) Create(ctx context.Context, currentUserID, selectedUserID string) error {
	if s.matches == nil || s.likes == nil || s.users == nil || s.runTx == nil {
		return ErrDependenciesNil
	}

	currentUserID = strings.TrimSpace(currentUserID)
	selectedUserID = strings.TrimSpace(selectedUserID)
	if currentUserID == "" || selectedUserID == "" {
		return ErrValidation
	}

	if s.cfg.AllowDummyIDs && (validate.DummyID(currentUserID) || validate.DummyID(selectedUserID)) {
		s.logger.Warn("dummy id match bypass",
			zap.String("current_user_id", currentUserID),
			zap.String("selected_user_id", selectedUserID),
		)
		return nil
	}

	if !validate.UserID(currentUserID) || !validate.UserID(selectedUserID) || currentUserID == selectedUserID {
		return ErrValidation
	}

	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		for _, id := range []string{currentUserID, selectedUserID} {
			exists, err := s.users.ExistsTx(txCtx, tx, id)
			if err != nil {
				return err
			}
			if !exists {
				return ErrNotFound
			}
		}

		if _, err := s.matches.CreateEdge(txCtx, tx, currentUserID, selectedUserID); err != nil {
			return err
		}

		_, err := s.likes.DeleteReceived(txCtx, tx, currentUserID, selectedUserID)
		return err
	}); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("create match: %w", err)
	}

	return nil
}

// Decline clears the received-like entry without creating a match.
func (s *Service) Decline(ctx context.Context, currentUserID, selectedUserID string) error {
	if s.likes == nil || s.users == nil || s.runTx == nil {
		return ErrDependenciesNil
	}

	currentUserID = strings.TrimSpace(currentUserID)
	selectedUserID = strings.TrimSpace(selectedUserID)
	if !validate.UserID(currentUserID) || !validate.UserID(selectedUserID) {
		return ErrValidation
	}

	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		exists, err := s.users.ExistsTx(txCtx, tx, currentUserID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}

		_, err = s.likes.DeleteReceived(txCtx, tx, currentUserID, selectedUserID)
		return err
	}); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("decline match: %w", err)
	}

	return nil
}

// ListForUser returns the public profiles of everyone matched with
// userID, newest match first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]model.PublicProfile, error) {
	if s.matches == nil || s.users == nil {
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

	profiles, err := s.matches.ListMatchedProfiles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	if profiles == nil {
		profiles = []model.PublicProfile{}
	}

	return profiles, nil
}
