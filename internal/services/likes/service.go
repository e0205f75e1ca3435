package likes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
	"github.com/ahsasnagar11/typeshit3/internal/pkg/validate"
	pgrepo "github.com/ahsasnagar11/typeshit3/internal/repo/postgres"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("user not found")
	ErrDependenciesNil = errors.New("likes dependencies are not configured")
)

type LikeStore interface {
	InsertReceived(ctx context.Context, tx pgx.Tx, recipientID, fromUserID, image, comment string) error
	InsertOutbound(ctx context.Context, tx pgx.Tx, userID, likedUserID string) error
	ListReceivedWithProfiles(ctx context.Context, userID string) ([]pgrepo.ReceivedLikeRecord, error)
}

type UserStore interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// TxRunner executes fn inside one transaction. Defaults to
// pgrepo.WithTx over the pool; tests inject their own.
type TxRunner func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error

// ReceivedLike is an inbox entry expanded with the liking user's
// public profile.
type ReceivedLike struct {
	FromUser  model.PublicProfile
	Image     string
	Comment   string
	CreatedAt time.Time
}

type LikeInput struct {
	UserID      string
	LikedUserID string
	Image       string
	Comment     string
}

type Dependencies struct {
	Pool     *pgxpool.Pool
	Likes    LikeStore
	Users    UserStore
	TxRunner TxRunner
}

type Service struct {
	likes LikeStore
	users UserStore
	runTx TxRunner
}

func NewService(deps Dependencies) *Service {
	runTx := deps.TxRunner
	if runTx == nil && deps.Pool != nil {
		pool := deps.Pool
		runTx = func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return pgrepo.WithTx(ctx, pool, fn)
		}
	}

	return &Service{
		likes: deps.Likes,
		users: deps.Users,
		runTx: runTx,
	}
}

// LikeProfile records one like in both directions of bookkeeping: the
// inbox entry on the recipient and the outbound edge on the liker.
// Both writes commit together or not at all.
func (s *Service) LikeProfile(ctx context.Context, in LikeInput) error {
	if s.likes == nil || s.runTx == nil {
		return ErrDependenciesNil
	}

	if !validate.Required(in.UserID) || !validate.Required(in.LikedUserID) {
		return ErrValidation
	}
	if !validate.UserID(in.UserID) || !validate.UserID(in.LikedUserID) {
		return ErrValidation
	}
	if strings.TrimSpace(in.UserID) == strings.TrimSpace(in.LikedUserID) {
		return ErrValidation
	}

	userID := strings.TrimSpace(in.UserID)
	likedUserID := strings.TrimSpace(in.LikedUserID)

	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		if err := s.likes.InsertReceived(txCtx, tx, likedUserID, userID, in.Image, in.Comment); err != nil {
			return err
		}
		return s.likes.InsertOutbound(txCtx, tx, userID, likedUserID)
	}); err != nil {
		return fmt.Errorf("record like: %w", err)
	}

	return nil
}

// ListReceived returns the likes inbox for userID, each entry expanded
// with the liker's public profile.
func (s *Service) ListReceived(ctx context.Context, userID string) ([]ReceivedLike, error) {
	if s.likes == nil || s.users == nil {
		return nil, ErrDependenciesNil
	}

	if !validate.Required(userID) || !validate.UserID(userID) {
		return nil, ErrValidation
	}
	userID = strings.TrimSpace(userID)

	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	records, err := s.likes.ListReceivedWithProfiles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list received likes: %w", err)
	}

	result := make([]ReceivedLike, 0, len(records))
	for _, rec := range records {
		result = append(result, ReceivedLike{
			FromUser: model.PublicProfile{
				ID:            rec.FromUserID,
				FullName:      rec.FullName,
				ProfilePhotos: rec.ProfilePhotos,
				Introduction:  rec.Introduction,
				Gender:        rec.Gender,
				DateOfBirth:   rec.DateOfBirth,
				Orientation:   rec.Orientation,
			},
			Image:     rec.Image,
			Comment:   rec.Comment,
			CreatedAt: rec.CreatedAt,
		})
	}

	return result, nil
}
