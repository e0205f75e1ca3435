package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/ahsasnagar11/typeshit3/internal/pkg/validate"
	pgrepo "github.com/ahsasnagar11/typeshit3/internal/repo/postgres"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("user not found")
	ErrDependenciesNil = errors.New("media dependencies are not configured")
)

type UserStore interface {
	AppendProfilePhoto(ctx context.Context, userID, url string) error
}

type UploadInput struct {
	UserID      string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Service struct {
	storage *S3Storage
	users   UserStore
}

func NewService(storage *S3Storage, users UserStore) *Service {
	return &Service{
		storage: storage,
		users:   users,
	}
}

// UploadPhoto stores the object and appends its presigned URL to the
// user's profile photos.
func (s *Service) UploadPhoto(ctx context.Context, in UploadInput) (string, error) {
	if s.storage == nil || s.users == nil {
		return "", ErrDependenciesNil
	}

	if !validate.UserID(in.UserID) {
		return "", ErrValidation
	}
	if in.Body == nil || in.Size <= 0 {
		return "", ErrValidation
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return "", err
	}

	key := photoKey(in.UserID, in.Filename)
	if err := s.storage.PutPhoto(ctx, key, in.Body, in.Size, in.ContentType); err != nil {
		return "", err
	}

	url, err := s.storage.PresignGet(ctx, key, signedURLTTL)
	if err != nil {
		return "", err
	}

	if err := s.users.AppendProfilePhoto(ctx, strings.TrimSpace(in.UserID), url); err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("attach photo to profile: %w", err)
	}

	return url, nil
}

func photoKey(userID, filename string) string {
	ext := path.Ext(filename)
	return "photos/" + strings.TrimSpace(userID) + "/" + uuid.NewString() + ext
}
