package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
	"github.com/ahsasnagar11/typeshit3/internal/pkg/validate"
	pgrepo "github.com/ahsasnagar11/typeshit3/internal/repo/postgres"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("user not found")
	ErrConflict        = errors.New("email already registered")
	ErrDependenciesNil = errors.New("user dependencies are not configured")
)

// ValidationError names the missing registration fields.
type ValidationError struct {
	Fields []string
}

func (e ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Fields, ", ")
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type UserStore interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	GetByID(ctx context.Context, userID string) (model.User, error)
	Update(ctx context.Context, userID string, update pgrepo.UserUpdate) (model.User, error)
}

type CreateInput struct {
	FullName          string
	Email             string
	DateOfBirth       string
	Gender            string
	Orientation       string
	DatingPreferences []string
	Location          string
	Introduction      string
	Photos            []string
	ProfilePhotos     []string
}

type UpdateInput struct {
	FullName          *string
	DateOfBirth       *string
	Gender            *string
	Orientation       *string
	DatingPreferences *[]string
	Location          *string
	Introduction      *string
	Photos            *[]string
	ProfilePhotos     *[]string
}

type Service struct {
	users UserStore
}

func NewService(users UserStore) *Service {
	return &Service{users: users}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (model.User, error) {
	if s.users == nil {
		return model.User{}, ErrDependenciesNil
	}

	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"fullName", in.FullName},
		{"email", in.Email},
		{"dateOfBirth", in.DateOfBirth},
		{"gender", in.Gender},
		{"orientation", in.Orientation},
	} {
		if !validate.Required(field.value) {
			missing = append(missing, field.name)
		}
	}
	if len(in.DatingPreferences) == 0 {
		missing = append(missing, "datingPreferences")
	}
	if len(missing) > 0 {
		return model.User{}, ValidationError{Fields: missing}
	}

	user := model.User{
		ID:                uuid.NewString(),
		FullName:          strings.TrimSpace(in.FullName),
		Email:             strings.ToLower(strings.TrimSpace(in.Email)),
		DateOfBirth:       strings.TrimSpace(in.DateOfBirth),
		Gender:            in.Gender,
		Orientation:       in.Orientation,
		DatingPreferences: in.DatingPreferences,
		Location:          in.Location,
		Introduction:      in.Introduction,
		Photos:            in.Photos,
		ProfilePhotos:     in.ProfilePhotos,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, pgrepo.ErrEmailTaken) {
			return model.User{}, ErrConflict
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, userID string) (model.User, error) {
	if s.users == nil {
		return model.User{}, ErrDependenciesNil
	}

	userID = strings.TrimSpace(userID)
	if !validate.UserID(userID) {
		return model.User{}, ErrValidation
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (model.User, error) {
	if s.users == nil {
		return model.User{}, ErrDependenciesNil
	}

	userID = strings.TrimSpace(userID)
	if !validate.UserID(userID) {
		return model.User{}, ErrValidation
	}

	user, err := s.users.Update(ctx, userID, pgrepo.UserUpdate{
		FullName:          in.FullName,
		DateOfBirth:       in.DateOfBirth,
		Gender:            in.Gender,
		Orientation:       in.Orientation,
		DatingPreferences: in.DatingPreferences,
		Location:          in.Location,
		Introduction:      in.Introduction,
		Photos:            in.Photos,
		ProfilePhotos:     in.ProfilePhotos,
	})
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}
