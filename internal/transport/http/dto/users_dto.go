package dto

import (
	"time"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
)

// Wire names follow the mobile client's existing contract: Mongo-style
// `_id`, and `type` for orientation.

type UserResponse struct {
	ID                string    `json:"_id"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	DateOfBirth       string    `json:"dateOfBirth"`
	Location          string    `json:"location"`
	Gender            string    `json:"gender"`
	DatingPreferences []string  `json:"datingPreferences"`
	Type              string    `json:"type"`
	Photos            []string  `json:"photos"`
	ProfilePhotos     []string  `json:"profilePhotos"`
	Introduction      string    `json:"introduction"`
	CreatedAt         time.Time `json:"createdAt"`
}

type PublicProfileResponse struct {
	ID            string   `json:"_id"`
	FullName      string   `json:"fullName"`
	ProfilePhotos []string `json:"profilePhotos"`
	Introduction  string   `json:"introduction"`
	Gender        string   `json:"gender"`
	DateOfBirth   string   `json:"dateOfBirth"`
	Type          string   `json:"type"`
}

type RegisterRequest struct {
	FullName          string   `json:"fullName"`
	Email             string   `json:"email"`
	DateOfBirth       string   `json:"dateOfBirth"`
	Location          string   `json:"location"`
	Gender            string   `json:"gender"`
	DatingPreferences []string `json:"datingPreferences"`
	Type              string   `json:"type"`
	Photos            []string `json:"photos"`
	ProfilePhotos     []string `json:"profilePhotos"`
	Introduction      string   `json:"introduction"`
}

type RegisteredUserResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type RegisterResponse struct {
	Message string                 `json:"message"`
	Token   string                 `json:"token"`
	User    RegisteredUserResponse `json:"user"`
}

type UpdateUserRequest struct {
	FullName          *string   `json:"fullName"`
	DateOfBirth       *string   `json:"dateOfBirth"`
	Location          *string   `json:"location"`
	Gender            *string   `json:"gender"`
	DatingPreferences *[]string `json:"datingPreferences"`
	Type              *string   `json:"type"`
	Photos            *[]string `json:"photos"`
	ProfilePhotos     *[]string `json:"profilePhotos"`
	Introduction      *string   `json:"introduction"`
}

// CheckUserResponse is the likes-screen diagnostic: does the user
// exist and how many likes are waiting.
type CheckUserResponse struct {
	ID                 string `json:"_id"`
	FullName           string `json:"fullName"`
	HasReceivedLikes   bool   `json:"hasReceivedLikes"`
	ReceivedLikesCount int    `json:"receivedLikesCount"`
}

type UserEnvelopeResponse struct {
	User UserResponse `json:"user"`
}

type UpdatedUserResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}

func NewUserResponse(user model.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		FullName:          user.FullName,
		Email:             user.Email,
		DateOfBirth:       user.DateOfBirth,
		Location:          user.Location,
		Gender:            user.Gender,
		DatingPreferences: emptyIfNil(user.DatingPreferences),
		Type:              user.Orientation,
		Photos:            emptyIfNil(user.Photos),
		ProfilePhotos:     emptyIfNil(user.ProfilePhotos),
		Introduction:      user.Introduction,
		CreatedAt:         user.CreatedAt,
	}
}

func NewPublicProfileResponse(profile model.PublicProfile) PublicProfileResponse {
	return PublicProfileResponse{
		ID:            profile.ID,
		FullName:      profile.FullName,
		ProfilePhotos: emptyIfNil(profile.ProfilePhotos),
		Introduction:  profile.Introduction,
		Gender:        profile.Gender,
		DateOfBirth:   profile.DateOfBirth,
		Type:          profile.Orientation,
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
