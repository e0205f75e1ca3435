package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	likessvc "github.com/ahsasnagar11/typeshit3/internal/services/likes"
	userssvc "github.com/ahsasnagar11/typeshit3/internal/services/users"
	"github.com/ahsasnagar11/typeshit3/internal/transport/http/dto"
	httperrors "github.com/ahsasnagar11/typeshit3/internal/transport/http/errors"
)

type UsersHandler struct {
	service *userssvc.Service
	likes   *likessvc.Service
}

func NewUsersHandler(service *userssvc.Service, likes *likessvc.Service) *UsersHandler {
	return &UsersHandler{
		service: service,
		likes:   likes,
	}
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "USER_SERVICE_UNAVAILABLE", "user service is unavailable")
		return
	}

	userID := strings.TrimSpace(chi.URLParam(r, "userId"))

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		handleUserError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UserEnvelopeResponse{User: dto.NewUserResponse(user)})
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "USER_SERVICE_UNAVAILABLE", "user service is unavailable")
		return
	}

	userID := strings.TrimSpace(chi.URLParam(r, "userId"))

	var req dto.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	user, err := h.service.Update(r.Context(), userID, userssvc.UpdateInput{
		FullName:          req.FullName,
		DateOfBirth:       req.DateOfBirth,
		Gender:            req.Gender,
		Orientation:       req.Type,
		DatingPreferences: req.DatingPreferences,
		Location:          req.Location,
		Introduction:      req.Introduction,
		Photos:            req.Photos,
		ProfilePhotos:     req.ProfilePhotos,
	})
	if err != nil {
		handleUserError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UpdatedUserResponse{
		User:    dto.NewUserResponse(user),
		Message: "User updated successfully",
	})
}

// CheckUser is the likes-screen diagnostic: existence plus how many
// likes are waiting, nothing else from the profile.
func (h *UsersHandler) CheckUser(w http.ResponseWriter, r *http.Request) {
	if h.service == nil || h.likes == nil {
		writeInternal(w, "USER_SERVICE_UNAVAILABLE", "user service is unavailable")
		return
	}

	userID := strings.TrimSpace(chi.URLParam(r, "userId"))

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		handleUserError(w, err)
		return
	}

	likes, err := h.likes.ListReceived(r.Context(), user.ID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "Error checking user")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.CheckUserResponse{
		ID:                 user.ID,
		FullName:           user.FullName,
		HasReceivedLikes:   len(likes) > 0,
		ReceivedLikesCount: len(likes),
	})
}

func handleUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, userssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "Invalid user ID format")
	case errors.Is(err, userssvc.ErrNotFound):
		writeNotFound(w, "USER_NOT_FOUND", "User not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
