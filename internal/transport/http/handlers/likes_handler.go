package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	likessvc "github.com/ahsasnagar11/typeshit3/internal/services/likes"
	"github.com/ahsasnagar11/typeshit3/internal/transport/http/dto"
	httperrors "github.com/ahsasnagar11/typeshit3/internal/transport/http/errors"
)

type LikesHandler struct {
	service *likessvc.Service
}

func NewLikesHandler(service *likessvc.Service) *LikesHandler {
	return &LikesHandler{service: service}
}

func (h *LikesHandler) LikeProfile(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LIKES_SERVICE_UNAVAILABLE", "likes service is unavailable")
		return
	}

	var req dto.LikeProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	err := h.service.LikeProfile(r.Context(), likessvc.LikeInput{
		UserID:      req.UserID,
		LikedUserID: req.LikedUserID,
		Image:       req.Image,
		Comment:     req.Comment,
	})
	if err != nil {
		if errors.Is(err, likessvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "Missing required fields")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
		return
	}

	httperrors.Write(w, http.StatusOK, map[string]string{"message": "Profile liked successfully"})
}

func (h *LikesHandler) ReceivedLikes(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LIKES_SERVICE_UNAVAILABLE", "likes service is unavailable")
		return
	}

	userID := strings.TrimSpace(chi.URLParam(r, "userId"))

	likes, err := h.service.ListReceived(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, likessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "Invalid user ID format")
		case errors.Is(err, likessvc.ErrNotFound):
			writeNotFound(w, "USER_NOT_FOUND", "User not found")
		default:
			writeInternal(w, "INTERNAL_ERROR", "internal server error")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewReceivedLikesResponse(likes))
}
