package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/ahsasnagar11/typeshit3/internal/services/auth"
	mediasvc "github.com/ahsasnagar11/typeshit3/internal/services/media"
	"github.com/ahsasnagar11/typeshit3/internal/transport/http/dto"
	httperrors "github.com/ahsasnagar11/typeshit3/internal/transport/http/errors"
)

const maxPhotoUploadBytes = 10 << 20

type MediaHandler struct {
	service *mediasvc.Service
}

func NewMediaHandler(service *mediasvc.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

// UploadPhoto accepts a multipart "photo" part, stores it and appends
// the resulting URL to the caller's profile photos.
func (h *MediaHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadBytes)
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "photo file is required")
		return
	}
	defer file.Close()

	url, err := h.service.UploadPhoto(r.Context(), mediasvc.UploadInput{
		UserID:      identity.UserID,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		switch {
		case errors.Is(err, mediasvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid photo upload")
		case errors.Is(err, mediasvc.ErrNotFound):
			writeNotFound(w, "USER_NOT_FOUND", "User not found")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to upload photo")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.MediaUploadResponse{URL: url})
}
