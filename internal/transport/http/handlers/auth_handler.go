package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	authsvc "github.com/ahsasnagar11/typeshit3/internal/services/auth"
	userssvc "github.com/ahsasnagar11/typeshit3/internal/services/users"
	"github.com/ahsasnagar11/typeshit3/internal/transport/http/dto"
	httperrors "github.com/ahsasnagar11/typeshit3/internal/transport/http/errors"
)

type AuthHandler struct {
	auth  *authsvc.Service
	users *userssvc.Service
}

func NewAuthHandler(auth *authsvc.Service, users *userssvc.Service) *AuthHandler {
	return &AuthHandler{
		auth:  auth,
		users: users,
	}
}

// Register creates the profile and logs the fresh account straight in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil || h.users == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	user, err := h.users.Create(r.Context(), userssvc.CreateInput{
		FullName:          req.FullName,
		Email:             req.Email,
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
		var ve userssvc.ValidationError
		switch {
		case errors.As(err, &ve):
			writeValidationFields(w, ve.Fields)
		case errors.Is(err, userssvc.ErrConflict):
			writeConflict(w, "USER_EXISTS", "a user with this email already exists")
		default:
			writeInternal(w, "INTERNAL_ERROR", "error registering user")
		}
		return
	}

	res, err := h.auth.IssueForUser(r.Context(), user.ID, authsvc.RoleUser)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "error registering user")
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.RegisterResponse{
		Message: "User registered successfully",
		Token:   res.AccessToken,
		User: dto.RegisteredUserResponse{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
		},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.auth.LoginEmail(r.Context(), req.Email)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LoginResponse{Token: res.AccessToken})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.RefreshResponse{
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	if err := h.auth.Logout(r.Context(), identity.SID); err != nil {
		handleAuthError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{OK: true})
}

func handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authsvc.ErrInvalidInput):
		writeBadRequest(w, "INVALID_REQUEST", "request validation failed")
	case errors.Is(err, authsvc.ErrUnauthorized):
		writeUnauthorized(w, "UNAUTHORIZED", "Invalid email")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeValidationFields(w http.ResponseWriter, fields []string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{
		Code:    "VALIDATION_ERROR",
		Message: "Missing required fields",
		Fields:  fields,
	})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeConflict(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}
