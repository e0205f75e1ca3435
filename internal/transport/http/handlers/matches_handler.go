package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	feedsvc "github.com/ahsasnagar11/typeshit3/internal/services/feed"
	matchsvc "github.com/ahsasnagar11/typeshit3/internal/services/matches"
	"github.com/ahsasnagar11/typeshit3/internal/transport/http/dto"
	httperrors "github.com/ahsasnagar11/typeshit3/internal/transport/http/errors"
)

type MatchesHandler struct {
	matches *matchsvc.Service
	feed    *feedsvc.Service
}

func NewMatchesHandler(matches *matchsvc.Service, feed *feedsvc.Service) *MatchesHandler {
	return &MatchesHandler{
		matches: matches,
		feed:    feed,
	}
}

func (h *MatchesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.matches == nil {
		writeInternal(w, "MATCH_SERVICE_UNAVAILABLE", "match service is unavailable")
		return
	}

	var req dto.CreateMatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.matches.Create(r.Context(), req.CurrentUserID, req.SelectedUserID); err != nil {
		handleMatchError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, map[string]string{"message": "Match created successfully"})
}

func (h *MatchesHandler) Decline(w http.ResponseWriter, r *http.Request) {
	if h.matches == nil {
		writeInternal(w, "MATCH_SERVICE_UNAVAILABLE", "match service is unavailable")
		return
	}

	var req dto.DeclineMatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.matches.Decline(r.Context(), req.CurrentUserID, req.SelectedUserID); err != nil {
		handleMatchError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, map[string]string{"message": "Match declined successfully"})
}

// List serves the chat screen: full public profiles of matched users.
func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.matches == nil {
		writeInternal(w, "MATCH_SERVICE_UNAVAILABLE", "match service is unavailable")
		return
	}

	userID := strings.TrimSpace(chi.URLParam(r, "userId"))

	profiles, err := h.matches.ListForUser(r.Context(), userID)
	if err != nil {
		handleMatchError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewMatchesResponse(profiles))
}

// Browse serves the home feed: every other profile plus the
// requester's id echoed back.
func (h *MatchesHandler) Browse(w http.ResponseWriter, r *http.Request) {
	if h.feed == nil {
		writeInternal(w, "FEED_SERVICE_UNAVAILABLE", "feed service is unavailable")
		return
	}

	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "Missing userId parameter")
		return
	}

	candidates, err := h.feed.Candidates(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, feedsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "Invalid userId format")
		case errors.Is(err, feedsvc.ErrNotFound):
			writeNotFound(w, "USER_NOT_FOUND", "User not found")
		default:
			writeInternal(w, "INTERNAL_ERROR", "internal server error")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewBrowseMatchesResponse(candidates, userID))
}

func handleMatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, matchsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "Invalid user ID format")
	case errors.Is(err, matchsvc.ErrNotFound):
		writeNotFound(w, "USER_NOT_FOUND", "One or more users not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "Error creating a match")
	}
}
