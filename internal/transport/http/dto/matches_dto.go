package dto

import "github.com/ahsasnagar11/typeshit3/internal/domain/model"

type CreateMatchRequest struct {
	CurrentUserID  string `json:"currentUserId"`
	SelectedUserID string `json:"selectedUserId"`
}

type DeclineMatchRequest struct {
	CurrentUserID  string `json:"currentUserId"`
	SelectedUserID string `json:"selectedUserId"`
}

type MatchesResponse struct {
	Matches []PublicProfileResponse `json:"matches"`
}

// BrowseMatchesResponse is the home feed payload: every other profile
// plus the requester's id echoed back.
type BrowseMatchesResponse struct {
	Matches       []UserResponse `json:"matches"`
	CurrentUserID string         `json:"currentUserId"`
}

func NewMatchesResponse(profiles []model.PublicProfile) MatchesResponse {
	out := make([]PublicProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, NewPublicProfileResponse(p))
	}
	return MatchesResponse{Matches: out}
}

func NewBrowseMatchesResponse(users []model.User, currentUserID string) BrowseMatchesResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return BrowseMatchesResponse{
		Matches:       out,
		CurrentUserID: currentUserID,
	}
}
