package dto

import (
	likessvc "github.com/ahsasnagar11/typeshit3/internal/services/likes"
)

type LikeProfileRequest struct {
	UserID      string `json:"userId"`
	LikedUserID string `json:"likedUserId"`
	Image       string `json:"image"`
	Comment     string `json:"comment"`
}

// ReceivedLikeResponse mirrors the populated Mongo shape the client
// renders: the liker's profile under `userId`.
type ReceivedLikeResponse struct {
	UserID  PublicProfileResponse `json:"userId"`
	Image   string                `json:"image"`
	Comment string                `json:"comment,omitempty"`
}

type ReceivedLikesResponse struct {
	ReceivedLikes []ReceivedLikeResponse `json:"receivedLikes"`
}

func NewReceivedLikesResponse(likes []likessvc.ReceivedLike) ReceivedLikesResponse {
	out := make([]ReceivedLikeResponse, 0, len(likes))
	for _, like := range likes {
		out = append(out, ReceivedLikeResponse{
			UserID:  NewPublicProfileResponse(like.FromUser),
			Image:   like.Image,
			Comment: like.Comment,
		})
	}
	return ReceivedLikesResponse{ReceivedLikes: out}
}
