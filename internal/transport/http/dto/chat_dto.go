package dto

import (
	"time"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
)

type SendMessageRequest struct {
	SenderID    string `json:"senderId"`
	ReceiverID  string `json:"receiverId"`
	Message     string `json:"message"`
	ClientMsgID string `json:"clientMsgId"`
	// Timestamp is the client clock reading, RFC 3339. Optional.
	Timestamp *time.Time `json:"timestamp"`
}

type MessageResponse struct {
	ID          string    `json:"_id"`
	ClientMsgID string    `json:"clientMsgId,omitempty"`
	SenderID    string    `json:"senderId"`
	ReceiverID  string    `json:"receiverId"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}

type SendMessageResponse struct {
	Message string          `json:"message"`
	Chat    MessageResponse `json:"chat"`
}

func NewMessageResponse(msg model.Message) MessageResponse {
	return MessageResponse{
		ID:          msg.ID,
		ClientMsgID: msg.ClientMsgID,
		SenderID:    msg.SenderID,
		ReceiverID:  msg.ReceiverID,
		Message:     msg.Body,
		Timestamp:   msg.Timestamp,
	}
}

func NewMessageListResponse(messages []model.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		out = append(out, NewMessageResponse(msg))
	}
	return out
}
