package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	chatsvc "github.com/ahsasnagar11/typeshit3/internal/services/chat"
	"github.com/ahsasnagar11/typeshit3/internal/transport/http/dto"
	httperrors "github.com/ahsasnagar11/typeshit3/internal/transport/http/errors"
)

type ChatHandler struct {
	service *chatsvc.Service
}

func NewChatHandler(service *chatsvc.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

// Send stores one message and returns the authoritative record. The
// polling client reconciles its optimistic entry against it.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CHAT_SERVICE_UNAVAILABLE", "chat service is unavailable")
		return
	}

	var req dto.SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	var timestamp time.Time
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	msg, err := h.service.Send(r.Context(), chatsvc.SendInput{
		SenderID:    req.SenderID,
		ReceiverID:  req.ReceiverID,
		Text:        req.Message,
		ClientMsgID: req.ClientMsgID,
		Timestamp:   timestamp,
	})
	if err != nil {
		var ve chatsvc.ValidationError
		switch {
		case errors.As(err, &ve):
			writeValidationFields(w, ve.Fields)
		case errors.Is(err, chatsvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "Missing required fields")
		default:
			if tf, ok := chatsvc.IsTooFast(err); ok {
				httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
					Code:          "TOO_FAST",
					Message:       "too many messages, slow down",
					RetryAfterSec: tf.RetryAfter(),
				})
				return
			}
			writeInternal(w, "INTERNAL_ERROR", "Error sending message")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.SendMessageResponse{
		Message: "Message sent successfully",
		Chat:    dto.NewMessageResponse(msg),
	})
}

// Messages returns the conversation between senderId and receiverId as
// a bare array, ascending by timestamp.
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CHAT_SERVICE_UNAVAILABLE", "chat service is unavailable")
		return
	}

	senderID := strings.TrimSpace(r.URL.Query().Get("senderId"))
	receiverID := strings.TrimSpace(r.URL.Query().Get("receiverId"))

	messages, err := h.service.History(r.Context(), senderID, receiverID)
	if err != nil {
		if errors.Is(err, chatsvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "Missing senderId or receiverId")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "Could not fetch messages")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.NewMessageListResponse(messages))
}
