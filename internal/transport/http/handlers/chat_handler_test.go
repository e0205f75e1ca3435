package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
	chatsvc "github.com/ahsasnagar11/typeshit3/internal/services/chat"
	"github.com/ahsasnagar11/typeshit3/internal/transport/http/handlers"
)

const (
	senderID   = "7b0d5c2e-4c1f-4a8f-9b5e-2f1d3c4b5a69"
	receiverID = "1c9e8d7f-6a5b-4c3d-8e2f-1a0b9c8d7e61"
)

type memoryMessageStore struct {
	messages []model.Message
	seq      int64
}

func (s *memoryMessageStore) Insert(_ context.Context, msg model.Message) (model.Message, error) {
	s.seq++
	msg.Seq = s.seq
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *memoryMessageStore) ListConversation(_ context.Context, userA, userB string) ([]model.Message, error) {
	out := make([]model.Message, 0, len(s.messages))
	for _, msg := range s.messages {
		if (msg.SenderID == userA && msg.ReceiverID == userB) || (msg.SenderID == userB && msg.ReceiverID == userA) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func newChatRouterForTest(store *memoryMessageStore) chi.Router {
	svc := chatsvc.NewService(chatsvc.Dependencies{Messages: store})
	handler := handlers.NewChatHandler(svc)

	r := chi.NewRouter()
	r.Post("/chats", handler.Send)
	r.Get("/messages", handler.Messages)
	return r
}

func TestSendMessageCreated(t *testing.T) {
	r := newChatRouterForTest(&memoryMessageStore{})

	body := `{"senderId":"` + senderID + `","receiverId":"` + receiverID + `","message":"hello","clientMsgId":"abc-1"}`
	req := httptest.NewRequest(http.MethodPost, "/chats", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got %d want %d, body %s", resp.Code, http.StatusCreated, resp.Body.String())
	}

	var payload struct {
		Message string `json:"message"`
		Chat    struct {
			ID          string `json:"_id"`
			ClientMsgID string `json:"clientMsgId"`
			Text        string `json:"message"`
		} `json:"chat"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Message != "Message sent successfully" {
		t.Fatalf("unexpected message: %q", payload.Message)
	}
	if payload.Chat.ID == "" || payload.Chat.Text != "hello" {
		t.Fatalf("unexpected chat record: %+v", payload.Chat)
	}
	if payload.Chat.ClientMsgID != "abc-1" {
		t.Fatalf("clientMsgId not echoed: %q", payload.Chat.ClientMsgID)
	}
}

func TestSendMessageMissingField(t *testing.T) {
	r := newChatRouterForTest(&memoryMessageStore{})

	body := `{"senderId":"` + senderID + `","receiverId":"` + receiverID + `"}`
	req := httptest.NewRequest(http.MethodPost, "/chats", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusBadRequest)
	}

	var payload struct {
		Fields []string `json:"fields"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Fields) != 1 || payload.Fields[0] != "message" {
		t.Fatalf("expected missing message field, got %v", payload.Fields)
	}
}

func TestMessagesReturnsBareArray(t *testing.T) {
	store := &memoryMessageStore{}
	r := newChatRouterForTest(store)

	for _, text := range []string{"one", "two"} {
		body := `{"senderId":"` + senderID + `","receiverId":"` + receiverID + `","message":"` + text + `"}`
		req := httptest.NewRequest(http.MethodPost, "/chats", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusCreated {
			t.Fatalf("seed send failed: %d", resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/messages?senderId="+senderID+"&receiverId="+receiverID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d", resp.Code)
	}

	var messages []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &messages); err != nil {
		t.Fatalf("response should be a bare array: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
}

func TestMessagesMissingParam(t *testing.T) {
	r := newChatRouterForTest(&memoryMessageStore{})

	req := httptest.NewRequest(http.MethodGet, "/messages?senderId="+senderID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusBadRequest)
	}
}
