package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
	pgrepo "github.com/ahsasnagar11/typeshit3/internal/repo/postgres"
	likessvc "github.com/ahsasnagar11/typeshit3/internal/services/likes"
	userssvc "github.com/ahsasnagar11/typeshit3/internal/services/users"
	"github.com/ahsasnagar11/typeshit3/internal/transport/http/handlers"
)

type usersStoreStub struct {
	users map[string]model.User
}

func (s *usersStoreStub) Create(_ context.Context, user model.User) (model.User, error) {
	return user, nil
}

func (s *usersStoreStub) GetByID(_ context.Context, userID string) (model.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

func (s *usersStoreStub) Update(_ context.Context, userID string, _ pgrepo.UserUpdate) (model.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

type likesInboxStub struct {
	records []pgrepo.ReceivedLikeRecord
}

func (s *likesInboxStub) InsertReceived(context.Context, pgx.Tx, string, string, string, string) error {
	return nil
}

func (s *likesInboxStub) InsertOutbound(context.Context, pgx.Tx, string, string) error {
	return nil
}

func (s *likesInboxStub) ListReceivedWithProfiles(context.Context, string) ([]pgrepo.ReceivedLikeRecord, error) {
	return s.records, nil
}

type likesUserStub struct{}

func (likesUserStub) Exists(context.Context, string) (bool, error) {
	return true, nil
}

func newUsersRouterForTest(users *usersStoreStub, inbox *likesInboxStub) chi.Router {
	usersService := userssvc.NewService(users)
	likesService := likessvc.NewService(likessvc.Dependencies{
		Likes:    inbox,
		Users:    likesUserStub{},
		TxRunner: passthroughTx,
	})
	handler := handlers.NewUsersHandler(usersService, likesService)

	r := chi.NewRouter()
	r.Get("/users/{userId}", handler.Get)
	r.Get("/check-user/{userId}", handler.CheckUser)
	return r
}

func TestCheckUserReportsLikeCounts(t *testing.T) {
	users := &usersStoreStub{users: map[string]model.User{
		senderID: {ID: senderID, FullName: "Robin", Email: "robin@example.com"},
	}}
	inbox := &likesInboxStub{records: []pgrepo.ReceivedLikeRecord{
		{FromUserID: receiverID, FullName: "Sam"},
		{FromUserID: receiverID, FullName: "Alex"},
	}}
	r := newUsersRouterForTest(users, inbox)

	req := httptest.NewRequest(http.MethodGet, "/check-user/"+senderID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, body %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		ID                 string `json:"_id"`
		FullName           string `json:"fullName"`
		HasReceivedLikes   bool   `json:"hasReceivedLikes"`
		ReceivedLikesCount int    `json:"receivedLikesCount"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.ID != senderID || payload.FullName != "Robin" {
		t.Fatalf("unexpected identity fields: %+v", payload)
	}
	if !payload.HasReceivedLikes || payload.ReceivedLikesCount != 2 {
		t.Fatalf("like counts wrong: %+v", payload)
	}
}

func TestCheckUserEmptyInbox(t *testing.T) {
	users := &usersStoreStub{users: map[string]model.User{
		senderID: {ID: senderID, FullName: "Robin"},
	}}
	r := newUsersRouterForTest(users, &likesInboxStub{})

	req := httptest.NewRequest(http.MethodGet, "/check-user/"+senderID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d", resp.Code)
	}

	var payload struct {
		HasReceivedLikes   bool `json:"hasReceivedLikes"`
		ReceivedLikesCount int  `json:"receivedLikesCount"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.HasReceivedLikes || payload.ReceivedLikesCount != 0 {
		t.Fatalf("empty inbox misreported: %+v", payload)
	}
}

func TestCheckUserErrors(t *testing.T) {
	r := newUsersRouterForTest(&usersStoreStub{users: map[string]model.User{}}, &likesInboxStub{})

	req := httptest.NewRequest(http.MethodGet, "/check-user/"+senderID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("unknown user: got %d want %d", resp.Code, http.StatusNotFound)
	}

	req = httptest.NewRequest(http.MethodGet, "/check-user/not-a-uuid", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("malformed id: got %d want %d", resp.Code, http.StatusBadRequest)
	}
}
