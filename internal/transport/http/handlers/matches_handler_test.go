package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
	feedsvc "github.com/ahsasnagar11/typeshit3/internal/services/feed"
	matchessvc "github.com/ahsasnagar11/typeshit3/internal/services/matches"
	"github.com/ahsasnagar11/typeshit3/internal/transport/http/handlers"
)

type matchStoreStub struct {
	edges []string
}

func (s *matchStoreStub) CreateEdge(_ context.Context, _ pgx.Tx, userID, targetID string) (bool, error) {
	s.edges = append(s.edges, userID+"|"+targetID)
	return true, nil
}

func (s *matchStoreStub) ListMatchedProfiles(context.Context, string) ([]model.PublicProfile, error) {
	return []model.PublicProfile{}, nil
}

type likeStoreStub struct {
	deleted []string
}

func (s *likeStoreStub) DeleteReceived(_ context.Context, _ pgx.Tx, userID, fromUserID string) (bool, error) {
	s.deleted = append(s.deleted, userID+"|"+fromUserID)
	return true, nil
}

type matchUserStoreStub struct{}

func (matchUserStoreStub) Exists(context.Context, string) (bool, error) {
	return true, nil
}

func (matchUserStoreStub) ExistsTx(context.Context, pgx.Tx, string) (bool, error) {
	return true, nil
}

type feedUserStoreStub struct {
	candidates []model.User
}

func (s feedUserStoreStub) Exists(context.Context, string) (bool, error) {
	return true, nil
}

func (s feedUserStoreStub) ListCandidates(context.Context, string) ([]model.User, error) {
	return s.candidates, nil
}

func passthroughTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
	return fn(ctx, nil)
}

func newMatchesRouterForTest(matches *matchStoreStub, likes *likeStoreStub, allowDummy bool) chi.Router {
	matchesService := matchessvc.NewService(matchessvc.Dependencies{
		Matches:  matches,
		Likes:    likes,
		Users:    matchUserStoreStub{},
		TxRunner: passthroughTx,
	}, matchessvc.Config{AllowDummyIDs: allowDummy})

	feedService := feedsvc.NewService(feedUserStoreStub{candidates: []model.User{
		{ID: receiverID, FullName: "Robin"},
	}})

	handler := handlers.NewMatchesHandler(matchesService, feedService)

	r := chi.NewRouter()
	r.Post("/create-match", handler.Create)
	r.Post("/decline-match", handler.Decline)
	r.Get("/get-matches/{userId}", handler.List)
	r.Get("/matches", handler.Browse)
	return r
}

func TestCreateMatchOK(t *testing.T) {
	matches := &matchStoreStub{}
	likes := &likeStoreStub{}
	r := newMatchesRouterForTest(matches, likes, false)

	body := `{"currentUserId":"` + senderID + `","selectedUserId":"` + receiverID + `"}`
	req := httptest.NewRequest(http.MethodPost, "/create-match", strings.NewReader(body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, body %s", resp.Code, resp.Body.String())
	}
	if len(matches.edges) != 1 || len(likes.deleted) != 1 {
		t.Fatalf("match edge or like cleanup missing: edges=%v deleted=%v", matches.edges, likes.deleted)
	}

	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["message"] != "Match created successfully" {
		t.Fatalf("unexpected message: %q", payload["message"])
	}
}

func TestCreateMatchDummyBypass(t *testing.T) {
	matches := &matchStoreStub{}
	r := newMatchesRouterForTest(matches, &likeStoreStub{}, true)

	body := `{"currentUserId":"dummy-42","selectedUserId":"` + receiverID + `"}`
	req := httptest.NewRequest(http.MethodPost, "/create-match", strings.NewReader(body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("dummy match should report success: got %d", resp.Code)
	}
	if len(matches.edges) != 0 {
		t.Fatalf("dummy bypass must not create edges: %v", matches.edges)
	}
}

func TestCreateMatchInvalidIDFormat(t *testing.T) {
	r := newMatchesRouterForTest(&matchStoreStub{}, &likeStoreStub{}, false)

	body := `{"currentUserId":"not-a-uuid","selectedUserId":"` + receiverID + `"}`
	req := httptest.NewRequest(http.MethodPost, "/create-match", strings.NewReader(body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusBadRequest)
	}

	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["message"] != "Invalid user ID format" {
		t.Fatalf("unexpected message: %v", payload["message"])
	}
}

func TestDeclineMatchOK(t *testing.T) {
	likes := &likeStoreStub{}
	r := newMatchesRouterForTest(&matchStoreStub{}, likes, false)

	body := `{"currentUserId":"` + senderID + `","selectedUserId":"` + receiverID + `"}`
	req := httptest.NewRequest(http.MethodPost, "/decline-match", strings.NewReader(body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d", resp.Code)
	}
	if len(likes.deleted) != 1 {
		t.Fatalf("decline did not clear the like: %v", likes.deleted)
	}
}

func TestBrowseMatchesEchoesUserID(t *testing.T) {
	r := newMatchesRouterForTest(&matchStoreStub{}, &likeStoreStub{}, false)

	req := httptest.NewRequest(http.MethodGet, "/matches?userId="+senderID, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d, body %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Matches       []map[string]any `json:"matches"`
		CurrentUserID string           `json:"currentUserId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.CurrentUserID != senderID {
		t.Fatalf("currentUserId not echoed: %q", payload.CurrentUserID)
	}
	if len(payload.Matches) != 1 {
		t.Fatalf("expected one candidate, got %d", len(payload.Matches))
	}
}

func TestBrowseMatchesMissingParam(t *testing.T) {
	r := newMatchesRouterForTest(&matchStoreStub{}, &likeStoreStub{}, false)

	req := httptest.NewRequest(http.MethodGet, "/matches", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusBadRequest)
	}
}
