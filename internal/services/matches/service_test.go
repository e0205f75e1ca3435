package matches_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
	matchessvc "github.com/ahsasnagar11/typeshit3/internal/services/matches"
)

const (
	currentID  = "5a4b3c2d-1e0f-4a9b-8c7d-6e5f4a3b2c13"
	selectedID = "8d7c6b5a-4f3e-4d2c-9b1a-0f9e8d7c6b54"
)

type matchStoreStub struct {
	edges    []string
	profiles []model.PublicProfile
}

func (s *matchStoreStub) CreateEdge(_ context.Context, _ pgx.Tx, userID, targetID string) (bool, error) {
	s.edges = append(s.edges, userID+"|"+targetID)
	return true, nil
}

func (s *matchStoreStub) ListMatchedProfiles(context.Context, string) ([]model.PublicProfile, error) {
	return s.profiles, nil
}

type likeStoreStub struct {
	deleted []string
}

func (s *likeStoreStub) DeleteReceived(_ context.Context, _ pgx.Tx, userID, fromUserID string) (bool, error) {
	s.deleted = append(s.deleted, userID+"|"+fromUserID)
	return true, nil
}

type userStoreStub struct {
	exists bool
	calls  int
}

func (s *userStoreStub) Exists(context.Context, string) (bool, error) {
	s.calls++
	return s.exists, nil
}

func (s *userStoreStub) ExistsTx(context.Context, pgx.Tx, string) (bool, error) {
	s.calls++
	return s.exists, nil
}

func passthroughTx(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
	return fn(ctx, nil)
}

func newServiceForTest(matches *matchStoreStub, likes *likeStoreStub, users *userStoreStub, allowDummy bool) *matchessvc.Service {
	return matchessvc.NewService(matchessvc.Dependencies{
		Matches:  matches,
		Likes:    likes,
		Users:    users,
		TxRunner: passthroughTx,
	}, matchessvc.Config{AllowDummyIDs: allowDummy})
}

func TestCreateMatchClearsReceivedLike(t *testing.T) {
	matches := &matchStoreStub{}
	likes := &likeStoreStub{}
	users := &userStoreStub{exists: true}
	svc := newServiceForTest(matches, likes, users, false)

	if err := svc.Create(context.Background(), currentID, selectedID); err != nil {
		t.Fatalf("create match: %v", err)
	}

	if len(matches.edges) != 1 {
		t.Fatalf("expected one match edge, got %v", matches.edges)
	}
	if len(likes.deleted) != 1 || likes.deleted[0] != currentID+"|"+selectedID {
		t.Fatalf("received like not cleared: %v", likes.deleted)
	}
}

func TestCreateMatchDummyBypassSkipsStore(t *testing.T) {
	matches := &matchStoreStub{}
	likes := &likeStoreStub{}
	users := &userStoreStub{exists: true}
	svc := newServiceForTest(matches, likes, users, true)

	if err := svc.Create(context.Background(), "dummy-123", selectedID); err != nil {
		t.Fatalf("dummy match should succeed: %v", err)
	}

	if len(matches.edges) != 0 || len(likes.deleted) != 0 || users.calls != 0 {
		t.Fatalf("dummy bypass touched the store")
	}
}

func TestCreateMatchDummyRejectedWhenDisabled(t *testing.T) {
	svc := newServiceForTest(&matchStoreStub{}, &likeStoreStub{}, &userStoreStub{exists: true}, false)

	if err := svc.Create(context.Background(), "dummy-123", selectedID); !errors.Is(err, matchessvc.ErrValidation) {
		t.Fatalf("expected validation error with bypass disabled, got %v", err)
	}
}

func TestCreateMatchInvalidID(t *testing.T) {
	svc := newServiceForTest(&matchStoreStub{}, &likeStoreStub{}, &userStoreStub{exists: true}, true)

	if err := svc.Create(context.Background(), "not-a-uuid", selectedID); !errors.Is(err, matchessvc.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.Create(context.Background(), currentID, currentID); !errors.Is(err, matchessvc.ErrValidation) {
		t.Fatalf("expected validation error on self-match, got %v", err)
	}
}

func TestCreateMatchUnknownUser(t *testing.T) {
	svc := newServiceForTest(&matchStoreStub{}, &likeStoreStub{}, &userStoreStub{exists: false}, false)

	if err := svc.Create(context.Background(), currentID, selectedID); !errors.Is(err, matchessvc.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeclineRemovesLikeWithoutMatch(t *testing.T) {
	matches := &matchStoreStub{}
	likes := &likeStoreStub{}
	svc := newServiceForTest(matches, likes, &userStoreStub{exists: true}, false)

	if err := svc.Decline(context.Background(), currentID, selectedID); err != nil {
		t.Fatalf("decline: %v", err)
	}

	if len(matches.edges) != 0 {
		t.Fatalf("decline must not create a match edge")
	}
	if len(likes.deleted) != 1 {
		t.Fatalf("decline did not clear the received like")
	}
}

func TestListForUser(t *testing.T) {
	matches := &matchStoreStub{profiles: []model.PublicProfile{{ID: selectedID, FullName: "Robin"}}}
	svc := newServiceForTest(matches, &likeStoreStub{}, &userStoreStub{exists: true}, false)

	profiles, err := svc.ListForUser(context.Background(), currentID)
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(profiles) != 1 || profiles[0].FullName != "Robin" {
		t.Fatalf("unexpected profiles: %+v", profiles)
	}
}
