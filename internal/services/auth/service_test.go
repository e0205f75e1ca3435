package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
	pgrepo "github.com/ahsasnagar11/typeshit3/internal/repo/postgres"
	redrepo "github.com/ahsasnagar11/typeshit3/internal/repo/redis"
	authsvc "github.com/ahsasnagar11/typeshit3/internal/services/auth"
)

const testUserID = "2d3e4f5a-6b7c-4d8e-9f0a-1b2c3d4e5f17"

type userStoreStub struct {
	users map[string]model.User
}

func (s userStoreStub) GetByEmail(_ context.Context, email string) (model.User, error) {
	user, ok := s.users[email]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

func TestLoginEmailUnknownIsUnauthorized(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	if _, err := svc.LoginEmail(context.Background(), "nobody@example.com"); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("unknown email should be unauthorized, got %v", err)
	}
}

func TestLoginEmailIssuesValidToken(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	res, err := svc.LoginEmail(ctx, "Someone@Example.com")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Me.ID != testUserID {
		t.Fatalf("unexpected user id: %s", res.Me.ID)
	}

	claims, err := svc.ValidateAccessToken(ctx, res.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if claims.UserID != testUserID {
		t.Fatalf("claims user id mismatch: %s", claims.UserID)
	}
}

func TestRefreshRotation(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	loginRes, err := svc.LoginEmail(ctx, "someone@example.com")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshRes, err := svc.Refresh(ctx, loginRes.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshRes.RefreshToken == loginRes.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}

	if _, err := svc.Refresh(ctx, loginRes.RefreshToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("old refresh token should be unauthorized, got err=%v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, refreshRes.AccessToken); err != nil {
		t.Fatalf("new access token validation failed: %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	loginRes, err := svc.LoginEmail(ctx, "someone@example.com")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.ValidateAccessToken(ctx, loginRes.AccessToken)
	if err != nil {
		t.Fatalf("validate access token before logout: %v", err)
	}

	if err := svc.Logout(ctx, claims.SID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, loginRes.AccessToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("access token should be unauthorized after logout, got err=%v", err)
	}
}

func newAuthServiceForTest(t *testing.T) (*authsvc.Service, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	sessions := redrepo.NewSessionRepo(client)
	jwtManager := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	svc := authsvc.NewService(authsvc.Dependencies{
		JWT:      jwtManager,
		Sessions: sessions,
		Users: userStoreStub{users: map[string]model.User{
			"someone@example.com": {ID: testUserID, Email: "someone@example.com"},
		}},
		RefreshTTL: 45 * 24 * time.Hour,
	})

	cleanup := func() {
		_ = client.Close()
		mini.Close()
	}

	return svc, cleanup
}
