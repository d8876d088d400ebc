package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelbooking/authz"
	"hotelbooking/dto"
	apperrors "hotelbooking/errors"
	"hotelbooking/repository"
	"hotelbooking/services/logger"

	"google.golang.org/api/idtoken"
)

func newAuthService(t *testing.T) (*AuthService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	tokens := NewTokenService("test-secret", time.Hour)
	return NewAuthService(store, tokens, "client-id", logger.Discard{}), store
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	flags := &authz.ModeratorFlags{CanViewBookings: true}

	signed, err := tokens.GenerateToken(UserInfo{UserId: 7, Role: int(authz.RoleModerator), Moderator: flags})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	claims, err := tokens.ParseToken("Bearer " + signed)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	actor := claims.Actor()
	if actor.UserID != 7 || actor.Role != authz.RoleModerator {
		t.Errorf("Actor() = %+v, want user 7 moderator", actor)
	}
	if !actor.Can(authz.ViewAllBookings) || actor.Can(authz.ManageWorkers) {
		t.Errorf("Actor().Caps = %v, want view_all_bookings without manage_workers", actor.Caps.Names())
	}
}

func TestParseTokenRejects(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)
	other := NewTokenService("other-secret", time.Hour)
	expired := NewTokenService("test-secret", time.Nanosecond)

	foreign, _ := other.GenerateToken(UserInfo{UserId: 1})
	stale, _ := expired.GenerateToken(UserInfo{UserId: 1})
	time.Sleep(1100 * time.Millisecond)

	for name, tok := range map[string]string{
		"empty":         "",
		"garbage":       "not.a.token",
		"wrong secret":  foreign,
		"expired token": stale,
	} {
		if _, err := tokens.ParseToken(tok); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
			t.Errorf("ParseToken(%s) error = %v, want INVALID_TOKEN", name, err)
		}
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	user, err := svc.Register(ctx, dto.RegisterInput{Username: "alice", Email: "Alice@Example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Password == "secret1" {
		t.Errorf("password stored in plain text")
	}

	_, err = svc.Register(ctx, dto.RegisterInput{Username: "alice2", Email: "alice@example.com", Password: "secret2"})
	if !apperrors.HasCode(err, apperrors.ErrCodeUserExists) {
		t.Errorf("duplicate Register() error = %v, want USER_EXISTS", err)
	}

	resp, err := svc.Login(ctx, dto.LoginInput{Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.AccessToken == "" || resp.User.ID != user.ID || resp.User.RoleName != "guest" {
		t.Errorf("Login() = %+v", resp)
	}

	if _, err := svc.Login(ctx, dto.LoginInput{Email: "alice@example.com", Password: "wrong"}); !apperrors.HasCode(err, apperrors.ErrCodeInvalidPassword) {
		t.Errorf("Login(wrong password) error = %v, want INVALID_PASSWORD", err)
	}
	if _, err := svc.Login(ctx, dto.LoginInput{Email: "nobody@example.com", Password: "x"}); !apperrors.HasCode(err, apperrors.ErrCodeUnauthorized) {
		t.Errorf("Login(unknown) error = %v, want UNAUTHORIZED", err)
	}
}

func TestLoginWithGoogle(t *testing.T) {
	ctx := context.Background()
	svc, store := newAuthService(t)
	svc.WithGoogleVerifier(func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "good" || audience != "client-id" {
			return nil, errors.New("bad token")
		}
		return &idtoken.Payload{
			Subject: "google-123",
			Claims:  map[string]interface{}{"email": "g@example.com", "name": "Gina"},
		}, nil
	})

	first, err := svc.LoginWithGoogle(ctx, "good")
	if err != nil {
		t.Fatalf("LoginWithGoogle() error = %v", err)
	}
	second, err := svc.LoginWithGoogle(ctx, "good")
	if err != nil {
		t.Fatalf("second LoginWithGoogle() error = %v", err)
	}
	if first.User.ID != second.User.ID {
		t.Errorf("second sign-in created user %d, want %d", second.User.ID, first.User.ID)
	}
	if u, _ := store.GetUserByGoogleID(ctx, "google-123"); u == nil || u.Username != "Gina" {
		t.Errorf("stored Google user = %+v", u)
	}

	if _, err := svc.LoginWithGoogle(ctx, "bad"); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Errorf("LoginWithGoogle(bad) error = %v, want INVALID_TOKEN", err)
	}
}

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	if err := SeedDemo(ctx, store); err != nil {
		t.Fatalf("SeedDemo() error = %v", err)
	}

	svc := NewAuthService(store, NewTokenService("s", time.Hour), "", logger.Discard{})
	resp, err := svc.Login(ctx, dto.LoginInput{Email: "mod@example.com", Password: DemoPassword})
	if err != nil {
		t.Fatalf("Login(moderator) error = %v", err)
	}
	if resp.User.RoleName != "moderator" || len(resp.Capabilities) == 0 {
		t.Errorf("moderator login = %+v", resp)
	}

	hotels, _ := store.ListHotels(ctx)
	if len(hotels) != 2 {
		t.Errorf("len(hotels) = %d, want 2", len(hotels))
	}
}
