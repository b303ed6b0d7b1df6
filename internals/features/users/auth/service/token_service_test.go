package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	userModel "okoce_backend/internals/features/users/user/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	user := userModel.UserModel{ID: uuid.New(), Name: "Siti", Role: userModel.RolePanitia, OkoceID: "12345678"}
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	raw, exp, err := IssueAccessToken("secret", user, now, time.Hour)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if !exp.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected exp %v", exp)
	}

	claims, err := ParseAccessToken("secret", raw, now.Add(59*time.Minute))
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != userModel.RolePanitia || claims.Name != "Siti" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if !claims.ExpiresAt.Equal(exp) {
		t.Fatalf("expected exp %v, got %v", exp, claims.ExpiresAt)
	}

	if _, err := ParseAccessToken("other-secret", raw, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}

	if _, err := ParseAccessToken("secret", raw, now.Add(61*time.Minute)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after exp, got %v", err)
	}

	if _, _, err := IssueAccessToken("", user, now, time.Hour); err == nil {
		t.Fatalf("expected error without secret")
	}
}
