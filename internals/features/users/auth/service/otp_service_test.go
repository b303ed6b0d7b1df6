package service

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	userModel "okoce_backend/internals/features/users/user/model"
)

func TestCheckOTP(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	u := &userModel.UserModel{}
	stampOTP(u, "123456", now, true)

	if err := CheckOTP(u, "123456", now.Add(9*time.Minute)); err != nil {
		t.Fatalf("valid otp: %v", err)
	}
	if err := CheckOTP(u, "654321", now.Add(time.Minute)); !errors.Is(err, ErrOTPWrong) {
		t.Fatalf("wrong otp: expected ErrOTPWrong, got %v", err)
	}
	// kedaluwarsa menang atas kode salah
	if err := CheckOTP(u, "654321", now.Add(11*time.Minute)); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expired otp: expected ErrOTPExpired, got %v", err)
	}

	clearOTP(u)
	if err := CheckOTP(u, "123456", now); !errors.Is(err, ErrOTPWrong) {
		t.Fatalf("cleared otp: expected ErrOTPWrong, got %v", err)
	}
}

func TestResendWait(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	last := now.Add(-15 * time.Second)

	if got := ResendWait(nil, now); got != 0 {
		t.Fatalf("never sent: got %d", got)
	}
	if got := ResendWait(&last, now); got != 45 {
		t.Fatalf("15s ago: got %d, want 45", got)
	}
	old := now.Add(-ResendCooldown)
	if got := ResendWait(&old, now); got != 0 {
		t.Fatalf("exactly 60s ago: got %d, want 0", got)
	}

	var fe *fiber.Error
	if !errors.As(errResendWait(45), &fe) || fe.Code != fiber.StatusTooManyRequests || fe.Message != "Harap tunggu 45 detik lagi" {
		t.Fatalf("unexpected wait error %v", fe)
	}
}
