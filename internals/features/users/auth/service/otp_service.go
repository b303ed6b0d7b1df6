package service

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	userModel "okoce_backend/internals/features/users/user/model"
)

const (
	OTPTTL         = 10 * time.Minute
	ResendCooldown = 60 * time.Second
	MinPasswordLen = 5
)

// CheckOTP: kedaluwarsa dicek lebih dulu (410), lalu kecocokan kode (400).
func CheckOTP(u *userModel.UserModel, otp string, now time.Time) error {
	if u.OTPExpiry != nil && u.OTPExpiry.Before(now) {
		return ErrOTPExpired
	}
	if u.VerificationOTP == nil || *u.VerificationOTP != otp {
		return ErrOTPWrong
	}
	return nil
}

// ResendWait: sisa detik cooldown; 0 berarti boleh kirim ulang.
func ResendWait(lastSent *time.Time, now time.Time) int {
	if lastSent == nil {
		return 0
	}
	elapsed := now.Sub(*lastSent)
	if elapsed >= ResendCooldown {
		return 0
	}
	return int(ResendCooldown.Seconds()) - int(elapsed.Seconds())
}

func errResendWait(seconds int) error {
	return fiber.NewError(fiber.StatusTooManyRequests, fmt.Sprintf("Harap tunggu %d detik lagi", seconds))
}

// stampOTP mengisi OTP baru + expiry; lastSent ikut diisi kalau sent=true.
func stampOTP(u *userModel.UserModel, otp string, now time.Time, sent bool) {
	exp := now.Add(OTPTTL)
	u.VerificationOTP = &otp
	u.OTPExpiry = &exp
	if sent {
		ts := now
		u.LastOTPSent = &ts
	}
}

func clearOTP(u *userModel.UserModel) {
	u.VerificationOTP = nil
	u.OTPExpiry = nil
}
