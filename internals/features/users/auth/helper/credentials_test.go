package helper

import (
	"testing"
)

func TestGenerateOTPAndOkoceID(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("GenerateOTP: %v", err)
		}
		if len(otp) != OTPLength {
			t.Fatalf("expected %d digits, got %q", OTPLength, otp)
		}
		for _, r := range otp {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in otp %q", otp)
			}
		}

		id, err := GenerateOkoceID()
		if err != nil {
			t.Fatalf("GenerateOkoceID: %v", err)
		}
		if len(id) != OkoceIDLength || id[0] == '0' {
			t.Fatalf("invalid okoce id %q", id)
		}
	}
}

func TestPasswordHash(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("rahasia123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(h, "rahasia123") {
		t.Fatalf("expected password to match")
	}
	if CheckPassword(h, "salah") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestIsEmailIdentifier(t *testing.T) {
	if !IsEmailIdentifier("budi@example.com") {
		t.Fatalf("expected email")
	}
	if IsEmailIdentifier("081234567890") {
		t.Fatalf("expected phone number")
	}
}
