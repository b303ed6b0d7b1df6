package service

import "github.com/gofiber/fiber/v2"

var (
	ErrEmailPhoneRequired = fiber.NewError(fiber.StatusBadRequest, "Email dan Nomor HP wajib diisi")
	ErrEmailTaken         = fiber.NewError(fiber.StatusConflict, "Email sudah terdaftar")
	ErrPhoneTaken         = fiber.NewError(fiber.StatusConflict, "Nomor HP sudah terdaftar")
	ErrRegisterMail       = fiber.NewError(fiber.StatusInternalServerError, "Registrasi gagal. Tidak dapat mengirim email verifikasi.")

	ErrEmailOTPRequired = fiber.NewError(fiber.StatusBadRequest, "Email dan OTP wajib diisi")
	ErrUserNotFound     = fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	ErrAlreadyVerified  = fiber.NewError(fiber.StatusBadRequest, "Akun sudah terverifikasi")
	ErrOTPExpired       = fiber.NewError(fiber.StatusGone, "Kode OTP telah kedaluwarsa")
	ErrOTPWrong         = fiber.NewError(fiber.StatusBadRequest, "Kode OTP salah")

	ErrEmailRequired    = fiber.NewError(fiber.StatusBadRequest, "Email diperlukan")
	ErrMailFailed       = fiber.NewError(fiber.StatusInternalServerError, "Gagal mengirim email")
	ErrOldNewRequired   = fiber.NewError(fiber.StatusBadRequest, "Email lama dan baru diperlukan")
	ErrNewEmailTaken    = fiber.NewError(fiber.StatusConflict, "Email baru sudah terdaftar oleh akun lain")
	ErrUnverifiedAbsent = fiber.NewError(fiber.StatusNotFound, "Akun unverified tidak ditemukan")
	ErrNewEmailMail     = fiber.NewError(fiber.StatusInternalServerError, "Gagal mengirim email ke alamat baru")

	ErrLoginRequired    = fiber.NewError(fiber.StatusBadRequest, "Nomor HP/Email dan password wajib diisi")
	ErrBadCredentials   = fiber.NewError(fiber.StatusUnauthorized, "Nomor HP/Email atau password salah")
	ErrStaffCredentials = fiber.NewError(fiber.StatusUnauthorized, "Email/Password Salah")
	ErrNotStaff         = fiber.NewError(fiber.StatusForbidden, "Akses Ditolak. Akun Anda bukan Panitia.")

	ErrEmailNotRegistered = fiber.NewError(fiber.StatusNotFound, "Email tidak terdaftar")
	ErrAllFieldsRequired  = fiber.NewError(fiber.StatusBadRequest, "Semua field wajib diisi")
	ErrPasswordTooShort   = fiber.NewError(fiber.StatusBadRequest, "Password baru harus minimal 5 karakter")
	ErrPhoneNotRegistered = fiber.NewError(fiber.StatusNotFound, "Nomor HP tidak terdaftar")
)

// UnverifiedError: login benar tapi akun belum verifikasi; OTP baru sudah dikirim.
type UnverifiedError struct {
	Email string
}

func (e *UnverifiedError) Error() string {
	return "Akun Anda belum terverifikasi. Kami telah mengirim ulang kode OTP ke email Anda."
}
