package service

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/helpers/dbtime"
)

var (
	ErrAlreadyRegistered = fiber.NewError(fiber.StatusConflict, "Anda sudah terdaftar di event ini.")
	ErrEventNotFound     = fiber.NewError(fiber.StatusNotFound, "Event tidak ditemukan.")
	ErrPaidEvent         = fiber.NewError(fiber.StatusBadRequest, "Event ini berbayar (fitur belum siap).")
	ErrNotYetOpen        = fiber.NewError(fiber.StatusConflict, "Pendaftaran belum dibuka.")
	ErrAlreadyClosed     = fiber.NewError(fiber.StatusConflict, "Pendaftaran sudah ditutup.")
	ErrQuotaFull         = fiber.NewError(fiber.StatusConflict, "Kuota penuh.")
	ErrUMKMRequired      = fiber.NewError(fiber.StatusConflict, "Event ini mewajibkan Anda melengkapi data UMKM. Silakan isi di menu Profil.")

	ErrCodeRequired    = fiber.NewError(fiber.StatusBadRequest, "Kode tiket tidak ada")
	ErrTicketNotFound  = fiber.NewError(fiber.StatusNotFound, "Tiket Tidak Valid")
	ErrOtherEvent      = fiber.NewError(fiber.StatusBadRequest, "Tiket ini untuk Event LAIN!")
	ErrNotTicketOwner  = fiber.NewError(fiber.StatusForbidden, "Akses Ditolak: Anda bukan pemilik tiket ini")
	ErrMustBeScanned   = fiber.NewError(fiber.StatusForbidden, "Akses Ditolak: Tiket ini harus di-scan oleh panitia")
	ErrEventNotStarted = fiber.NewError(fiber.StatusBadRequest, "Event belum dimulai")
	ErrRoleDenied      = fiber.NewError(fiber.StatusForbidden, "Akses Ditolak")

	ErrAccessDenied      = fiber.NewError(fiber.StatusForbidden, "Akses ditolak")
	ErrOfflineEvent      = fiber.NewError(fiber.StatusBadRequest, "Ini adalah event offline")
	ErrNotRegistered     = fiber.NewError(fiber.StatusForbidden, "Anda tidak terdaftar di event ini")
	ErrJoinURLNotSet     = fiber.NewError(fiber.StatusNotFound, "Link event belum diatur oleh admin")
	ErrScannerNotOpenYet = fiber.NewError(fiber.StatusForbidden, "Check-in baru bisa dilakukan 3 jam sebelum acara.")
)

// AlreadyCheckedInError dibalas 409 beserta jam check-in pertama.
type AlreadyCheckedInError struct {
	CheckedInAt *time.Time
	UserName    string
	EventTitle  string
}

func (e *AlreadyCheckedInError) Error() string {
	jam := "-"
	if e.CheckedInAt != nil {
		jam = dbtime.ClockWIB(*e.CheckedInAt)
	}
	return fmt.Sprintf("Tiket SUDAH DIGUNAKAN pukul %s", jam)
}
