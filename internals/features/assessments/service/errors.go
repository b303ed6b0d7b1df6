package service

import "github.com/gofiber/fiber/v2"

var (
	ErrEventNotFound    = fiber.NewError(fiber.StatusNotFound, "Event tidak ditemukan.")
	ErrNoQuestions      = fiber.NewError(fiber.StatusNotFound, "Soal belum dibuat oleh admin")
	ErrNoTest           = fiber.NewError(fiber.StatusBadRequest, "Event ini tidak memiliki Pre/Post-Test")
	ErrPostTestLocked   = fiber.NewError(fiber.StatusForbidden, "Post-Test belum dibuka.")
	ErrAlreadyCompleted = fiber.NewError(fiber.StatusConflict, "Anda telah menyelesaikan semua tes.")
	ErrDuplicatePreTest = fiber.NewError(fiber.StatusConflict, "Pre-Test sudah dikirim sebelumnya.")
	ErrNotRegistered    = fiber.NewError(fiber.StatusForbidden, "Anda tidak terdaftar di event ini")
)
