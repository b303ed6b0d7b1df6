package service

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrEventNotFound  = fiber.NewError(fiber.StatusNotFound, "Event tidak ditemukan")
	ErrNoEventsChosen = fiber.NewError(fiber.StatusBadRequest, "Tidak ada event yang dipilih.")
	ErrSlotTooSmall   = fiber.NewError(fiber.StatusConflict, "Slot peserta tidak boleh lebih kecil dari jumlah pendaftar")
)

func errSlotBelowRegistered(registered int) error {
	return fiber.NewError(fiber.StatusConflict,
		fmt.Sprintf("Slot peserta tidak boleh lebih kecil dari jumlah pendaftar (%d)", registered))
}

func errInvalidForm(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}
