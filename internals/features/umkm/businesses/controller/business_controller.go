package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/features/umkm/businesses/dto"
	"okoce_backend/internals/features/umkm/businesses/service"
	helper "okoce_backend/internals/helpers"
	helperAuth "okoce_backend/internals/helpers/auth"
)

type BusinessController struct {
	Svc      *service.BusinessService
	Validate *validator.Validate
}

func NewBusinessController(svc *service.BusinessService, v *validator.Validate) *BusinessController {
	return &BusinessController{Svc: svc, Validate: v}
}

// GET /api/user/businesses
func (bc *BusinessController) List(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	items, err := bc.Svc.List(c.Context(), id.UserID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Daftar UMKM", items)
}

// GET /api/user/businesses/:id
func (bc *BusinessController) Detail(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	businessID, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	detail, err := bc.Svc.Detail(c.Context(), id.UserID, businessID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail UMKM", detail)
}

// POST /api/user/businesses/submit
func (bc *BusinessController) Submit(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := bc.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	businessID, created, err := bc.Svc.Submit(c.Context(), id.UserID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	data := fiber.Map{"business_id": businessID}
	if created {
		return helper.JsonCreated(c, "Data UMKM berhasil disimpan", data)
	}
	return helper.JsonOK(c, "Data UMKM berhasil diperbarui", data)
}

// POST /api/user/businesses/:id/delete
func (bc *BusinessController) Delete(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	businessID, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := bc.Svc.Delete(c.Context(), id.UserID, businessID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Data UMKM berhasil dihapus", nil)
}
