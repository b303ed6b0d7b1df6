package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/features/users/user/dto"
	"okoce_backend/internals/features/users/user/service"
	helper "okoce_backend/internals/helpers"
	helperAuth "okoce_backend/internals/helpers/auth"
)

type UserController struct {
	Svc      *service.UserService
	Validate *validator.Validate
}

func NewUserController(svc *service.UserService, v *validator.Validate) *UserController {
	return &UserController{Svc: svc, Validate: v}
}

// GET /api/users/:user_id
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	owner, err := helper.ParseUUIDParam(c, "user_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := helperAuth.RequireSelf(id, owner); err != nil {
		return helper.FromFiberError(c, err)
	}

	profile, err := uc.Svc.Profile(c.Context(), owner)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Profil ditemukan", profile)
}

// POST /api/users/:user_id/update
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	owner, err := helper.ParseUUIDParam(c, "user_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := helperAuth.RequireSelf(id, owner); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := uc.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	profile, err := uc.Svc.UpdateProfile(c.Context(), owner, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Profil berhasil diperbarui", profile)
}

// POST /api/user/update-fcm-token
func (uc *UserController) UpdateFCMToken(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.FCMTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := uc.Svc.UpdateFCMToken(c.Context(), id.UserID, req.Token); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Token updated", nil)
}
