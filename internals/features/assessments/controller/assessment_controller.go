package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/constants"
	"okoce_backend/internals/features/assessments/dto"
	"okoce_backend/internals/features/assessments/service"
	helper "okoce_backend/internals/helpers"
	helperAuth "okoce_backend/internals/helpers/auth"
)

type AssessmentController struct {
	Svc *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Svc: svc}
}

// GET /api/events/:event_id/test/status
func (ac *AssessmentController) Status(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParseUintParam(c, "event_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	st, err := ac.Svc.Status(c.Context(), id.UserID, eventID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, st.Message, st)
}

// GET /api/events/:event_id/test/questions
func (ac *AssessmentController) Questions(c *fiber.Ctx) error {
	if _, err := helperAuth.Require(c); err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParseUintParam(c, "event_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	qs, err := ac.Svc.Questions(c.Context(), eventID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Daftar soal", qs)
}

// POST /api/events/:event_id/test/submit
func (ac *AssessmentController) Submit(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParseUintParam(c, "event_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SubmitTestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}

	res, err := ac.Svc.Submit(c.Context(), id.UserID, eventID, req.Answers)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, fmt.Sprintf("%s Selesai! Nilai Anda: %d", res.Type, res.Score), res)
}

// POST /api/event/:event_id/open-post-test (staff)
func (ac *AssessmentController) OpenPostTest(c *fiber.Ctx) error {
	if _, err := helperAuth.Require(c, constants.StaffRoles...); err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParseUintParam(c, "event_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ac.Svc.OpenPostTest(c.Context(), eventID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Post-Test berhasil dibuka untuk semua peserta.", nil)
}
