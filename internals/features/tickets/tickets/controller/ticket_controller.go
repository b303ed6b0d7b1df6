package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/constants"
	"okoce_backend/internals/features/tickets/tickets/dto"
	"okoce_backend/internals/features/tickets/tickets/service"
	helper "okoce_backend/internals/helpers"
	helperAuth "okoce_backend/internals/helpers/auth"
	"okoce_backend/internals/helpers/dbtime"
)

type TicketController struct {
	Svc      *service.TicketService
	Validate *validator.Validate
}

func NewTicketController(svc *service.TicketService, v *validator.Validate) *TicketController {
	return &TicketController{Svc: svc, Validate: v}
}

// POST /api/tickets/buy
func (tc *TicketController) Buy(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.BuyTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := tc.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	code, err := tc.Svc.Purchase(c.Context(), id.UserID, req.EventID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Tiket berhasil dibeli", fiber.Map{"ticket_code": code})
}

// GET /api/users/:user_id/tickets
func (tc *TicketController) ListMine(c *fiber.Ctx) error {
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

	items, err := tc.Svc.ListMine(c.Context(), id.UserID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Daftar tiket", items)
}

// GET /api/tickets/status/:ticket_code
func (tc *TicketController) Status(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	st, err := tc.Svc.Status(c.Context(), id.UserID, c.Params("ticket_code"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Status tiket", st)
}

// GET /api/events/:event_id/join_url
func (tc *TicketController) JoinURL(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParseUintParam(c, "event_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	url, err := tc.Svc.JoinURL(c.Context(), id.UserID, eventID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Link event", fiber.Map{"join_url": url})
}

/* ============================================================
   CHECK-IN
============================================================ */

// POST /api/checkin (user online / staff)
func (tc *TicketController) CheckIn(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}

	res, err := tc.Svc.CheckIn(c.Context(), service.CheckInInput{
		CallerID:        id.UserID,
		CallerRole:      id.Role,
		Code:            req.TicketCode,
		ExpectedEventID: req.EventID,
	})
	if err != nil {
		return tc.checkInError(c, err)
	}
	return helper.JsonOK(c, "Check-in Berhasil", fiber.Map{
		"user_name":     res.UserName,
		"event_title":   res.EventTitle,
		"check_in_time": dbtime.ClockWIB(res.CheckedInAt) + " WIB",
	})
}

// POST /api/mobile/panitia/scan (staff saja)
func (tc *TicketController) Scan(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c, constants.StaffRoles...)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if req.TicketCode == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kode tiket tidak terbaca")
	}

	res, err := tc.Svc.CheckIn(c.Context(), service.CheckInInput{
		CallerID:        id.UserID,
		CallerRole:      id.Role,
		Code:            req.TicketCode,
		ExpectedEventID: req.EventID,
	})
	if err != nil {
		return tc.checkInError(c, err)
	}
	return helper.JsonOK(c, "Check-in BERHASIL", fiber.Map{
		"detail": fiber.Map{
			"user_name":     res.UserName,
			"user_email":    res.UserEmail,
			"event_title":   res.EventTitle,
			"ticket_type":   "Reguler",
			"check_in_time": dbtime.ClockWIB(res.CheckedInAt) + " WIB",
		},
	})
}

func (tc *TicketController) checkInError(c *fiber.Ctx, err error) error {
	var used *service.AlreadyCheckedInError
	if errors.As(err, &used) {
		if used.UserName == "" {
			return helper.JsonError(c, fiber.StatusConflict, used.Error())
		}
		return helper.JsonErrorWithData(c, fiber.StatusConflict, used.Error(), fiber.Map{
			"detail": fiber.Map{
				"user_name":   used.UserName,
				"event_title": used.EventTitle,
			},
		})
	}
	return helper.FromFiberError(c, err)
}

// GET /admin/events/:event_id/scanner
func (tc *TicketController) Scanner(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c, constants.StaffRoles...)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	eventID, err := helper.ParseUintParam(c, "event_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	ev, err := tc.Svc.ScannerGate(c.Context(), id.Role, eventID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Scanner siap", fiber.Map{
		"event_id":        ev.ID,
		"title":           ev.Title,
		"tempat_event":    ev.TempatEvent,
		"tgl_mulai_event": dbtime.FormatWIBForm(ev.TglMulaiEvent),
	})
}
