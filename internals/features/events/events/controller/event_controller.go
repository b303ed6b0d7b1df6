package controller

import (
	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/features/events/events/service"
	helper "okoce_backend/internals/helpers"
	helperAuth "okoce_backend/internals/helpers/auth"
)

type EventController struct {
	Svc *service.EventService
}

func NewEventController(svc *service.EventService) *EventController {
	return &EventController{Svc: svc}
}

// GET /api/public/events?page=1&limit=10
func (ec *EventController) ListPublic(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 10, 100)
	items, total, err := ec.Svc.ListPublic(c.Context(), c.BaseURL(), p.Offset, p.Limit)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Daftar event", items, helper.BuildPagination(total, p))
}

// GET /api/events (event yang pendaftarannya sedang buka)
func (ec *EventController) ListJoinable(c *fiber.Ctx) error {
	if _, err := helperAuth.Require(c); err != nil {
		return helper.FromFiberError(c, err)
	}
	items, err := ec.Svc.ListJoinable(c.Context())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Daftar event", items)
}
