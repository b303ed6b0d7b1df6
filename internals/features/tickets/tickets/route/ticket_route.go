package route

import (
	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/app"
	"okoce_backend/internals/features/tickets/tickets/controller"
	"okoce_backend/internals/features/tickets/tickets/repository"
	"okoce_backend/internals/features/tickets/tickets/service"
)

func newController(appCtx *app.Context) *controller.TicketController {
	svc := service.NewTicketService(repository.NewTicketRepository(appCtx.DB), appCtx.Clock)
	return controller.NewTicketController(svc, appCtx.Validate)
}

// TicketUserRoutes: /api (sudah lewat AuthMiddleware)
func TicketUserRoutes(api fiber.Router, appCtx *app.Context) {
	ctl := newController(appCtx)

	api.Post("/tickets/buy", ctl.Buy)
	api.Get("/tickets/status/:ticket_code", ctl.Status)
	api.Get("/users/:user_id/tickets", ctl.ListMine)
	api.Get("/events/:event_id/join_url", ctl.JoinURL)

	api.Post("/checkin", ctl.CheckIn)
	api.Post("/mobile/panitia/scan", ctl.Scan)
}

// TicketAdminRoutes: /admin (staff)
func TicketAdminRoutes(admin fiber.Router, appCtx *app.Context) {
	ctl := newController(appCtx)

	admin.Get("/events/:event_id/scanner", ctl.Scanner)
}
