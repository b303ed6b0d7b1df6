package route

import (
	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/app"
	"okoce_backend/internals/features/events/events/controller"
	"okoce_backend/internals/features/events/events/repository"
	"okoce_backend/internals/features/events/events/service"
)

func newService(appCtx *app.Context) *service.EventService {
	repo := repository.NewEventRepository(appCtx.DB, appCtx.Clock)
	return service.NewEventService(repo, appCtx.Push, appCtx.Config.NewEventsTopic, appCtx.Clock)
}

// EventPublicRoutes: /api/public (tanpa login)
func EventPublicRoutes(public fiber.Router, appCtx *app.Context) {
	ctl := controller.NewEventController(newService(appCtx))
	public.Get("/events", ctl.ListPublic)
}

// EventUserRoutes: /api (sudah lewat AuthMiddleware)
func EventUserRoutes(api fiber.Router, appCtx *app.Context) {
	ctl := controller.NewEventController(newService(appCtx))
	api.Get("/events", ctl.ListJoinable)
}

// EventAdminRoutes: /admin (staff; cek admin-only di handler)
func EventAdminRoutes(admin fiber.Router, appCtx *app.Context) {
	ctl := controller.NewEventAdminController(newService(appCtx), appCtx.Images)

	admin.Get("/events", ctl.Dashboard)
	admin.Get("/archive", ctl.Archived)
	admin.Post("/events", ctl.Create)
	admin.Post("/events/bulk-archive", ctl.BulkArchive)
	admin.Post("/events/bulk-unarchive", ctl.BulkUnarchive)
	admin.Get("/events/:event_id", ctl.Detail)
	admin.Put("/events/:event_id", ctl.Update)
	admin.Post("/events/:event_id/archive", ctl.Archive)
	admin.Post("/events/:event_id/unarchive", ctl.Unarchive)

	admin.Get("/panitia/dashboard", ctl.PanitiaToday)
}
