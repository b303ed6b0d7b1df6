package route

import (
	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/app"
	"okoce_backend/internals/features/reports/controller"
	"okoce_backend/internals/features/reports/repository"
	"okoce_backend/internals/features/reports/service"
)

func newController(appCtx *app.Context) *controller.ReportController {
	svc := service.NewReportService(repository.NewReportRepository(appCtx.DB), appCtx.Clock)
	return controller.NewReportController(svc)
}

// ReportAdminRoutes: /admin (AuthMiddleware + staff)
func ReportAdminRoutes(admin fiber.Router, appCtx *app.Context) {
	ctl := newController(appCtx)

	admin.Get("/reports", ctl.Monthly)
	admin.Get("/reports/download", ctl.MonthlyCSV)
	admin.Get("/reports/participant-columns", ctl.Columns)
	admin.Post("/events/:event_id/download-csv", ctl.ParticipantsCSV)
}

// ReportAPIRoutes: /api (AuthMiddleware), dipakai modal detail peserta di dashboard admin.
func ReportAPIRoutes(api fiber.Router, appCtx *app.Context) {
	ctl := newController(appCtx)

	api.Get("/admin/user/:user_id/details", ctl.UserDetail)
}
