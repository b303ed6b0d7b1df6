// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/app"
	"okoce_backend/internals/constants"
	assessmentRoute "okoce_backend/internals/features/assessments/route"
	eventRoute "okoce_backend/internals/features/events/events/route"
	reportRoute "okoce_backend/internals/features/reports/route"
	ticketRoute "okoce_backend/internals/features/tickets/tickets/route"
	businessRoute "okoce_backend/internals/features/umkm/businesses/route"
	authRoute "okoce_backend/internals/features/users/auth/route"
	userRoute "okoce_backend/internals/features/users/user/route"
	authMiddleware "okoce_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes: route publik /api harus terdaftar sebelum group /api ber-AuthMiddleware,
// karena group dengan middleware berlaku untuk seluruh prefix.
func SetupRoutes(app *fiber.App, appCtx *app.Context) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, appCtx)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC routes...")
	public := app.Group("/api")
	authRoute.AuthPublicRoutes(public, appCtx)
	eventRoute.EventPublicRoutes(public.Group("/public"), appCtx)

	// ===================== PRIVATE (USER / APP) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	api := app.Group("/api", authMiddleware.AuthMiddleware(appCtx))
	authRoute.AuthProtectedRoutes(api, appCtx)
	userRoute.UserRoutes(api, appCtx)
	eventRoute.EventUserRoutes(api, appCtx)
	ticketRoute.TicketUserRoutes(api, appCtx)
	assessmentRoute.AssessmentRoutes(api, appCtx)
	businessRoute.BusinessRoutes(api, appCtx)
	reportRoute.ReportAPIRoutes(api, appCtx)

	// ===================== ADMIN / PANITIA =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + staff)...")
	admin := app.Group("/admin",
		authMiddleware.AuthMiddleware(appCtx),
		authMiddleware.OnlyRoles("Halaman ini khusus panitia dan admin", constants.StaffRoles...),
	)
	eventRoute.EventAdminRoutes(admin, appCtx)
	ticketRoute.TicketAdminRoutes(admin, appCtx)
	reportRoute.ReportAdminRoutes(admin, appCtx)
}
