package route

import (
	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/app"
	"okoce_backend/internals/features/umkm/businesses/controller"
	"okoce_backend/internals/features/umkm/businesses/repository"
	"okoce_backend/internals/features/umkm/businesses/service"
)

// BusinessRoutes: /api/user/businesses (sudah lewat AuthMiddleware)
func BusinessRoutes(api fiber.Router, appCtx *app.Context) {
	svc := service.NewBusinessService(repository.NewBusinessRepository(appCtx.DB))
	ctl := controller.NewBusinessController(svc, appCtx.Validate)

	g := api.Group("/user/businesses")
	g.Get("/", ctl.List)
	g.Post("/submit", ctl.Submit)
	g.Get("/:id", ctl.Detail)
	g.Post("/:id/delete", ctl.Delete)
}
