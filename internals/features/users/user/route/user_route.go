package route

import (
	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/app"
	"okoce_backend/internals/features/users/user/controller"
	"okoce_backend/internals/features/users/user/repository"
	"okoce_backend/internals/features/users/user/service"
)

// UserRoutes: /api (sudah lewat AuthMiddleware)
func UserRoutes(api fiber.Router, appCtx *app.Context) {
	svc := service.NewUserService(repository.NewUserRepository(appCtx.DB))
	ctl := controller.NewUserController(svc, appCtx.Validate)

	api.Get("/users/:user_id", ctl.GetProfile)
	api.Post("/users/:user_id/update", ctl.UpdateProfile)
	api.Post("/user/update-fcm-token", ctl.UpdateFCMToken)
}
