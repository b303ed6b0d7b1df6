package route

import (
	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/app"
	"okoce_backend/internals/features/assessments/controller"
	"okoce_backend/internals/features/assessments/repository"
	"okoce_backend/internals/features/assessments/service"
)

// AssessmentRoutes: /api (login wajib)
func AssessmentRoutes(api fiber.Router, appCtx *app.Context) {
	svc := service.NewAssessmentService(repository.NewAssessmentRepository(appCtx.DB), appCtx.Clock)
	ctl := controller.NewAssessmentController(svc)

	test := api.Group("/events/:event_id/test")
	test.Get("/status", ctl.Status)
	test.Get("/questions", ctl.Questions)
	test.Post("/submit", ctl.Submit)

	api.Post("/event/:event_id/open-post-test", ctl.OpenPostTest)
}
