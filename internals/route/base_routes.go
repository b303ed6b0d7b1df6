package routes

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/app"
	database "okoce_backend/internals/databases"
	helper "okoce_backend/internals/helpers"
)

// DownloadAPK mengirim APK aplikasi sebagai attachment "OKOCE.apk".
func DownloadAPK(path string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if st, err := os.Stat(path); err != nil || st.IsDir() {
			return helper.JsonError(c, fiber.StatusNotFound, "File APK belum tersedia di server.")
		}
		return c.Download(path, "OKOCE.apk")
	}
}

func BaseRoutes(app *fiber.App, appCtx *app.Context) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("OK OCE backend berjalan 🚀")
	})

	// Gambar event hasil upload admin.
	app.Static("/uploads", appCtx.Config.UploadDir, fiber.Static{
		MaxAge: 3600,
	})

	app.Get("/api/public/download/apk", DownloadAPK(appCtx.Config.APKPath))

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(appCtx.DB); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		uptime := time.Since(startTime).Seconds()

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(uptime),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})
}
