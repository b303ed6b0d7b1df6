package route

import (
	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/app"
	"okoce_backend/internals/features/users/auth/controller"
	"okoce_backend/internals/features/users/auth/repository"
	"okoce_backend/internals/features/users/auth/service"
	rateLimiter "okoce_backend/internals/middlewares"
)

func newController(appCtx *app.Context) *controller.AuthController {
	cfg := appCtx.Config
	repo := repository.NewAuthRepository(appCtx.DB, cfg.JWTSecret)
	svc := service.NewAuthService(repo, appCtx.Mailer, appCtx.Clock, cfg.JWTSecret, cfg.AccessTTL)
	return controller.NewAuthController(svc, appCtx.Validate, cfg.CookieName)
}

// AuthPublicRoutes: /api tanpa login. Harus dipasang sebelum grup yang memakai AuthMiddleware.
func AuthPublicRoutes(api fiber.Router, appCtx *app.Context) {
	ctl := newController(appCtx)

	// 🔓 Register & OTP
	api.Post("/register", rateLimiter.RegisterRateLimiter(), ctl.Register)
	api.Post("/verify-email", rateLimiter.OTPRateLimiter(), ctl.VerifyEmail)
	api.Post("/resend-otp", rateLimiter.OTPRateLimiter(), ctl.ResendOTP)
	api.Post("/change-verification-email", rateLimiter.OTPRateLimiter(), ctl.ChangeVerificationEmail)

	// 🔓 Login
	api.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	api.Post("/mobile/panitia/login", rateLimiter.LoginRateLimiter(), ctl.StaffLogin)

	// 🔓 Password
	api.Post("/send-password-reset-otp", rateLimiter.ForgotPasswordRateLimiter(), ctl.SendResetOTP)
	api.Post("/verify-otp-and-reset-password", rateLimiter.OTPRateLimiter(), ctl.ResetPassword)
	api.Post("/reset-password-unverified", rateLimiter.ForgotPasswordRateLimiter(), ctl.ResetPasswordUnverified)
	api.Post("/check-phone", ctl.CheckPhone)
}

// AuthProtectedRoutes: /api (sudah lewat AuthMiddleware)
func AuthProtectedRoutes(api fiber.Router, appCtx *app.Context) {
	ctl := newController(appCtx)

	api.Post("/logout", ctl.Logout)
	api.Get("/status", ctl.Status)
}
