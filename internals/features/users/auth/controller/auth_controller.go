package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"okoce_backend/internals/features/users/auth/service"
	helper "okoce_backend/internals/helpers"
	helperAuth "okoce_backend/internals/helpers/auth"
)

type AuthController struct {
	Svc        *service.AuthService
	Validate   *validator.Validate
	CookieName string
}

func NewAuthController(svc *service.AuthService, v *validator.Validate, cookieName string) *AuthController {
	return &AuthController{Svc: svc, Validate: v, CookieName: cookieName}
}

/* ==========================
   REGISTER & OTP
========================== */

type registerRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	PhoneNumber string  `json:"phone_number" validate:"required,max=20"`
	Email       string  `json:"email" validate:"required,email,max=120"`
	Province    string  `json:"province" validate:"required"`
	City        string  `json:"city" validate:"required"`
	Institution *string `json:"institution"`
	HasBusiness bool    `json:"has_business"`
	Password    string  `json:"password" validate:"required,min=5"`
}

// POST /api/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.PhoneNumber) == "" {
		return helper.FromFiberError(c, service.ErrEmailPhoneRequired)
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	email, err := ac.Svc.Register(c.Context(), service.RegisterInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Province:    req.Province,
		City:        req.City,
		Institution: req.Institution,
		HasBusiness: req.HasBusiness,
		Password:    req.Password,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Registrasi berhasil! Cek email Anda untuk kode verifikasi.", fiber.Map{
		"user_email": email,
	})
}

// POST /api/verify-email
func (ac *AuthController) VerifyEmail(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ac.Svc.VerifyEmail(c.Context(), req.Email, req.OTP); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Verifikasi berhasil! Silakan login.", nil)
}

// POST /api/resend-otp
func (ac *AuthController) ResendOTP(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ac.Svc.ResendOTP(c.Context(), req.Email); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OTP baru telah dikirim", nil)
}

// POST /api/change-verification-email
func (ac *AuthController) ChangeVerificationEmail(c *fiber.Ctx) error {
	var req struct {
		OldEmail string `json:"old_email"`
		NewEmail string `json:"new_email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	newEmail, err := ac.Svc.ChangeVerificationEmail(c.Context(), req.OldEmail, req.NewEmail)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OTP telah dikirim ke email baru: "+newEmail, fiber.Map{"new_email": newEmail})
}

/* ==========================
   LOGIN / LOGOUT / STATUS
========================== */

type loginRequest struct {
	LoginIdentifier string `json:"login_identifier"`
	Password        string `json:"password"`
}

// POST /api/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}

	res, err := ac.Svc.Login(c.Context(), req.LoginIdentifier, req.Password)
	if err != nil {
		var unverified *service.UnverifiedError
		if errors.As(err, &unverified) {
			return helper.JsonErrorWithData(c, fiber.StatusForbidden, unverified.Error(), fiber.Map{
				"action":     "verify",
				"user_email": unverified.Email,
			})
		}
		return helper.FromFiberError(c, err)
	}

	ac.setAccessCookie(c, res.Token, res.ExpiresAt)
	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"user_id":      res.User.ID,
		"name":         res.User.Name,
		"okoce_id":     res.User.OkoceID,
		"has_business": res.User.HasBusiness,
		"access_token": res.Token,
	})
}

// POST /api/mobile/panitia/login
func (ac *AuthController) StaffLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	res, err := ac.Svc.StaffLogin(c.Context(), req.LoginIdentifier, req.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ac.setAccessCookie(c, res.Token, res.ExpiresAt)
	return helper.JsonOK(c, "Login Panitia Berhasil", fiber.Map{
		"user": fiber.Map{
			"id":   res.User.ID,
			"name": res.User.Name,
			"role": res.User.Role,
		},
		"access_token": res.Token,
	})
}

// POST /api/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c, ac.CookieName)
	if err := ac.Svc.Logout(c.Context(), raw); err != nil {
		return helper.FromFiberError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     ac.CookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Logout berhasil", nil)
}

// GET /api/status
func (ac *AuthController) Status(c *fiber.Ctx) error {
	id, err := helperAuth.Require(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	u, err := ac.Svc.Me(c.Context(), id.UserID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"logged_in":    true,
		"user_id":      u.ID,
		"name":         u.Name,
		"okoce_id":     u.OkoceID,
		"has_business": u.HasBusiness,
		"role":         u.Role,
	})
}

func (ac *AuthController) setAccessCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     ac.CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  exp,
	})
}

/* ==========================
   PASSWORD
========================== */

// POST /api/send-password-reset-otp
func (ac *AuthController) SendResetOTP(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ac.Svc.SendResetOTP(c.Context(), req.Email); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "OTP reset password telah dikirim ke email Anda", nil)
}

// POST /api/verify-otp-and-reset-password
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ac.Svc.ResetPasswordWithOTP(c.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Password berhasil direset. Silakan login.", nil)
}

// POST /api/reset-password-unverified
func (ac *AuthController) ResetPasswordUnverified(c *fiber.Ctx) error {
	var req struct {
		PhoneNumber string `json:"phone_number"`
		Password    string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ac.Svc.ResetPasswordUnverified(c.Context(), req.PhoneNumber, req.Password); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Password berhasil direset. Silakan login.", nil)
}

// POST /api/check-phone
func (ac *AuthController) CheckPhone(c *fiber.Ctx) error {
	var req struct {
		PhoneNumber string `json:"phone_number"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ac.Svc.CheckPhone(c.Context(), req.PhoneNumber); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Nomor HP ditemukan", nil)
}
