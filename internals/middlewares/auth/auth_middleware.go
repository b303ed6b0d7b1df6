// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"okoce_backend/internals/app"
	authService "okoce_backend/internals/features/users/auth/service"
	userModel "okoce_backend/internals/features/users/user/model"
	helper "okoce_backend/internals/helpers"
	helperAuth "okoce_backend/internals/helpers/auth"
)

// AuthMiddleware memvalidasi access token (header Bearer atau cookie), menolak token
// yang sudah di-blacklist, lalu mengisi Locals user_id / userRole / user_name.
// Role diambil dari tabel users supaya perubahan role langsung berlaku.
func AuthMiddleware(appCtx *app.Context) fiber.Handler {
	cfg := appCtx.Config
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c, cfg.CookieName)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		// 2) Parse & verifikasi JWT
		if cfg.JWTSecret == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}
		claims, err := authService.ParseAccessToken(cfg.JWTSecret, tokenString, appCtx.Clock.Now().UTC())
		if err != nil {
			log.Println("[WARN] Gagal parse token:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token tidak valid atau kedaluwarsa")
		}

		// 3) Cek blacklist (sekali per request)
		if c.Locals("token_checked") == nil {
			revoked, err := helperAuth.IsBlacklisted(c.Context(), appCtx.DB, tokenString, cfg.JWTSecret)
			if err != nil {
				log.Println("[ERROR] DB error saat cek blacklist:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
			}
			if revoked {
				log.Println("[WARN] Token ditemukan di blacklist")
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token sudah logout")
			}
			c.Locals("token_checked", true)
		}

		// 4) User masih ada?
		user, err := loadUser(appCtx.DB, c, claims)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			log.Println("[ERROR] load user:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
		}

		// 5) Simpan identity ke Locals
		storeIdentity(c, user)
		helper.SetRawAccessToken(c, tokenString)
		return c.Next()
	}
}

func loadUser(db *gorm.DB, c *fiber.Ctx, claims *authService.AccessClaims) (*userModel.UserModel, error) {
	var u userModel.UserModel
	err := db.WithContext(c.Context()).
		Select("id", "name", "role").
		Where("id = ?", claims.UserID).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}
