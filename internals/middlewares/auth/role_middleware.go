package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "okoce_backend/internals/helpers"
	helperAuth "okoce_backend/internals/helpers/auth"
)

// OnlyRoles dipasang setelah AuthMiddleware untuk satu grup route (mis. /admin).
// Handler di dalamnya tetap memanggil helperAuth.Require untuk cek yang lebih sempit.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := helperAuth.CurrentIdentity(c)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		if !id.HasRole(roles...) {
			if customMessage == "" {
				customMessage = "Anda tidak memiliki izin untuk mengakses fitur ini"
			}
			return helper.JsonError(c, fiber.StatusForbidden, customMessage)
		}
		return c.Next()
	}
}
