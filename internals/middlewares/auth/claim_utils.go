// internals/middlewares/auth/claim_utils.go
package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	userModel "okoce_backend/internals/features/users/user/model"
	helper "okoce_backend/internals/helpers"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx, cookieName string) (string, error) {
	// 1) Ambil dari Authorization header atau fallback cookie
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" && cookieName != "" {
		if cookieTok := c.Cookies(cookieName); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", errors.New("Unauthorized - No token provided")
	}

	// 2) Toleransi spasi ganda & case-insensitive
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("Unauthorized - Invalid token format")
	}

	// 3) Buang kutip di kiri/kanan
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errors.New("Unauthorized - Empty token")
	}
	return tok, nil
}

/* ======== Store identity to Locals ======== */

func storeIdentity(c *fiber.Ctx, u *userModel.UserModel) {
	c.Locals(helper.LocUserID, u.ID.String())
	c.Locals(helper.LocUserRole, u.Role)
	c.Locals(helper.LocUserName, u.Name)
}
