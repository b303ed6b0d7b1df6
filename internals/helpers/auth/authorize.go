package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "okoce_backend/internals/helpers"
)

// Identity: siapa pemanggil request ini (diisi AuthMiddleware).
type Identity struct {
	UserID uuid.UUID
	Role   string
	Name   string
}

func (id Identity) HasRole(roles ...string) bool {
	for _, r := range roles {
		if strings.EqualFold(id.Role, r) {
			return true
		}
	}
	return false
}

// CurrentIdentity membaca identity dari Locals. 401 kalau belum login.
func CurrentIdentity(c *fiber.Ctx) (Identity, error) {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return Identity{}, err
	}
	role, _ := c.Locals(helper.LocUserRole).(string)
	name, _ := c.Locals(helper.LocUserName).(string)
	return Identity{UserID: uid, Role: role, Name: name}, nil
}

// Authorize: allow kalau identity memegang salah satu role. Tanpa role = cukup login.
func Authorize(id Identity, roles ...string) error {
	if id.UserID == uuid.Nil {
		return fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	if len(roles) == 0 || id.HasRole(roles...) {
		return nil
	}
	return fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki izin untuk mengakses fitur ini")
}

// Require = CurrentIdentity + Authorize, dipanggil di awal handler.
func Require(c *fiber.Ctx, roles ...string) (Identity, error) {
	id, err := CurrentIdentity(c)
	if err != nil {
		return Identity{}, err
	}
	if err := Authorize(id, roles...); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// RequireSelf: hanya pemilik resource (user_id path == user login).
func RequireSelf(id Identity, owner uuid.UUID) error {
	if id.UserID != owner {
		return fiber.NewError(fiber.StatusForbidden, "Akses ditolak")
	}
	return nil
}
