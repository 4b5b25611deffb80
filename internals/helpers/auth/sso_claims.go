package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Kunci Locals yang dihydrate oleh middleware SSO.
// Identity context dari SSO kampus: {user_id, role, nim?, nip?} —
// sudah terverifikasi di middleware, core tinggal percaya.
const (
	LocUserID = "user_id"
	LocRole   = "user_role"
	LocName   = "user_name"
	LocEmail  = "user_email"
	LocNIM    = "user_nim"
	LocNIP    = "user_nip"
)

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v, ok := c.Locals(LocUserID).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak ditemukan di token")
	}
	id, err := uuid.Parse(strings.TrimSpace(v))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id di token tidak valid")
	}
	return id, nil
}

func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	v, ok := c.Locals(LocRole).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "role tidak ditemukan di token")
	}
	return strings.ToUpper(strings.TrimSpace(v)), nil
}

func GetNIMFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocNIM).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func GetNIPFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocNIP).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func GetNameFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocName).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func GetEmailFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocEmail).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
