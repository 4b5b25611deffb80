package auth

import (
	"github.com/gofiber/fiber/v2"

	"kerjapraktik_backend/internals/constants"
	helperAuth "kerjapraktik_backend/internals/helpers/auth"
)

// RoleMiddlewareWithCustomError validasi role + custom error message
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := helperAuth.GetRoleFromToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": customForbiddenMessage,
		})
	}
}

// OnlyRoles biar pemakaian lebih clean
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}

// OnlyStudents: khusus mahasiswa
func OnlyStudents(feature string) fiber.Handler {
	return OnlyRoles(constants.RoleErrorStudent(feature), constants.StudentOnly...)
}

// OnlyAdminCapable: ADMIN/KAPRODI/WAKIL_DEKAN (role-set, bukan hirarki)
func OnlyAdminCapable(feature string) fiber.Handler {
	return OnlyRoles(constants.RoleErrorAdmin(feature), constants.AdminCapableRoles...)
}
