package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kerjapraktik_backend/internals/features/users/users/controller"
	oss "kerjapraktik_backend/internals/helpers/oss"
	"kerjapraktik_backend/internals/middlewares"
)

// UserUserRoutes: semua user login boleh akses.
func UserUserRoutes(r fiber.Router, db *gorm.DB, blob oss.BlobService) {
	ctrl := controller.NewUserController(db, blob)

	users := r.Group("/users")
	users.Get("/me", ctrl.GetMe)
	users.Get("/nim/:nim", ctrl.GetUserByNIM)
	users.Patch("/me/avatar", middlewares.UploadRateLimiter(), ctrl.UpdateAvatar)
}
