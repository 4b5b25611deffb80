package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "kerjapraktik_backend/internals/features/users/users/route"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

func UserRoutes(r fiber.Router, db *gorm.DB, blob oss.BlobService) {
	userRoute.UserUserRoutes(r, db, blob)
}
