package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kerjapraktik_backend/internals/features/internship/letters/controller"
	service "kerjapraktik_backend/internals/features/internship/letters/service"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

// AdminLetterRoutes: penerbitan dan penelusuran surat pengantar.
func AdminLetterRoutes(r fiber.Router, db *gorm.DB, blob oss.BlobService, renderer service.LetterRenderer) {
	ctrl := controller.NewLetterController(db, blob, renderer)

	letters := r.Group("/letters")
	letters.Get("/", ctrl.ListLetters)
	letters.Get("/submission/:submissionId", ctrl.GetLettersBySubmission)
	letters.Post("/:submissionId", ctrl.GenerateLetter)
}
