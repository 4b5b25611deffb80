package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kerjapraktik_backend/internals/features/internship/response_letters/controller"
	oss "kerjapraktik_backend/internals/helpers/oss"
	"kerjapraktik_backend/internals/middlewares"
	authMw "kerjapraktik_backend/internals/middlewares/auth"
)

// UserResponseLetterRoutes: unggah & lihat surat balasan oleh anggota tim.
func UserResponseLetterRoutes(r fiber.Router, db *gorm.DB, blob oss.BlobService) {
	ctrl := controller.NewResponseLetterController(db, blob)

	letters := r.Group("/response-letters", authMw.OnlyStudents("surat balasan"))
	letters.Post("/:submissionId", middlewares.UploadRateLimiter(), ctrl.SubmitResponseLetter)
	letters.Get("/submission/:submissionId", ctrl.GetBySubmission)
}

// AdminResponseLetterRoutes: verifikasi dan penghapusan oleh admin.
func AdminResponseLetterRoutes(r fiber.Router, db *gorm.DB, blob oss.BlobService) {
	ctrl := controller.NewResponseLetterController(db, blob)

	letters := r.Group("/response-letters")
	letters.Get("/submission/:submissionId", ctrl.GetBySubmission)
	letters.Patch("/:responseLetterId/verify", ctrl.VerifyResponseLetter)
	letters.Delete("/:responseLetterId", ctrl.DeleteResponseLetter)
}
