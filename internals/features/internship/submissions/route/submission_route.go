package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	letterService "kerjapraktik_backend/internals/features/internship/letters/service"
	controller "kerjapraktik_backend/internals/features/internship/submissions/controller"
	oss "kerjapraktik_backend/internals/helpers/oss"
	"kerjapraktik_backend/internals/middlewares"
	authMw "kerjapraktik_backend/internals/middlewares/auth"
)

// UserSubmissionRoutes: pengajuan kerja praktik sisi mahasiswa.
func UserSubmissionRoutes(r fiber.Router, db *gorm.DB, blob oss.BlobService) {
	ctrl := controller.NewSubmissionController(db, blob)

	subs := r.Group("/submissions", authMw.OnlyStudents("pengajuan kerja praktik"))
	subs.Post("/", ctrl.CreateSubmission)
	subs.Get("/me", ctrl.GetMySubmissions)
	subs.Get("/:submissionId", ctrl.GetSubmissionByID)
	subs.Patch("/:submissionId", ctrl.UpdateSubmission)
	subs.Post("/:submissionId/submit", ctrl.SubmitForReview)
	subs.Post("/:submissionId/documents", middlewares.UploadRateLimiter(), ctrl.UploadDocument)
}

// AdminSubmissionRoutes: antrean review.
func AdminSubmissionRoutes(r fiber.Router, db *gorm.DB, blob oss.BlobService, renderer letterService.LetterRenderer) {
	ctrl := controller.NewSubmissionAdminController(db, blob, renderer)

	subs := r.Group("/submissions")
	subs.Get("/", ctrl.ListSubmissions)
	subs.Get("/:submissionId", ctrl.GetSubmission)
	subs.Patch("/:submissionId/approve", ctrl.ApproveSubmission)
	subs.Patch("/:submissionId/reject", ctrl.RejectSubmission)
	subs.Patch("/:submissionId/status", ctrl.UpdateSubmissionStatus)
}
