package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	letterRoute "kerjapraktik_backend/internals/features/internship/letters/route"
	letterService "kerjapraktik_backend/internals/features/internship/letters/service"
	responseLetterRoute "kerjapraktik_backend/internals/features/internship/response_letters/route"
	submissionRoute "kerjapraktik_backend/internals/features/internship/submissions/route"
	teamRoute "kerjapraktik_backend/internals/features/internship/teams/route"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

// InternshipUserRoutes: seluruh alur mahasiswa (tim, pengajuan, surat balasan).
func InternshipUserRoutes(r fiber.Router, db *gorm.DB, blob oss.BlobService) {
	teamRoute.UserTeamRoutes(r, db)
	submissionRoute.UserSubmissionRoutes(r, db, blob)
	responseLetterRoute.UserResponseLetterRoutes(r, db, blob)
}

// InternshipAdminRoutes: review, penerbitan surat, verifikasi balasan.
func InternshipAdminRoutes(r fiber.Router, db *gorm.DB, blob oss.BlobService, renderer letterService.LetterRenderer) {
	teamRoute.AdminTeamRoutes(r, db)
	submissionRoute.AdminSubmissionRoutes(r, db, blob, renderer)
	letterRoute.AdminLetterRoutes(r, db, blob, renderer)
	responseLetterRoute.AdminResponseLetterRoutes(r, db, blob)
}
