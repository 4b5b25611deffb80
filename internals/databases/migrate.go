package database

import (
	"log"

	letterModel "kerjapraktik_backend/internals/features/internship/letters/model"
	responseLetterModel "kerjapraktik_backend/internals/features/internship/response_letters/model"
	submissionModel "kerjapraktik_backend/internals/features/internship/submissions/model"
	teamModel "kerjapraktik_backend/internals/features/internship/teams/model"
	userModel "kerjapraktik_backend/internals/features/users/users/model"
)

// Migrate menjalankan AutoMigrate untuk seluruh tabel aplikasi.
// Urutan mengikuti arah foreign key.
func Migrate() {
	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&teamModel.TeamModel{},
		&teamModel.TeamMemberModel{},
		&submissionModel.SubmissionModel{},
		&submissionModel.SubmissionDocumentModel{},
		&letterModel.GeneratedLetterModel{},
		&responseLetterModel.ResponseLetterModel{},
	)
	if err != nil {
		log.Fatalf("❌ Gagal migrasi skema: %v", err)
	}
	log.Println("✅ Migrasi skema selesai")
}
