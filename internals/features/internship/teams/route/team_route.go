package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kerjapraktik_backend/internals/features/internship/teams/controller"
	authMw "kerjapraktik_backend/internals/middlewares/auth"
)

// UserTeamRoutes: operasi tim untuk mahasiswa.
func UserTeamRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTeamController(db)

	teams := r.Group("/teams", authMw.OnlyStudents("tim kerja praktik"))
	teams.Post("/", ctrl.CreateTeam)
	teams.Get("/me", ctrl.GetMyTeam)
	teams.Post("/join", ctrl.JoinTeam)
	teams.Patch("/invitations/:memberId", ctrl.RespondToInvitation)
	teams.Delete("/invitations/:memberId", ctrl.CancelInvitation)
	teams.Post("/:teamId/members", ctrl.InviteMember)
	teams.Delete("/:teamId/members/me", ctrl.LeaveTeam)
	teams.Delete("/:teamId/members/:memberId", ctrl.RemoveMember)
	teams.Patch("/:teamId/finalize", ctrl.FinalizeTeam)
	teams.Delete("/:teamId", ctrl.DeleteTeam)
}

// AdminTeamRoutes: inspeksi tim untuk admin/kaprodi/wakil dekan.
func AdminTeamRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTeamController(db)

	teams := r.Group("/teams")
	teams.Get("/:teamId", ctrl.GetTeamByID)
}
