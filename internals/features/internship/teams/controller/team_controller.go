package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "kerjapraktik_backend/internals/features/internship/teams/dto"
	repo "kerjapraktik_backend/internals/features/internship/teams/repository"
	service "kerjapraktik_backend/internals/features/internship/teams/service"
	helper "kerjapraktik_backend/internals/helpers"
	helperAuth "kerjapraktik_backend/internals/helpers/auth"
)

var validate = validator.New()

type TeamController struct {
	Service *service.TeamService
}

func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{
		Service: service.NewTeamService(
			repo.NewTeamRepository(db),
			repo.NewUserDirectoryRepository(db),
		),
	}
}

// POST /teams
func (ctrl *TeamController) CreateTeam(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	team, err := ctrl.Service.CreateTeam(c.Context(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Tim berhasil dibuat", dto.FromModel(team))
}

// GET /teams/me
func (ctrl *TeamController) GetMyTeam(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	team, err := ctrl.Service.GetMyTeam(c.Context(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Tim ditemukan", dto.FromModel(team))
}

// POST /teams/:teamId/members
func (ctrl *TeamController) InviteMember(c *fiber.Ctx) error {
	leaderID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("teamId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tim tidak valid")
	}

	var req dto.InviteMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	row, err := ctrl.Service.InviteMember(c.Context(), teamID, leaderID, req.Target)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Undangan terkirim", dto.MemberFromModel(row))
}

// PATCH /teams/invitations/:memberId
func (ctrl *TeamController) RespondToInvitation(c *fiber.Ctx) error {
	responderID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	memberID, err := uuid.Parse(c.Params("memberId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID undangan tidak valid")
	}

	var req dto.RespondInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	row, err := ctrl.Service.RespondToInvitation(c.Context(), memberID, responderID, *req.Accept)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	msg := "Undangan ditolak"
	if *req.Accept {
		msg = "Undangan diterima"
	}
	return helper.JsonUpdated(c, msg, dto.MemberFromModel(row))
}

// POST /teams/join
func (ctrl *TeamController) JoinTeam(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.JoinTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	row, err := ctrl.Service.JoinTeam(c.Context(), req.TeamCode, userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Permintaan bergabung terkirim, menunggu persetujuan ketua", dto.MemberFromModel(row))
}

// DELETE /teams/:teamId/members/me
func (ctrl *TeamController) LeaveTeam(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("teamId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tim tidak valid")
	}

	if err := ctrl.Service.LeaveTeam(c.Context(), teamID, userID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Berhasil keluar dari tim", nil)
}

// DELETE /teams/:teamId/members/:memberId
func (ctrl *TeamController) RemoveMember(c *fiber.Ctx) error {
	leaderID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("teamId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tim tidak valid")
	}
	memberID, err := uuid.Parse(c.Params("memberId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID anggota tidak valid")
	}

	if err := ctrl.Service.RemoveMember(c.Context(), teamID, memberID, leaderID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Anggota dikeluarkan dari tim", nil)
}

// DELETE /teams/invitations/:memberId
func (ctrl *TeamController) CancelInvitation(c *fiber.Ctx) error {
	leaderID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	memberID, err := uuid.Parse(c.Params("memberId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID undangan tidak valid")
	}

	if err := ctrl.Service.CancelInvitation(c.Context(), memberID, leaderID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Undangan dibatalkan", nil)
}

// DELETE /teams/:teamId
func (ctrl *TeamController) DeleteTeam(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("teamId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tim tidak valid")
	}

	deleted, err := ctrl.Service.DeleteTeam(c.Context(), teamID, userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Tim dibubarkan", fiber.Map{
		"deleted_members": deleted,
	})
}

// PATCH /teams/:teamId/finalize
func (ctrl *TeamController) FinalizeTeam(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("teamId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tim tidak valid")
	}

	team, err := ctrl.Service.FinalizeTeam(c.Context(), teamID, userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Tim difinalisasi", dto.FromModel(team))
}

// GET /teams/:teamId (admin)
func (ctrl *TeamController) GetTeamByID(c *fiber.Ctx) error {
	teamID, err := uuid.Parse(c.Params("teamId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tim tidak valid")
	}

	team, err := ctrl.Service.GetTeamByID(c.Context(), teamID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Tim ditemukan", dto.FromModel(team))
}
