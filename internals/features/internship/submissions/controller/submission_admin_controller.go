package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	letterDto "kerjapraktik_backend/internals/features/internship/letters/dto"
	letterRepo "kerjapraktik_backend/internals/features/internship/letters/repository"
	letterService "kerjapraktik_backend/internals/features/internship/letters/service"
	dto "kerjapraktik_backend/internals/features/internship/submissions/dto"
	repo "kerjapraktik_backend/internals/features/internship/submissions/repository"
	service "kerjapraktik_backend/internals/features/internship/submissions/service"
	helper "kerjapraktik_backend/internals/helpers"
	helperAuth "kerjapraktik_backend/internals/helpers/auth"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

// SubmissionAdminController: review pengajuan oleh admin/kaprodi/wakil dekan.
// Memegang mesin surat supaya approve bisa sekaligus menerbitkan surat.
type SubmissionAdminController struct {
	Service *service.SubmissionService
	Letters *letterService.LetterService
}

func NewSubmissionAdminController(db *gorm.DB, blob oss.BlobService, renderer letterService.LetterRenderer) *SubmissionAdminController {
	submissionRepo := repo.NewSubmissionRepository(db)
	return &SubmissionAdminController{
		Service: service.NewSubmissionService(
			submissionRepo,
			repo.NewTeamGateRepository(db),
			blob,
		),
		Letters: letterService.NewLetterService(
			letterRepo.NewLetterRepository(db),
			submissionRepo,
			renderer,
			blob,
		),
	}
}

// GET /submissions?status=&team_id=&page=&per_page=
func (ctrl *SubmissionAdminController) ListSubmissions(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	filter := service.SubmissionFilter{Status: c.Query("status")}
	if raw := c.Query("team_id"); raw != "" {
		teamID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "ID tim tidak valid")
		}
		filter.TeamID = &teamID
	}

	items, total, err := ctrl.Service.ListSubmissions(c.Context(), filter, paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "Daftar pengajuan", dto.FromModels(items),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /submissions/:submissionId
func (ctrl *SubmissionAdminController) GetSubmission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengajuan tidak valid")
	}

	sub, err := ctrl.Service.GetSubmissionForAdmin(c.Context(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Pengajuan ditemukan", dto.FromModel(sub))
}

// PATCH /submissions/:submissionId/approve?generate_letter=true&format=pdf
func (ctrl *SubmissionAdminController) ApproveSubmission(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengajuan tidak valid")
	}

	sub, err := ctrl.Service.ApproveSubmission(c.Context(), id, adminID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	data := fiber.Map{"submission": dto.FromModel(sub)}
	if c.QueryBool("generate_letter") {
		letter, err := ctrl.Letters.GenerateLetter(c.Context(), id, adminID, c.Query("format", "pdf"))
		if err != nil {
			// Approval sudah tercatat; surat bisa diterbitkan ulang terpisah.
			return helper.JsonFromError(c, err)
		}
		data["letter"] = letterDto.FromModel(letter)
	}
	return helper.JsonUpdated(c, "Pengajuan diterima", data)
}

// PATCH /submissions/:submissionId/reject
func (ctrl *SubmissionAdminController) RejectSubmission(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengajuan tidak valid")
	}

	var req dto.RejectSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	sub, err := ctrl.Service.RejectSubmission(c.Context(), id, adminID, req.Reason)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Pengajuan ditolak", dto.FromModel(sub))
}

// PATCH /submissions/:submissionId/status
func (ctrl *SubmissionAdminController) UpdateSubmissionStatus(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengajuan tidak valid")
	}

	var req dto.UpdateSubmissionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	sub, err := ctrl.Service.UpdateSubmissionStatus(c.Context(), id, adminID, req.Status, req.Reason)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Status pengajuan diperbarui", dto.FromModel(sub))
}
