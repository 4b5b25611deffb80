package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "kerjapraktik_backend/internals/features/internship/submissions/dto"
	repo "kerjapraktik_backend/internals/features/internship/submissions/repository"
	service "kerjapraktik_backend/internals/features/internship/submissions/service"
	helper "kerjapraktik_backend/internals/helpers"
	helperAuth "kerjapraktik_backend/internals/helpers/auth"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

var validate = validator.New()

// SubmissionController: sisi mahasiswa.
type SubmissionController struct {
	Service *service.SubmissionService
}

func NewSubmissionController(db *gorm.DB, blob oss.BlobService) *SubmissionController {
	return &SubmissionController{
		Service: service.NewSubmissionService(
			repo.NewSubmissionRepository(db),
			repo.NewTeamGateRepository(db),
			blob,
		),
	}
}

// POST /submissions
func (ctrl *SubmissionController) CreateSubmission(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tim tidak valid")
	}

	sub, err := ctrl.Service.CreateSubmission(c.Context(), teamID, userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Pengajuan dibuat", dto.FromModel(sub))
}

// GET /submissions/me
func (ctrl *SubmissionController) GetMySubmissions(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	items, err := ctrl.Service.GetMySubmissions(c.Context(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Daftar pengajuan", dto.FromModels(items))
}

// GET /submissions/:submissionId
func (ctrl *SubmissionController) GetSubmissionByID(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengajuan tidak valid")
	}

	sub, err := ctrl.Service.GetSubmissionByID(c.Context(), id, userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Pengajuan ditemukan", dto.FromModel(sub))
}

// PATCH /submissions/:submissionId
func (ctrl *SubmissionController) UpdateSubmission(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengajuan tidak valid")
	}

	var req dto.UpdateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	sub, err := ctrl.Service.UpdateSubmission(c.Context(), id, userID, req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Pengajuan diperbarui", dto.FromModel(sub))
}

// POST /submissions/:submissionId/submit
func (ctrl *SubmissionController) SubmitForReview(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengajuan tidak valid")
	}

	sub, err := ctrl.Service.SubmitForReview(c.Context(), id, userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Pengajuan dikirim dan menunggu review", dto.FromModel(sub))
}

// POST /submissions/:submissionId/documents (multipart: file + document_type)
func (ctrl *SubmissionController) UploadDocument(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengajuan tidak valid")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File dokumen wajib diunggah")
	}
	documentType := c.FormValue("document_type")

	doc, err := ctrl.Service.UploadDocument(c.Context(), id, userID, fh, documentType)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Dokumen terunggah", dto.DocumentFromModel(doc))
}
