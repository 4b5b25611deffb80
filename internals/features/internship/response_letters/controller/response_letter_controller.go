package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "kerjapraktik_backend/internals/features/internship/response_letters/dto"
	repo "kerjapraktik_backend/internals/features/internship/response_letters/repository"
	service "kerjapraktik_backend/internals/features/internship/response_letters/service"
	submissionRepo "kerjapraktik_backend/internals/features/internship/submissions/repository"
	helper "kerjapraktik_backend/internals/helpers"
	helperAuth "kerjapraktik_backend/internals/helpers/auth"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

var validate = validator.New()

type ResponseLetterController struct {
	Service *service.ResponseLetterService
}

func NewResponseLetterController(db *gorm.DB, blob oss.BlobService) *ResponseLetterController {
	return &ResponseLetterController{
		Service: service.NewResponseLetterService(
			repo.NewResponseLetterRepository(db),
			submissionRepo.NewSubmissionRepository(db),
			submissionRepo.NewTeamGateRepository(db),
			blob,
		),
	}
}

// jsonResponseLetterError menambah error_code spesifik untuk dua konflik
// yang dibedakan klien; sisanya lewat pemetaan umum.
func jsonResponseLetterError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAlreadySubmitted):
		return helper.JsonErrorWithCode(c, fiber.StatusConflict, "RESPONSE_LETTER_ALREADY_SUBMITTED", service.ErrAlreadySubmitted.Message)
	case errors.Is(err, service.ErrAlreadyVerified):
		return helper.JsonErrorWithCode(c, fiber.StatusConflict, "RESPONSE_LETTER_ALREADY_VERIFIED", service.ErrAlreadyVerified.Message)
	}
	return helper.JsonFromError(c, err)
}

// POST /response-letters/:submissionId (multipart: file + letter_status)
func (ctrl *ResponseLetterController) SubmitResponseLetter(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	submissionID, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengajuan tidak valid")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File surat balasan wajib diunggah")
	}
	decision := c.FormValue("letter_status")

	letter, err := ctrl.Service.SubmitResponseLetter(c.Context(), submissionID, userID, fh, decision)
	if err != nil {
		return jsonResponseLetterError(c, err)
	}
	return helper.JsonCreated(c, "Surat balasan terunggah", dto.FromModel(letter))
}

// GET /response-letters/submission/:submissionId
func (ctrl *ResponseLetterController) GetBySubmission(c *fiber.Ctx) error {
	submissionID, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengajuan tidak valid")
	}

	letter, err := ctrl.Service.GetBySubmission(c.Context(), submissionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Surat balasan ditemukan", dto.FromModel(letter))
}

// PATCH /response-letters/:responseLetterId/verify
func (ctrl *ResponseLetterController) VerifyResponseLetter(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(c.Params("responseLetterId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID surat balasan tidak valid")
	}

	var req dto.VerifyResponseLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	letter, err := ctrl.Service.VerifyResponseLetter(c.Context(), id, adminID, req.Decision)
	if err != nil {
		return jsonResponseLetterError(c, err)
	}
	return helper.JsonUpdated(c, "Surat balasan diverifikasi", dto.FromModel(letter))
}

// DELETE /response-letters/:responseLetterId
func (ctrl *ResponseLetterController) DeleteResponseLetter(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("responseLetterId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID surat balasan tidak valid")
	}

	if err := ctrl.Service.DeleteResponseLetter(c.Context(), id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Surat balasan dihapus", nil)
}
