package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "kerjapraktik_backend/internals/features/internship/letters/dto"
	repo "kerjapraktik_backend/internals/features/internship/letters/repository"
	service "kerjapraktik_backend/internals/features/internship/letters/service"
	submissionRepo "kerjapraktik_backend/internals/features/internship/submissions/repository"
	helper "kerjapraktik_backend/internals/helpers"
	helperAuth "kerjapraktik_backend/internals/helpers/auth"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

var validate = validator.New()

type LetterController struct {
	Service *service.LetterService
}

func NewLetterController(db *gorm.DB, blob oss.BlobService, renderer service.LetterRenderer) *LetterController {
	return &LetterController{
		Service: service.NewLetterService(
			repo.NewLetterRepository(db),
			submissionRepo.NewSubmissionRepository(db),
			renderer,
			blob,
		),
	}
}

// POST /letters/:submissionId
func (ctrl *LetterController) GenerateLetter(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	submissionID, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengajuan tidak valid")
	}

	var req dto.GenerateLetterRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
		if err := validate.Struct(req); err != nil {
			return helper.JsonValidationError(c, helper.ValidationMap(err))
		}
	}

	letter, err := ctrl.Service.GenerateLetter(c.Context(), submissionID, adminID, req.Format)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Surat pengantar diterbitkan", dto.FromModel(letter))
}

// GET /letters
func (ctrl *LetterController) ListLetters(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	items, total, err := ctrl.Service.ListLetters(c.Context(), paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "Daftar surat pengantar", dto.FromModels(items),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /letters/submission/:submissionId
func (ctrl *LetterController) GetLettersBySubmission(c *fiber.Ctx) error {
	submissionID, err := uuid.Parse(c.Params("submissionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengajuan tidak valid")
	}

	letters, err := ctrl.Service.GetLettersBySubmission(c.Context(), submissionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Surat pengantar ditemukan", dto.FromModels(letters))
}
