package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "kerjapraktik_backend/internals/features/users/users/dto"
	repo "kerjapraktik_backend/internals/features/users/users/repository"
	service "kerjapraktik_backend/internals/features/users/users/service"
	helper "kerjapraktik_backend/internals/helpers"
	helperAuth "kerjapraktik_backend/internals/helpers/auth"
	oss "kerjapraktik_backend/internals/helpers/oss"
)

type UserController struct {
	Service *service.UserService
}

func NewUserController(db *gorm.DB, blob oss.BlobService) *UserController {
	return &UserController{
		Service: service.NewUserService(repo.NewUserRepository(db), blob),
	}
}

// GET /users/me
// Sekalian sync cache lokal dari claim SSO request ini.
func (ctrl *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	role, err := helperAuth.GetRoleFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	u, err := ctrl.Service.SyncFromSSO(c.Context(), service.SSOClaims{
		UserID: userID,
		Name:   helperAuth.GetNameFromToken(c),
		Email:  helperAuth.GetEmailFromToken(c),
		Role:   role,
		NIM:    helperAuth.GetNIMFromToken(c),
		NIP:    helperAuth.GetNIPFromToken(c),
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	return helper.JsonOK(c, "Profil ditemukan", dto.FromModel(u))
}

// GET /users/nim/:nim — pencarian calon anggota oleh ketua tim.
func (ctrl *UserController) GetUserByNIM(c *fiber.Ctx) error {
	u, err := ctrl.Service.GetByNIM(c.Context(), c.Params("nim"))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "User ditemukan", dto.FromModel(u))
}

// PATCH /users/me/avatar (multipart, field "avatar")
func (ctrl *UserController) UpdateAvatar(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File avatar wajib diunggah")
	}

	url, err := ctrl.Service.UpdateAvatar(c.Context(), userID, fh)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	return helper.JsonUpdated(c, "Avatar diperbarui", fiber.Map{
		"user_avatar_url": url,
	})
}
