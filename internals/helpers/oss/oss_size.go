package oss

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"kerjapraktik_backend/internals/constants"
)

// ValidateFileType: tolak ekstensi di luar allow-list.
func ValidateFileType(filename string, allowList []string) error {
	if strings.TrimSpace(filename) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Nama file kosong")
	}
	if !constants.IsAllowedExt(filename, allowList) {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Tipe file tidak diizinkan (hanya %s)", strings.Join(allowList, ", ")))
	}
	return nil
}

// ValidateFileSize: tolak file di atas maxMB.
func ValidateFileSize(fh *multipart.FileHeader, maxMB int) error {
	if fh == nil {
		return fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	maxBytes := int64(maxMB) * 1024 * 1024
	if fh.Size > maxBytes {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Ukuran file maksimal %dMB", maxMB))
	}
	return nil
}
