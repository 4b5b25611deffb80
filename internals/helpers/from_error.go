package helper

import "github.com/gofiber/fiber/v2"

// JsonFromError menerjemahkan error dari service (biasanya *fiber.Error)
// menjadi response envelope konsisten via JsonError.
// Controller tidak boleh mengarang business error sendiri.
func JsonFromError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
