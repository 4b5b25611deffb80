package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kerjapraktik_backend/internals/configs"
	letterService "kerjapraktik_backend/internals/features/internship/letters/service"
	oss "kerjapraktik_backend/internals/helpers/oss"
	ssoMiddleware "kerjapraktik_backend/internals/middlewares/auth"
	routeDetails "kerjapraktik_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// Binding storage & renderer dibuat sekali dan dibagikan ke semua route.
	blob, err := oss.NewOSSBlobServiceFromEnv("kerja-praktik")
	var blobService oss.BlobService = blob
	if err != nil {
		log.Printf("[WARN] binding OSS tidak tersedia: %v — endpoint unggah akan menolak dengan 500", err)
		blobService = oss.NewUnboundBlobService()
	}

	var renderer letterService.LetterRenderer
	httpRenderer, err := letterService.NewHTTPLetterRendererFromEnv()
	if err != nil {
		log.Printf("[WARN] renderer surat tidak dikonfigurasi: %v", err)
		renderer = letterService.UnboundRenderer{}
	} else {
		renderer = httpRenderer
	}

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up /api/u group...")
	private := app.Group("/api/u",
		ssoMiddleware.AuthSSO(db, ssoMiddleware.SSOAuthOpts{
			Secret:              configs.SSOJWTSecret,
			AllowCookieFallback: true,
		}),
	)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up /api/a group (Auth + AdminCapable)...")
	admin := app.Group("/api/a",
		ssoMiddleware.AuthSSO(db, ssoMiddleware.SSOAuthOpts{
			Secret:              configs.SSOJWTSecret,
			AllowCookieFallback: true,
		}),
		ssoMiddleware.OnlyAdminCapable("panel administrasi kerja praktik"),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(private, db, blobService)

	log.Println("[INFO] Mounting Internship routes...")
	routeDetails.InternshipUserRoutes(private, db, blobService)
	routeDetails.InternshipAdminRoutes(admin, db, blobService, renderer)
}
