package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"kerjapraktik_backend/internals/configs"
	helperAuth "kerjapraktik_backend/internals/helpers/auth"
)

// Path publik yang di-skip auth (health check dsb)
var skipPaths = map[string]struct{}{
	"/health": {},
}

type SSOAuthOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
}

// AuthSSO memverifikasi token dari SSO kampus dan menghydrate Locals.
// Dua jalur: JWT HS256 dari SSO (mahasiswa & staf), atau Google Workspace
// ID token untuk akun staf (header X-Auth-Provider: google).
func AuthSSO(db *gorm.DB, o SSOAuthOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)

	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		if strings.EqualFold(strings.TrimSpace(c.Get("X-Auth-Provider")), "google") {
			return verifyGoogleIDToken(c, db, raw)
		}

		if secret == "" {
			log.Println("[ERROR] SSO_JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing SSO JWT Secret")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// === HYDRATE LOCALS DARI CLAIM SSO ===
		if v := strClaim(claims, "user_id"); v != "" {
			c.Locals(helperAuth.LocUserID, v)
		} else if v := strClaim(claims, "sub"); v != "" {
			c.Locals(helperAuth.LocUserID, v)
		} else {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		if v := strClaim(claims, "role"); v != "" {
			c.Locals(helperAuth.LocRole, strings.ToUpper(v))
		}
		if v := strClaim(claims, "name"); v != "" {
			c.Locals(helperAuth.LocName, v)
		}
		if v := strClaim(claims, "email"); v != "" {
			c.Locals(helperAuth.LocEmail, v)
		}
		if v := strClaim(claims, "nim"); v != "" {
			c.Locals(helperAuth.LocNIM, v)
		}
		if v := strClaim(claims, "nip"); v != "" {
			c.Locals(helperAuth.LocNIP, v)
		}

		return c.Next()
	}
}

// verifyGoogleIDToken: jalur staf fakultas yang login lewat Google Workspace.
// Identitas dipetakan ke baris users lokal via email.
func verifyGoogleIDToken(c *fiber.Ctx, db *gorm.DB, idToken string) error {
	audience := strings.TrimSpace(configs.SSOGoogleAudience)
	if audience == "" {
		log.Println("[ERROR] SSO_GOOGLE_AUDIENCE kosong")
		return fiber.NewError(fiber.StatusInternalServerError, "Missing Google audience config")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{audience}); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid Google ID Token")
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to decode ID Token")
	}

	var row struct {
		UserID   string `gorm:"column:user_id"`
		UserRole string `gorm:"column:user_role"`
		UserName string `gorm:"column:user_name"`
		UserNIP  string `gorm:"column:user_nip"`
	}
	if err := db.WithContext(c.Context()).
		Table("users").
		Select("user_id, user_role, user_name, COALESCE(user_nip, '') AS user_nip").
		Where("user_email = ?", claimSet.Email).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Akun Google tidak terdaftar")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	c.Locals(helperAuth.LocUserID, row.UserID)
	c.Locals(helperAuth.LocRole, strings.ToUpper(row.UserRole))
	c.Locals(helperAuth.LocName, row.UserName)
	c.Locals(helperAuth.LocEmail, claimSet.Email)
	if row.UserNIP != "" {
		c.Locals(helperAuth.LocNIP, row.UserNIP)
	}
	return c.Next()
}

func strClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("exp claim missing")
	}
	var exp time.Time
	switch t := expRaw.(type) {
	case float64:
		exp = time.Unix(int64(t), 0)
	case int64:
		exp = time.Unix(t, 0)
	default:
		return errors.New("exp claim invalid")
	}
	if time.Now().After(exp.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}
