package constants

import "fmt"

// Role yang dikenal dari SSO kampus
const (
	RoleMahasiswa  = "MAHASISWA"
	RoleDosen      = "DOSEN"
	RoleAdmin      = "ADMIN"
	RoleKaprodi    = "KAPRODI"
	RoleWakilDekan = "WAKIL_DEKAN"
)

// Template pesan error role
const (
	ErrOnlyStudentsCanAccess = "❌ Hanya mahasiswa yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess   = "❌ Hanya admin prodi/fakultas yang boleh mengakses fitur %s."
)

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleMahasiswa,
		RoleDosen,
		RoleAdmin,
		RoleKaprodi,
		RoleWakilDekan,
	}

	// ADMIN, KAPRODI, dan WAKIL_DEKAN sama-sama punya kapabilitas admin
	// (role-set check, bukan hirarki).
	AdminCapableRoles = []string{
		RoleAdmin,
		RoleKaprodi,
		RoleWakilDekan,
	}

	StudentOnly = []string{
		RoleMahasiswa,
	}
)

// IsAdminCapable: dispatch kapabilitas admin lintas role.
func IsAdminCapable(role string) bool {
	for _, r := range AdminCapableRoles {
		if role == r {
			return true
		}
	}
	return false
}
