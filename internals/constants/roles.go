package constants

import "fmt"

// Role names seperti yang dikeluarkan identity provider di klaim JWT.
const (
	RoleLecturer       = "lecturer"
	RoleFacultyAdmin   = "faculty_admin"
	RoleAcademicOffice = "academic_office"
	RoleAcademicBoard  = "academic_board"
	RoleAdmin          = "admin"
)

// Permission strings untuk Permission Gate workflow course.
// approve punya permission sendiri; aksi lain digate course.reject
// (asimetri bawaan sistem lama — jangan dipecah diam-diam).
const (
	PermCourseApprove = "course.approve"
	PermCourseReject  = "course.reject"
)

// Template pesan error role
const (
	ErrOnlyReviewersCanAccess = "Hanya reviewer yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess    = "Hanya admin yang boleh mengakses fitur %s."
)

func RoleErrorReviewer(feature string) string {
	return fmt.Sprintf(ErrOnlyReviewersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleLecturer,
		RoleFacultyAdmin,
		RoleAcademicOffice,
		RoleAcademicBoard,
		RoleAdmin,
	}

	ReviewerRoles = []string{
		RoleFacultyAdmin,
		RoleAcademicOffice,
		RoleAcademicBoard,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
