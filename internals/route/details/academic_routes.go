// internals/route/details/academic_routes.go
package details

import (
	CourseRoutes "academix_backend/internals/features/academic/courses/route"
	OrgUnitRoutes "academix_backend/internals/features/organization/org_units/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/* ===================== ADMIN ===================== */
// Semua endpoint kurikulum lewat grup admin (JWT + permission di level action).
func AcademicAdminRoutes(r fiber.Router, db *gorm.DB) {
	CourseRoutes.CourseAdminRoutes(r, db)
	OrgUnitRoutes.OrgUnitAdminRoutes(r, db)
}
