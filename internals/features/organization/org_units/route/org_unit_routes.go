// internals/features/organization/org_units/route/org_unit_routes.go
package route

import (
	orgController "academix_backend/internals/features/organization/org_units/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func OrgUnitAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := orgController.NewOrgUnitController(db)

	units := r.Group("/org-units")
	units.Post("/", ctrl.CreateOrgUnit)
	units.Get("/", ctrl.ListOrgUnits)
	units.Get("/:id", ctrl.GetOrgUnit)
	units.Put("/:id", ctrl.UpdateOrgUnit)
	units.Delete("/:id", ctrl.DeleteOrgUnit)
}
