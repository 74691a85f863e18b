// internals/features/academic/courses/route/course_routes.go
package route

import (
	courseController "academix_backend/internals/features/academic/courses/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Semua endpoint course lewat grup admin (sudah di-auth di index).
func CourseAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := courseController.NewCourseController(db)

	courses := r.Group("/courses")
	courses.Post("/", ctrl.CreateCourse)
	courses.Get("/", ctrl.ListCourses)
	courses.Get("/:id", ctrl.GetCourse)
	courses.Put("/:id", ctrl.UpdateCourse)
	courses.Delete("/:id", ctrl.DeleteCourse)
}
