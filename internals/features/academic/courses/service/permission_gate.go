// internals/features/academic/courses/service/permission_gate.go
package service

import (
	"github.com/gofiber/fiber/v2"

	"academix_backend/internals/constants"
	helperAuth "academix_backend/internals/helpers/auth"
)

// AuthorizeWorkflowAction: approve butuh course.approve; semua action lain
// (reject, request_changes, forward, final_approve, final_reject, delete)
// digate course.reject. Denial harus terjadi SEBELUM ada write apa pun.
func AuthorizeWorkflowAction(actor helperAuth.ActorContext, action WorkflowAction) error {
	required := constants.PermCourseReject
	if action == ActionApprove {
		required = constants.PermCourseApprove
	}
	if !actor.HasPermission(required) {
		return fiber.NewError(fiber.StatusUnauthorized,
			"Anda tidak punya izin untuk aksi workflow '"+string(action)+"'")
	}
	return nil
}
