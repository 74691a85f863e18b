package service_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "academix_backend/internals/features/academic/courses/model"
	"academix_backend/internals/features/academic/courses/service"
	helperAuth "academix_backend/internals/helpers/auth"
)

func TestResolveTransition_Stages(t *testing.T) {
	cases := map[string]m.WorkflowStage{
		"approve":         m.StageAcademicOffice,
		"reject":          m.StageFaculty,
		"request_changes": m.StageFaculty,
		"forward":         m.StageAcademicBoard,
		"final_approve":   m.StageAcademicBoard,
		"final_reject":    m.StageAcademicBoard,
		"delete":          m.StageAcademicOffice,
	}
	for action, wantStage := range cases {
		_, tr, ok := service.ResolveTransition(action)
		require.True(t, ok, action)
		assert.Equal(t, wantStage, tr.Stage, action)
	}

	_, _, ok := service.ResolveTransition("escalate")
	assert.False(t, ok)
}

func TestResolveAppliedStatus(t *testing.T) {
	valid := "PUBLISHED"
	assert.Equal(t, m.CourseStatusPublished, service.ResolveAppliedStatus(&valid))

	invalid := "ON_FIRE"
	assert.Equal(t, m.CourseStatusDraft, service.ResolveAppliedStatus(&invalid))

	assert.Equal(t, m.CourseStatusDraft, service.ResolveAppliedStatus(nil))
}

func TestAuthorizeWorkflowAction_ApproveNeedsApprovePerm(t *testing.T) {
	approver := helperAuth.ActorContext{
		RoleName:    "academic_office",
		Permissions: []string{"course.approve"},
	}
	rejecter := helperAuth.ActorContext{
		RoleName:    "academic_board",
		Permissions: []string{"course.reject"},
	}

	// approve: hanya course.approve yang lolos
	assert.NoError(t, service.AuthorizeWorkflowAction(approver, service.ActionApprove))
	err := service.AuthorizeWorkflowAction(rejecter, service.ActionApprove)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnauthorized, fe.Code)

	// seluruh action lain digate course.reject
	others := []service.WorkflowAction{
		service.ActionReject, service.ActionRequestChanges, service.ActionForward,
		service.ActionFinalApprove, service.ActionFinalReject, service.ActionDelete,
	}
	for _, a := range others {
		assert.NoError(t, service.AuthorizeWorkflowAction(rejecter, a), string(a))
		assert.Error(t, service.AuthorizeWorkflowAction(approver, a), string(a))
	}
}

func TestBuildHistoryComment(t *testing.T) {
	actor := helperAuth.ActorContext{
		RoleName:        "academic_board",
		RoleDescription: "Hội đồng khoa học",
	}

	note := "cần bổ sung tài liệu tham khảo"
	got := service.BuildHistoryComment(actor, "Yêu cầu chỉnh sửa", &note)
	assert.Equal(t, "academic_board - Hội đồng khoa học - Yêu cầu chỉnh sửa: cần bổ sung tài liệu tham khảo", got)

	got = service.BuildHistoryComment(actor, "Phê duyệt", nil)
	assert.Equal(t, "academic_board - Hội đồng khoa học - Phê duyệt", got)

	empty := "   "
	got = service.BuildHistoryComment(actor, "Phê duyệt", &empty)
	assert.Equal(t, "academic_board - Hội đồng khoa học - Phê duyệt", got)
}
