// internals/features/academic/courses/service/transition_table.go
package service

import (
	m "academix_backend/internals/features/academic/courses/model"
)

type WorkflowAction string

const (
	ActionApprove        WorkflowAction = "approve"
	ActionReject         WorkflowAction = "reject"
	ActionRequestChanges WorkflowAction = "request_changes"
	ActionForward        WorkflowAction = "forward"
	ActionFinalApprove   WorkflowAction = "final_approve"
	ActionFinalReject    WorkflowAction = "final_reject"
	ActionDelete         WorkflowAction = "delete"
)

type transition struct {
	Stage         m.WorkflowStage
	HistoryAction m.HistoryAction
	Label         string // label manusiawi untuk komentar audit
}

// Stage tujuan dihitung murni dari action yang diminta, bukan dari stage
// sekarang. Tabel tetap, jangan diturunkan dari state.
var transitionTable = map[WorkflowAction]transition{
	ActionApprove:        {m.StageAcademicOffice, m.HistoryActionApprove, "Phê duyệt"},
	ActionReject:         {m.StageFaculty, m.HistoryActionReject, "Từ chối"},
	ActionRequestChanges: {m.StageFaculty, m.HistoryActionReturn, "Yêu cầu chỉnh sửa"},
	ActionForward:        {m.StageAcademicBoard, m.HistoryActionSubmit, "Chuyển tiếp"},
	ActionFinalApprove:   {m.StageAcademicBoard, m.HistoryActionPublish, "Phê duyệt cuối cùng"},
	ActionFinalReject:    {m.StageAcademicBoard, m.HistoryActionReject, "Từ chối cuối cùng"},
	ActionDelete:         {m.StageAcademicOffice, m.HistoryActionArchive, "Lưu trữ"},
}

// ResolveTransition memetakan string action ke entri tabel; false untuk
// action yang tidak dikenal.
func ResolveTransition(action string) (WorkflowAction, transition, bool) {
	a := WorkflowAction(action)
	t, ok := transitionTable[a]
	return a, t, ok
}

// ResolveAppliedStatus: status yang diterapkan dibaca dari request kalau
// valid, selain itu jatuh ke DRAFT.
func ResolveAppliedStatus(requested *string) m.CourseStatus {
	if requested != nil && m.ValidCourseStatus(*requested) {
		return m.CourseStatus(*requested)
	}
	return m.CourseStatusDraft
}
