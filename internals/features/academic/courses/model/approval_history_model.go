// internals/features/academic/courses/model/approval_history_model.go
package model

import (
	"time"
)

type HistoryAction string

const (
	HistoryActionApprove HistoryAction = "APPROVE"
	HistoryActionReject  HistoryAction = "REJECT"
	HistoryActionReturn  HistoryAction = "RETURN"
	HistoryActionSubmit  HistoryAction = "SUBMIT"
	HistoryActionPublish HistoryAction = "PUBLISH"
	HistoryActionArchive HistoryAction = "ARCHIVE"
)

// Ledger audit lifecycle course: append-only, tidak ada operasi
// update/delete di seluruh repo. Dibaca newest-first oleh caller.
type ApprovalHistoryModel struct {
	HistoryID       uint `gorm:"column:history_id;primaryKey;autoIncrement" json:"history_id"`
	HistoryCourseID uint `gorm:"column:history_course_id;not null;index" json:"history_course_id"`

	HistoryAction     HistoryAction `gorm:"column:history_action;type:varchar(20);not null" json:"history_action"`
	HistoryFromStatus CourseStatus  `gorm:"column:history_from_status;type:varchar(20);not null" json:"history_from_status"`
	HistoryToStatus   CourseStatus  `gorm:"column:history_to_status;type:varchar(20);not null" json:"history_to_status"`

	HistoryReviewerID   uint   `gorm:"column:history_reviewer_id;not null" json:"history_reviewer_id"`
	HistoryReviewerRole string `gorm:"column:history_reviewer_role;type:varchar(120);not null" json:"history_reviewer_role"`
	HistoryComment      string `gorm:"column:history_comment;type:text;not null;default:''" json:"history_comment"`

	HistoryCreatedAt time.Time `gorm:"column:history_created_at;not null;autoCreateTime;index" json:"history_created_at"`
}

func (ApprovalHistoryModel) TableName() string { return "course_approval_histories" }
