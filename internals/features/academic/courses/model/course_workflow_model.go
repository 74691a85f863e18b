// internals/features/academic/courses/model/course_workflow_model.go
package model

import (
	"time"
)

type WorkflowStage string

const (
	StageFaculty        WorkflowStage = "FACULTY"
	StageAcademicOffice WorkflowStage = "ACADEMIC_OFFICE"
	StageAcademicBoard  WorkflowStage = "ACADEMIC_BOARD"
)

// 1:1 dengan courses. Status di sini mirror dari course_status supaya
// query sisi workflow tidak perlu join ke courses.
type CourseWorkflowModel struct {
	WorkflowID       uint `gorm:"column:workflow_id;primaryKey;autoIncrement" json:"workflow_id"`
	WorkflowCourseID uint `gorm:"column:workflow_course_id;not null;uniqueIndex" json:"workflow_course_id"`

	WorkflowStatus   CourseStatus  `gorm:"column:workflow_status;type:varchar(20);not null;default:'DRAFT'" json:"workflow_status"`
	WorkflowStage    WorkflowStage `gorm:"column:workflow_stage;type:varchar(20);not null;default:'FACULTY'" json:"workflow_stage"`
	WorkflowPriority int           `gorm:"column:workflow_priority;not null;default:0" json:"workflow_priority"`
	WorkflowNotes    *string       `gorm:"column:workflow_notes;type:text" json:"workflow_notes,omitempty"`

	WorkflowCreatedAt time.Time `gorm:"column:workflow_created_at;not null;autoCreateTime" json:"workflow_created_at"`
	WorkflowUpdatedAt time.Time `gorm:"column:workflow_updated_at;not null;autoUpdateTime" json:"workflow_updated_at"`
}

func (CourseWorkflowModel) TableName() string { return "course_workflows" }
