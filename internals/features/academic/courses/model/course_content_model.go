// internals/features/academic/courses/model/course_content_model.go
package model

import (
	"time"
)

// 1:1 dengan courses. Semua field nullable: update bersifat merge-on-present,
// field yang tidak dikirim tidak pernah disentuh.
type CourseContentModel struct {
	ContentID       uint `gorm:"column:content_id;primaryKey;autoIncrement" json:"content_id"`
	ContentCourseID uint `gorm:"column:content_course_id;not null;uniqueIndex" json:"content_course_id"`

	ContentPrerequisites     *string  `gorm:"column:content_prerequisites;type:text" json:"content_prerequisites,omitempty"`
	ContentObjectives        *string  `gorm:"column:content_objectives;type:text" json:"content_objectives,omitempty"`
	ContentAssessmentMethods *string  `gorm:"column:content_assessment_methods;type:text" json:"content_assessment_methods,omitempty"`
	ContentPassingGrade      *float64 `gorm:"column:content_passing_grade" json:"content_passing_grade,omitempty"`

	ContentCreatedAt time.Time `gorm:"column:content_created_at;not null;autoCreateTime" json:"content_created_at"`
	ContentUpdatedAt time.Time `gorm:"column:content_updated_at;not null;autoUpdateTime" json:"content_updated_at"`
}

func (CourseContentModel) TableName() string { return "course_contents" }
