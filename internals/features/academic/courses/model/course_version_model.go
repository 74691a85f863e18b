// internals/features/academic/courses/model/course_version_model.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

type VersionStatus string

const (
	VersionStatusDraft     VersionStatus = "DRAFT"
	VersionStatusPublished VersionStatus = "PUBLISHED"
)

// Satu course punya >= 1 versi silabus; update silabus memakai versi DRAFT
// terakhir (atau membuat baru), lalu mengganti seluruh minggu (replace-all).
type CourseVersionModel struct {
	VersionID       uint `gorm:"column:version_id;primaryKey;autoIncrement" json:"version_id"`
	VersionCourseID uint `gorm:"column:version_course_id;not null;index" json:"version_course_id"`

	VersionNumber int           `gorm:"column:version_number;not null;default:1" json:"version_number"`
	VersionStatus VersionStatus `gorm:"column:version_status;type:varchar(20);not null;default:'DRAFT'" json:"version_status"`

	VersionCreatedAt time.Time `gorm:"column:version_created_at;not null;autoCreateTime" json:"version_created_at"`
	VersionUpdatedAt time.Time `gorm:"column:version_updated_at;not null;autoUpdateTime" json:"version_updated_at"`
}

func (CourseVersionModel) TableName() string { return "course_versions" }

// Minggu silabus milik satu versi, diurutkan week_number saat dibaca.
// week_number sengaja tidak unik per versi (mengikuti sumber data lama).
type SyllabusWeekModel struct {
	WeekID        uint `gorm:"column:week_id;primaryKey;autoIncrement" json:"week_id"`
	WeekVersionID uint `gorm:"column:week_version_id;not null;index" json:"week_version_id"`

	WeekNumber int    `gorm:"column:week_number;not null" json:"week_number"`
	WeekTopic  string `gorm:"column:week_topic;type:varchar(300);not null" json:"week_topic"`

	WeekMaterials   datatypes.JSON `gorm:"column:week_materials;type:jsonb" json:"week_materials,omitempty"`
	WeekAssignments datatypes.JSON `gorm:"column:week_assignments;type:jsonb" json:"week_assignments,omitempty"`

	WeekDurationHours int  `gorm:"column:week_duration_hours;not null;default:0" json:"week_duration_hours"`
	WeekIsExam        bool `gorm:"column:week_is_exam;not null;default:false" json:"week_is_exam"`

	WeekCreatedAt time.Time `gorm:"column:week_created_at;not null;autoCreateTime" json:"week_created_at"`
}

func (SyllabusWeekModel) TableName() string { return "syllabus_weeks" }
