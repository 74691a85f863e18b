// internals/features/academic/courses/model/instructor_qualification_model.go
package model

import (
	"time"
)

// Daftar pengajar yang tersertifikasi untuk satu course. Update bersifat
// replace-all: semua baris course dihapus lalu daftar baru di-insert batch.
type InstructorQualificationModel struct {
	QualificationID       uint `gorm:"column:qualification_id;primaryKey;autoIncrement" json:"qualification_id"`
	QualificationCourseID uint `gorm:"column:qualification_course_id;not null;index;uniqueIndex:uq_qualifications_instructor_per_course" json:"qualification_course_id"`

	QualificationInstructorID uint `gorm:"column:qualification_instructor_id;not null;uniqueIndex:uq_qualifications_instructor_per_course" json:"qualification_instructor_id"`

	QualificationType   string `gorm:"column:qualification_type;type:varchar(40);not null;default:''" json:"qualification_type"`
	QualificationLevel  string `gorm:"column:qualification_level;type:varchar(40);not null;default:''" json:"qualification_level"`
	QualificationStatus string `gorm:"column:qualification_status;type:varchar(20);not null;default:'ACTIVE'" json:"qualification_status"`

	QualificationValidFrom *time.Time `gorm:"column:qualification_valid_from" json:"qualification_valid_from,omitempty"`
	QualificationValidTo   *time.Time `gorm:"column:qualification_valid_to" json:"qualification_valid_to,omitempty"`

	QualificationCreatedAt time.Time `gorm:"column:qualification_created_at;not null;autoCreateTime" json:"qualification_created_at"`
}

func (InstructorQualificationModel) TableName() string { return "instructor_qualifications" }
