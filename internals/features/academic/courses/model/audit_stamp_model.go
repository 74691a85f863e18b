// internals/features/academic/courses/model/audit_stamp_model.go
package model

import (
	"time"
)

// 1:1 dengan courses; diperbarui pada setiap mutasi course,
// ada workflow action ataupun tidak.
type CourseAuditStampModel struct {
	StampID       uint `gorm:"column:stamp_id;primaryKey;autoIncrement" json:"stamp_id"`
	StampCourseID uint `gorm:"column:stamp_course_id;not null;uniqueIndex" json:"stamp_course_id"`

	StampUpdatedBy uint      `gorm:"column:stamp_updated_by;not null" json:"stamp_updated_by"`
	StampUpdatedAt time.Time `gorm:"column:stamp_updated_at;not null" json:"stamp_updated_at"`
}

func (CourseAuditStampModel) TableName() string { return "course_audit_stamps" }
