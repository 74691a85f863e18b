// internals/features/academic/courses/model/course_model.go
package model

import (
	"time"
)

type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "DRAFT"
	CourseStatusSubmitted CourseStatus = "SUBMITTED"
	CourseStatusReviewing CourseStatus = "REVIEWING"
	CourseStatusApproved  CourseStatus = "APPROVED"
	CourseStatusRejected  CourseStatus = "REJECTED"
	CourseStatusPublished CourseStatus = "PUBLISHED"
	CourseStatusArchived  CourseStatus = "ARCHIVED"
)

// ValidCourseStatus: hanya tujuh status lifecycle yang dikenal.
func ValidCourseStatus(s string) bool {
	switch CourseStatus(s) {
	case CourseStatusDraft, CourseStatusSubmitted, CourseStatusReviewing,
		CourseStatusApproved, CourseStatusRejected, CourseStatusPublished,
		CourseStatusArchived:
		return true
	}
	return false
}

// NOTE:
// - course_code unik per org unit (uq_courses_code_per_org_unit)
// - course_status hanya boleh ditulis lewat workflow service
type CourseModel struct {
	CourseID        uint `gorm:"column:course_id;primaryKey;autoIncrement" json:"course_id"`
	CourseOrgUnitID uint `gorm:"column:course_org_unit_id;not null;index;uniqueIndex:uq_courses_code_per_org_unit" json:"course_org_unit_id"`

	CourseCode   string  `gorm:"column:course_code;type:varchar(40);not null;uniqueIndex:uq_courses_code_per_org_unit" json:"course_code"`
	CourseNameVi string  `gorm:"column:course_name_vi;type:varchar(200);not null" json:"course_name_vi"`
	CourseNameEn *string `gorm:"column:course_name_en;type:varchar(200)" json:"course_name_en,omitempty"`

	CourseCredits     int     `gorm:"column:course_credits;not null;default:0" json:"course_credits"`
	CourseType        string  `gorm:"column:course_type;type:varchar(40);not null;default:''" json:"course_type"`
	CourseDescription *string `gorm:"column:course_description;type:text" json:"course_description,omitempty"`

	CourseStatus CourseStatus `gorm:"column:course_status;type:varchar(20);not null;default:'DRAFT'" json:"course_status"`

	CourseCreatedAt time.Time `gorm:"column:course_created_at;not null;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time `gorm:"column:course_updated_at;not null;autoUpdateTime" json:"course_updated_at"`
}

func (CourseModel) TableName() string { return "courses" }
