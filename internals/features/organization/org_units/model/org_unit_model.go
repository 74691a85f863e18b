// internals/features/organization/org_units/model/org_unit_model.go
package model

import (
	"time"

	"gorm.io/gorm"
)

// Unit organisasi (khoa/phong/ban) berbentuk tree lewat parent_id.
// Referensi course_org_unit_id menunjuk ke tabel ini.
type OrgUnitModel struct {
	OrgUnitID       uint  `gorm:"column:org_unit_id;primaryKey;autoIncrement" json:"org_unit_id"`
	OrgUnitParentID *uint `gorm:"column:org_unit_parent_id;index" json:"org_unit_parent_id,omitempty"`

	OrgUnitCode   string  `gorm:"column:org_unit_code;type:varchar(40);not null;uniqueIndex" json:"org_unit_code"`
	OrgUnitNameVi string  `gorm:"column:org_unit_name_vi;type:varchar(200);not null" json:"org_unit_name_vi"`
	OrgUnitNameEn *string `gorm:"column:org_unit_name_en;type:varchar(200)" json:"org_unit_name_en,omitempty"`
	OrgUnitType   string  `gorm:"column:org_unit_type;type:varchar(40);not null;default:''" json:"org_unit_type"`

	OrgUnitIsActive bool `gorm:"column:org_unit_is_active;not null;default:true" json:"org_unit_is_active"`

	OrgUnitCreatedAt time.Time      `gorm:"column:org_unit_created_at;not null;autoCreateTime" json:"org_unit_created_at"`
	OrgUnitUpdatedAt time.Time      `gorm:"column:org_unit_updated_at;not null;autoUpdateTime" json:"org_unit_updated_at"`
	OrgUnitDeletedAt gorm.DeletedAt `gorm:"column:org_unit_deleted_at;index" json:"org_unit_deleted_at,omitempty"`
}

func (OrgUnitModel) TableName() string { return "org_units" }
