// internals/features/organization/org_units/dto/org_unit_dto.go
package dto

import (
	"strings"
	"time"

	m "academix_backend/internals/features/organization/org_units/model"
)

type CreateOrgUnitRequest struct {
	ParentID *uint   `json:"parent_id" validate:"omitempty,min=1"`
	Code     string  `json:"code" validate:"required,min=1,max=40"`
	NameVi   string  `json:"name_vi" validate:"required,min=1,max=200"`
	NameEn   *string `json:"name_en" validate:"omitempty,max=200"`
	Type     string  `json:"type" validate:"omitempty,max=40"`
	IsActive *bool   `json:"is_active"`
}

func (r *CreateOrgUnitRequest) Normalize() {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.NameVi = strings.TrimSpace(r.NameVi)
	r.Type = strings.TrimSpace(r.Type)
	if r.NameEn != nil {
		v := strings.TrimSpace(*r.NameEn)
		if v == "" {
			r.NameEn = nil
		} else {
			r.NameEn = &v
		}
	}
}

func (r CreateOrgUnitRequest) ToModel() m.OrgUnitModel {
	mo := m.OrgUnitModel{
		OrgUnitParentID: r.ParentID,
		OrgUnitCode:     r.Code,
		OrgUnitNameVi:   r.NameVi,
		OrgUnitNameEn:   r.NameEn,
		OrgUnitType:     r.Type,
		OrgUnitIsActive: true,
	}
	if r.IsActive != nil {
		mo.OrgUnitIsActive = *r.IsActive
	}
	return mo
}

type UpdateOrgUnitRequest struct {
	ParentID *uint   `json:"parent_id" validate:"omitempty,min=1"`
	Code     *string `json:"code" validate:"omitempty,min=1,max=40"`
	NameVi   *string `json:"name_vi" validate:"omitempty,min=1,max=200"`
	NameEn   *string `json:"name_en" validate:"omitempty,max=200"`
	Type     *string `json:"type" validate:"omitempty,max=40"`
	IsActive *bool   `json:"is_active"`
}

func (r *UpdateOrgUnitRequest) Normalize() {
	if r.Code != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Code))
		r.Code = &v
	}
	if r.NameVi != nil {
		v := strings.TrimSpace(*r.NameVi)
		r.NameVi = &v
	}
	if r.NameEn != nil {
		v := strings.TrimSpace(*r.NameEn)
		r.NameEn = &v
	}
	if r.Type != nil {
		v := strings.TrimSpace(*r.Type)
		r.Type = &v
	}
}

func (r UpdateOrgUnitRequest) Apply(mo *m.OrgUnitModel) {
	if r.ParentID != nil {
		mo.OrgUnitParentID = r.ParentID
	}
	if r.Code != nil {
		mo.OrgUnitCode = *r.Code
	}
	if r.NameVi != nil {
		mo.OrgUnitNameVi = *r.NameVi
	}
	if r.NameEn != nil {
		mo.OrgUnitNameEn = r.NameEn
	}
	if r.Type != nil {
		mo.OrgUnitType = *r.Type
	}
	if r.IsActive != nil {
		mo.OrgUnitIsActive = *r.IsActive
	}
}

type OrgUnitResponse struct {
	OrgUnitID uint      `json:"org_unit_id"`
	ParentID  *uint     `json:"parent_id,omitempty"`
	Code      string    `json:"code"`
	NameVi    string    `json:"name_vi"`
	NameEn    *string   `json:"name_en,omitempty"`
	Type      string    `json:"type"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(mo m.OrgUnitModel) OrgUnitResponse {
	return OrgUnitResponse{
		OrgUnitID: mo.OrgUnitID,
		ParentID:  mo.OrgUnitParentID,
		Code:      mo.OrgUnitCode,
		NameVi:    mo.OrgUnitNameVi,
		NameEn:    mo.OrgUnitNameEn,
		Type:      mo.OrgUnitType,
		IsActive:  mo.OrgUnitIsActive,
		CreatedAt: mo.OrgUnitCreatedAt,
		UpdatedAt: mo.OrgUnitUpdatedAt,
	}
}

func FromModels(rows []m.OrgUnitModel) []OrgUnitResponse {
	out := make([]OrgUnitResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(rows[i]))
	}
	return out
}
