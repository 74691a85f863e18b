// internals/features/organization/org_units/controller/org_unit_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	orgDTO "academix_backend/internals/features/organization/org_units/dto"
	orgModel "academix_backend/internals/features/organization/org_units/model"
	helper "academix_backend/internals/helpers"
	helperAuth "academix_backend/internals/helpers/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrgUnitController struct {
	DB *gorm.DB
}

func NewOrgUnitController(db *gorm.DB) *OrgUnitController {
	return &OrgUnitController{DB: db}
}

func parseOrgUnitID(c *fiber.Ctx) (uint, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID org unit tidak valid")
	}
	return uint(id), nil
}

// CREATE
// POST /api/a/org-units
func (h *OrgUnitController) CreateOrgUnit(c *fiber.Ctx) error {
	if _, err := helperAuth.GetActorFromLocals(c); err != nil {
		return helper.JsonFromError(c, err)
	}

	var req orgDTO.CreateOrgUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		// parent harus ada (kalau diisi)
		if req.ParentID != nil {
			var cnt int64
			if err := tx.Model(&orgModel.OrgUnitModel{}).
				Where("org_unit_id = ?", *req.ParentID).
				Count(&cnt).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek parent org unit")
			}
			if cnt == 0 {
				return fiber.NewError(fiber.StatusConflict, "Parent org unit tidak ditemukan")
			}
		}

		// cek duplikat code (abaikan yang soft-deleted)
		var cnt int64
		if err := tx.Model(&orgModel.OrgUnitModel{}).
			Where("lower(org_unit_code) = lower(?)", req.Code).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek duplikasi kode")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Kode org unit sudah digunakan")
		}

		mo := req.ToModel()
		if err := tx.Create(&mo).Error; err != nil {
			return helper.MapDBError(err, "Kode org unit sudah digunakan")
		}

		c.Locals("created_org_unit", mo)
		return nil
	}); err != nil {
		return helper.JsonFromError(c, err)
	}

	created, _ := c.Locals("created_org_unit").(orgModel.OrgUnitModel)
	return helper.JsonCreated(c, "Org unit berhasil dibuat", orgDTO.FromModel(created))
}

// DETAIL
// GET /api/a/org-units/:id
func (h *OrgUnitController) GetOrgUnit(c *fiber.Ctx) error {
	if _, err := helperAuth.GetActorFromLocals(c); err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := parseOrgUnitID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var mo orgModel.OrgUnitModel
	if err := h.DB.First(&mo, "org_unit_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Org unit tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil org unit")
	}
	return helper.JsonOK(c, "OK", orgDTO.FromModel(mo))
}

// LIST
// GET /api/a/org-units?parent_id=&active=&q=&page=&per_page=
func (h *OrgUnitController) ListOrgUnits(c *fiber.Ctx) error {
	if _, err := helperAuth.GetActorFromLocals(c); err != nil {
		return helper.JsonFromError(c, err)
	}

	pg := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&orgModel.OrgUnitModel{})
	if raw := strings.TrimSpace(c.Query("parent_id")); raw != "" {
		pid, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "parent_id tidak valid")
		}
		q = q.Where("org_unit_parent_id = ?", pid)
	}
	if raw := strings.TrimSpace(c.Query("active")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "active tidak valid")
		}
		q = q.Where("org_unit_is_active = ?", b)
	}
	if kw := strings.TrimSpace(c.Query("q")); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		q = q.Where("lower(org_unit_code) LIKE ? OR lower(org_unit_name_vi) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung org unit")
	}

	var rows []orgModel.OrgUnitModel
	if err := q.Order("org_unit_code ASC").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil org unit")
	}

	return helper.JsonList(c, "OK", orgDTO.FromModels(rows),
		helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage))
}

// UPDATE
// PUT /api/a/org-units/:id
func (h *OrgUnitController) UpdateOrgUnit(c *fiber.Ctx) error {
	if _, err := helperAuth.GetActorFromLocals(c); err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := parseOrgUnitID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req orgDTO.UpdateOrgUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var mo orgModel.OrgUnitModel
		if err := tx.First(&mo, "org_unit_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Org unit tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil org unit")
		}

		// unit tidak boleh jadi parent dirinya sendiri
		if req.ParentID != nil && *req.ParentID == mo.OrgUnitID {
			return fiber.NewError(fiber.StatusBadRequest, "Org unit tidak boleh menjadi parent dirinya sendiri")
		}
		if req.ParentID != nil {
			var cnt int64
			if err := tx.Model(&orgModel.OrgUnitModel{}).
				Where("org_unit_id = ?", *req.ParentID).
				Count(&cnt).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek parent org unit")
			}
			if cnt == 0 {
				return fiber.NewError(fiber.StatusConflict, "Parent org unit tidak ditemukan")
			}
		}

		if req.Code != nil && !strings.EqualFold(*req.Code, mo.OrgUnitCode) {
			var cnt int64
			if err := tx.Model(&orgModel.OrgUnitModel{}).
				Where("lower(org_unit_code) = lower(?) AND org_unit_id <> ?", *req.Code, mo.OrgUnitID).
				Count(&cnt).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek duplikasi kode")
			}
			if cnt > 0 {
				return fiber.NewError(fiber.StatusConflict, "Kode org unit sudah digunakan")
			}
		}

		req.Apply(&mo)
		if err := tx.Save(&mo).Error; err != nil {
			return helper.MapDBError(err, "Kode org unit sudah digunakan")
		}

		c.Locals("updated_org_unit", mo)
		return nil
	}); err != nil {
		return helper.JsonFromError(c, err)
	}

	updated, _ := c.Locals("updated_org_unit").(orgModel.OrgUnitModel)
	return helper.JsonUpdated(c, "Org unit berhasil diperbarui", orgDTO.FromModel(updated))
}

// DELETE (soft delete)
// DELETE /api/a/org-units/:id
func (h *OrgUnitController) DeleteOrgUnit(c *fiber.Ctx) error {
	if _, err := helperAuth.GetActorFromLocals(c); err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := parseOrgUnitID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		var mo orgModel.OrgUnitModel
		if err := tx.First(&mo, "org_unit_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Org unit tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil org unit")
		}

		// tolak hapus kalau masih punya child aktif
		var cnt int64
		if err := tx.Model(&orgModel.OrgUnitModel{}).
			Where("org_unit_parent_id = ?", id).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek child org unit")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Org unit masih punya sub-unit")
		}

		if err := tx.Delete(&mo).Error; err != nil {
			return helper.MapDBError(err, "")
		}
		return nil
	}); err != nil {
		return helper.JsonFromError(c, err)
	}

	return helper.JsonDeleted(c, "Org unit berhasil dihapus", fiber.Map{"org_unit_id": id})
}
