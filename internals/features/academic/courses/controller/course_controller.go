// internals/features/academic/courses/controller/course_controller.go
package controller

import (
	"strconv"
	"strings"
	"time"

	courseDTO "academix_backend/internals/features/academic/courses/dto"
	courseModel "academix_backend/internals/features/academic/courses/model"
	"academix_backend/internals/features/academic/courses/service"
	orgModel "academix_backend/internals/features/organization/org_units/model"
	helper "academix_backend/internals/helpers"
	helperAuth "academix_backend/internals/helpers/auth"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CourseController struct {
	DB       *gorm.DB
	Workflow *service.WorkflowService
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{
		DB:       db,
		Workflow: service.NewWorkflowService(db),
	}
}

func parseCourseID(c *fiber.Ctx) (uint, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID course tidak valid")
	}
	return uint(id), nil
}

// CREATE
// POST /api/a/courses
func (h *CourseController) CreateCourse(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActorFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req courseDTO.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		// org unit harus ada
		var cnt int64
		if err := tx.Model(&orgModel.OrgUnitModel{}).
			Where("org_unit_id = ?", req.OrgUnitID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek org unit")
		}
		if cnt == 0 {
			return fiber.NewError(fiber.StatusConflict, "Org unit tidak ditemukan")
		}

		// cek duplikat code per org unit
		cnt = 0
		if err := tx.Model(&courseModel.CourseModel{}).
			Where("course_org_unit_id = ? AND course_code = ?", req.OrgUnitID, req.Code).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek duplikasi kode")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict,
				"Kode course '"+req.Code+"' sudah digunakan pada org unit ini")
		}

		mo := req.ToModel()
		if err := tx.Create(&mo).Error; err != nil {
			return helper.MapDBError(err,
				"Kode course '"+req.Code+"' sudah digunakan pada org unit ini")
		}

		// workflow state awal: DRAFT di stage FACULTY
		wf := courseModel.CourseWorkflowModel{
			WorkflowCourseID: mo.CourseID,
			WorkflowStatus:   mo.CourseStatus,
			WorkflowStage:    courseModel.StageFaculty,
		}
		if req.Priority != nil {
			wf.WorkflowPriority = *req.Priority
		}
		if req.Notes != nil {
			wf.WorkflowNotes = req.Notes
		}
		if err := tx.Create(&wf).Error; err != nil {
			return helper.MapDBError(err, "")
		}

		// content block kosong + audit stamp pertama
		content := courseModel.CourseContentModel{ContentCourseID: mo.CourseID}
		if err := tx.Create(&content).Error; err != nil {
			return helper.MapDBError(err, "")
		}
		stamp := courseModel.CourseAuditStampModel{
			StampCourseID:  mo.CourseID,
			StampUpdatedBy: actor.ID,
			StampUpdatedAt: time.Now(),
		}
		if err := tx.Create(&stamp).Error; err != nil {
			return helper.MapDBError(err, "")
		}

		c.Locals("created_course", mo)
		return nil
	}); err != nil {
		return helper.JsonFromError(c, err)
	}

	created, _ := c.Locals("created_course").(courseModel.CourseModel)
	return helper.JsonCreated(c, "Course berhasil dibuat", courseDTO.FromCourseModel(created))
}

// UPDATE (atribut + content + silabus + pengajar + workflow action)
// PUT /api/a/courses/:id
func (h *CourseController) UpdateCourse(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActorFromLocals(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := parseCourseID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req courseDTO.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()

	if err := validator.New().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	proj, err := h.Workflow.ApplyUpdate(id, actor, &req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Course berhasil diperbarui", proj)
}

// DETAIL (proyeksi penuh lintas semua store)
// GET /api/a/courses/:id
func (h *CourseController) GetCourse(c *fiber.Ctx) error {
	if _, err := helperAuth.GetActorFromLocals(c); err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := parseCourseID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	proj, err := h.Workflow.GetProjection(id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", proj)
}

// LIST
// GET /api/a/courses?org_unit_id=&status=&q=&page=&per_page=
func (h *CourseController) ListCourses(c *fiber.Ctx) error {
	if _, err := helperAuth.GetActorFromLocals(c); err != nil {
		return helper.JsonFromError(c, err)
	}

	pg := helper.ResolvePaging(c, 20, 100)

	var qp courseDTO.ListCourseQuery
	if err := c.QueryParser(&qp); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	q := h.DB.Model(&courseModel.CourseModel{})
	if qp.OrgUnitID != nil {
		q = q.Where("course_org_unit_id = ?", *qp.OrgUnitID)
	}
	if qp.Status != nil {
		st := strings.ToUpper(strings.TrimSpace(*qp.Status))
		if !courseModel.ValidCourseStatus(st) {
			return helper.JsonError(c, fiber.StatusBadRequest, "status tidak valid")
		}
		q = q.Where("course_status = ?", st)
	}
	if qp.Q != nil {
		if kw := strings.TrimSpace(*qp.Q); kw != "" {
			like := "%" + strings.ToLower(kw) + "%"
			q = q.Where("lower(course_code) LIKE ? OR lower(course_name_vi) LIKE ?", like, like)
		}
	}

	// whitelist kolom order, default terbaru dulu
	orderCol := "course_id"
	if qp.OrderBy != nil {
		switch strings.ToLower(strings.TrimSpace(*qp.OrderBy)) {
		case "code":
			orderCol = "course_code"
		case "name":
			orderCol = "course_name_vi"
		case "created_at":
			orderCol = "course_created_at"
		case "updated_at":
			orderCol = "course_updated_at"
		}
	}
	dir := "DESC"
	if qp.Sort != nil && strings.EqualFold(strings.TrimSpace(*qp.Sort), "asc") {
		dir = "ASC"
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung course")
	}

	var rows []courseModel.CourseModel
	if err := q.Order(orderCol + " " + dir).
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil course")
	}

	return helper.JsonList(c, "OK", courseDTO.FromCourseModels(rows),
		helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage))
}

// DELETE (hard delete + semua record turunan)
// DELETE /api/a/courses/:id
func (h *CourseController) DeleteCourse(c *fiber.Ctx) error {
	if _, err := helperAuth.GetActorFromLocals(c); err != nil {
		return helper.JsonFromError(c, err)
	}

	id, err := parseCourseID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	if err := h.Workflow.DeleteCascade(id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Course berhasil dihapus", fiber.Map{"course_id": id})
}
