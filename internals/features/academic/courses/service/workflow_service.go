// internals/features/academic/courses/service/workflow_service.go
package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	courseDTO "academix_backend/internals/features/academic/courses/dto"
	m "academix_backend/internals/features/academic/courses/model"
	orgModel "academix_backend/internals/features/organization/org_units/model"
	helper "academix_backend/internals/helpers"
	helperAuth "academix_backend/internals/helpers/auth"
)

// WorkflowService adalah satu-satunya penulis course_status, course_workflows,
// dan seluruh record turunan course. Semua write dalam ApplyUpdate berjalan
// sebagai satu unit transaksional: semua masuk atau tidak ada sama sekali.
type WorkflowService struct {
	DB *gorm.DB
}

func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{DB: db}
}

// sqlite tidak mengenal SELECT ... FOR UPDATE
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// ApplyUpdate menjalankan update-course lengkap:
//  1. atribut course (merge-on-present)
//  2. workflow state (selalu)
//  3. content block (hanya field yang dikirim)
//  4. silabus (replace-all bila dikirim)
//  5. kualifikasi pengajar (replace-all bila dikirim)
//  6. audit stamp (selalu)
//  7. workflow action: permission gate → status/stage baru → satu entri history
//
// lalu membaca ulang proyeksi penuh sesudah commit.
func (s *WorkflowService) ApplyUpdate(courseID uint, actor helperAuth.ActorContext, req *courseDTO.UpdateCourseRequest) (*courseDTO.CourseProjectionResponse, error) {
	// Resolve + gate action di muka: denial harus abort sebelum write apa pun.
	var (
		action WorkflowAction
		trans  transition
		hasWFA bool
	)
	if req.WorkflowAction != nil && *req.WorkflowAction != "" {
		var ok bool
		action, trans, ok = ResolveTransition(*req.WorkflowAction)
		if !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest,
				"Workflow action '"+*req.WorkflowAction+"' tidak dikenal")
		}
		if err := AuthorizeWorkflowAction(actor, action); err != nil {
			return nil, err
		}
		hasWFA = true
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Lock baris course selama transaksi supaya dua transisi simultan
		// terserialisasi, bukan saling timpa.
		var course m.CourseModel
		if err := lockForUpdate(tx).
			First(&course, "course_id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil course")
		}
		fromStatus := course.CourseStatus

		// Referensi org unit harus resolve sebelum dipakai.
		if req.OrgUnitID != nil && *req.OrgUnitID != course.CourseOrgUnitID {
			var cnt int64
			if err := tx.Model(&orgModel.OrgUnitModel{}).
				Where("org_unit_id = ?", *req.OrgUnitID).
				Count(&cnt).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek org unit")
			}
			if cnt == 0 {
				return fiber.NewError(fiber.StatusConflict, "Org unit tidak ditemukan")
			}
		}

		// 1) Atribut course
		req.ApplyCourse(&course)

		// Cek duplikat (org_unit_id, code) sebelum menulis.
		var cnt int64
		if err := tx.Model(&m.CourseModel{}).
			Where("course_org_unit_id = ? AND course_code = ? AND course_id <> ?",
				course.CourseOrgUnitID, course.CourseCode, course.CourseID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek duplikasi kode")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict,
				"Kode course '"+course.CourseCode+"' sudah digunakan pada org unit ini")
		}

		// 2) Workflow state — selalu diperbarui, default saat belum ada.
		var wf m.CourseWorkflowModel
		if err := tx.First(&wf, "workflow_course_id = ?", course.CourseID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil workflow state")
			}
			wf = m.CourseWorkflowModel{
				WorkflowCourseID: course.CourseID,
				WorkflowStatus:   course.CourseStatus,
				WorkflowStage:    m.StageFaculty,
			}
		}
		if req.Priority != nil {
			wf.WorkflowPriority = *req.Priority
		}
		if req.Notes.Present {
			wf.WorkflowNotes = req.Notes.Value
		}
		// Tanpa workflow action, status workflow tetap mirror course_status.
		wf.WorkflowStatus = course.CourseStatus

		// 7) Workflow action: status/stage baru + satu entri history.
		if hasWFA {
			applied := ResolveAppliedStatus(req.Status)
			course.CourseStatus = applied
			wf.WorkflowStatus = applied
			wf.WorkflowStage = trans.Stage

			entry := m.ApprovalHistoryModel{
				HistoryCourseID:     course.CourseID,
				HistoryAction:       trans.HistoryAction,
				HistoryFromStatus:   fromStatus,
				HistoryToStatus:     applied,
				HistoryReviewerID:   actor.ID,
				HistoryReviewerRole: actor.RoleName,
				HistoryComment:      BuildHistoryComment(actor, trans.Label, req.Comment),
			}
			if err := AppendHistory(tx, &entry); err != nil {
				return helper.MapDBError(err, "")
			}
		}

		// Simpan course (patch eksplisit, hindari overwrite tak sengaja).
		now := time.Now()
		course.CourseUpdatedAt = now
		patch := map[string]interface{}{
			"course_org_unit_id": course.CourseOrgUnitID,
			"course_code":        course.CourseCode,
			"course_name_vi":     course.CourseNameVi,
			"course_name_en":     course.CourseNameEn,
			"course_credits":     course.CourseCredits,
			"course_type":        course.CourseType,
			"course_description": course.CourseDescription,
			"course_status":      course.CourseStatus,
			"course_updated_at":  course.CourseUpdatedAt,
		}
		if err := tx.Model(&m.CourseModel{}).
			Where("course_id = ?", course.CourseID).
			Updates(patch).Error; err != nil {
			return helper.MapDBError(err,
				"Kode course '"+course.CourseCode+"' sudah digunakan pada org unit ini")
		}

		if err := tx.Save(&wf).Error; err != nil {
			return helper.MapDBError(err, "")
		}

		// 3) Content block — partial update hanya untuk field yang hadir.
		if req.HasContentChanges() {
			var content m.CourseContentModel
			if err := tx.Where(m.CourseContentModel{ContentCourseID: course.CourseID}).
				FirstOrCreate(&content).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyiapkan content block")
			}
			if err := tx.Model(&m.CourseContentModel{}).
				Where("content_course_id = ?", course.CourseID).
				Updates(req.ContentPatch()).Error; err != nil {
				return helper.MapDBError(err, "")
			}
		}

		// 4) Silabus — replace-all pada versi DRAFT terakhir.
		if req.Syllabus != nil {
			if err := s.replaceSyllabus(tx, course.CourseID, *req.Syllabus); err != nil {
				return err
			}
		}

		// 5) Kualifikasi pengajar — replace-all.
		if req.Instructors != nil {
			if err := s.replaceInstructors(tx, course.CourseID, *req.Instructors); err != nil {
				return err
			}
		}

		// 6) Audit stamp — selalu, ada action ataupun tidak.
		if err := s.touchAuditStamp(tx, course.CourseID, actor.ID, now); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return nil, err
	}

	// 9) Baca ulang proyeksi penuh sesudah commit.
	return s.GetProjection(courseID)
}

// replaceSyllabus memakai ulang versi DRAFT terakhir (atau membuat baru),
// menghapus semua minggunya, lalu insert batch daftar baru.
func (s *WorkflowService) replaceSyllabus(tx *gorm.DB, courseID uint, weeks []courseDTO.SyllabusWeekInput) error {
	var version m.CourseVersionModel
	err := tx.Where("version_course_id = ? AND version_status = ?", courseID, m.VersionStatusDraft).
		Order("version_number DESC, version_id DESC").
		First(&version).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil versi silabus")
		}
		var maxNumber int
		row := tx.Model(&m.CourseVersionModel{}).
			Where("version_course_id = ?", courseID).
			Select("COALESCE(MAX(version_number), 0)").
			Row()
		if err := row.Scan(&maxNumber); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung versi silabus")
		}
		version = m.CourseVersionModel{
			VersionCourseID: courseID,
			VersionNumber:   maxNumber + 1,
			VersionStatus:   m.VersionStatusDraft,
		}
		if err := tx.Create(&version).Error; err != nil {
			return helper.MapDBError(err, "")
		}
	}

	if err := tx.Where("week_version_id = ?", version.VersionID).
		Delete(&m.SyllabusWeekModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus silabus lama")
	}

	if len(weeks) == 0 {
		return nil
	}
	rows := make([]m.SyllabusWeekModel, 0, len(weeks))
	for _, w := range weeks {
		row := m.SyllabusWeekModel{
			WeekVersionID:     version.VersionID,
			WeekNumber:        w.Week,
			WeekTopic:         w.Topic,
			WeekDurationHours: w.Duration,
			WeekIsExam:        w.IsExamWeek,
		}
		if len(w.Materials) > 0 {
			b, _ := json.Marshal(w.Materials)
			row.WeekMaterials = datatypes.JSON(b)
		}
		if len(w.Assignments) > 0 {
			b, _ := json.Marshal(w.Assignments)
			row.WeekAssignments = datatypes.JSON(b)
		}
		rows = append(rows, row)
	}
	if err := tx.Create(&rows).Error; err != nil {
		return helper.MapDBError(err, "")
	}
	return nil
}

// replaceInstructors menghapus semua kualifikasi course lalu insert batch
// daftar baru (replace-all).
func (s *WorkflowService) replaceInstructors(tx *gorm.DB, courseID uint, instructors []courseDTO.InstructorInput) error {
	if err := tx.Where("qualification_course_id = ?", courseID).
		Delete(&m.InstructorQualificationModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus kualifikasi lama")
	}

	if len(instructors) == 0 {
		return nil
	}
	rows := make([]m.InstructorQualificationModel, 0, len(instructors))
	for _, in := range instructors {
		if in.InstructorID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "instructor_id tidak valid")
		}
		status := in.Status
		if status == "" {
			status = "ACTIVE"
		}
		rows = append(rows, m.InstructorQualificationModel{
			QualificationCourseID:     courseID,
			QualificationInstructorID: in.InstructorID,
			QualificationType:         in.QualificationType,
			QualificationLevel:        in.QualificationLevel,
			QualificationStatus:       status,
			QualificationValidFrom:    in.ValidFrom,
			QualificationValidTo:      in.ValidTo,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return helper.MapDBError(err, "Daftar pengajar mengandung duplikat")
	}
	return nil
}

func (s *WorkflowService) touchAuditStamp(tx *gorm.DB, courseID, actorID uint, at time.Time) error {
	var stamp m.CourseAuditStampModel
	err := tx.First(&stamp, "stamp_course_id = ?", courseID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		stamp = m.CourseAuditStampModel{
			StampCourseID:  courseID,
			StampUpdatedBy: actorID,
			StampUpdatedAt: at,
		}
		if err := tx.Create(&stamp).Error; err != nil {
			return helper.MapDBError(err, "")
		}
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil audit stamp")
	default:
		if err := tx.Model(&m.CourseAuditStampModel{}).
			Where("stamp_course_id = ?", courseID).
			Updates(map[string]interface{}{
				"stamp_updated_by": actorID,
				"stamp_updated_at": at,
			}).Error; err != nil {
			return helper.MapDBError(err, "")
		}
	}
	return nil
}

// GetProjection membaca proyeksi penuh course lintas semua store.
// History diurutkan newest-first; silabus diambil dari versi terbaru.
func (s *WorkflowService) GetProjection(courseID uint) (*courseDTO.CourseProjectionResponse, error) {
	var course m.CourseModel
	if err := s.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil course")
	}

	proj := &courseDTO.CourseProjectionResponse{
		Course:      courseDTO.FromCourseModel(course),
		Syllabus:    []courseDTO.SyllabusWeekResponse{},
		Instructors: []courseDTO.InstructorQualificationResponse{},
		History:     []courseDTO.ApprovalHistoryResponse{},
	}

	var wf m.CourseWorkflowModel
	if err := s.DB.First(&wf, "workflow_course_id = ?", courseID).Error; err == nil {
		proj.Workflow = courseDTO.FromWorkflowModel(wf)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil workflow state")
	}

	var content m.CourseContentModel
	if err := s.DB.First(&content, "content_course_id = ?", courseID).Error; err == nil {
		proj.Content = courseDTO.FromContentModel(content)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil content block")
	}

	var version m.CourseVersionModel
	if err := s.DB.Where("version_course_id = ?", courseID).
		Order("version_number DESC, version_id DESC").
		First(&version).Error; err == nil {
		var weeks []m.SyllabusWeekModel
		if err := s.DB.Where("week_version_id = ?", version.VersionID).
			Order("week_number ASC, week_id ASC").
			Find(&weeks).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil silabus")
		}
		for i := range weeks {
			proj.Syllabus = append(proj.Syllabus, courseDTO.FromSyllabusWeekModel(weeks[i]))
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil versi silabus")
	}

	var quals []m.InstructorQualificationModel
	if err := s.DB.Where("qualification_course_id = ?", courseID).
		Order("qualification_instructor_id ASC").
		Find(&quals).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil kualifikasi pengajar")
	}
	for i := range quals {
		proj.Instructors = append(proj.Instructors, courseDTO.FromQualificationModel(quals[i]))
	}

	var history []m.ApprovalHistoryModel
	if err := s.DB.Where("history_course_id = ?", courseID).
		Order("history_created_at DESC, history_id DESC").
		Find(&history).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil riwayat approval")
	}
	for i := range history {
		proj.History = append(proj.History, courseDTO.FromHistoryModel(history[i]))
	}

	var stamp m.CourseAuditStampModel
	if err := s.DB.First(&stamp, "stamp_course_id = ?", courseID).Error; err == nil {
		proj.AuditStamp = &courseDTO.AuditStampResponse{
			UpdatedBy: stamp.StampUpdatedBy,
			UpdatedAt: stamp.StampUpdatedAt,
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil audit stamp")
	}

	return proj, nil
}

// DeleteCascade menghapus course beserta seluruh record turunannya
// dalam satu transaksi.
func (s *WorkflowService) DeleteCascade(courseID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var course m.CourseModel
		if err := lockForUpdate(tx).
			First(&course, "course_id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil course")
		}

		var versionIDs []uint
		if err := tx.Model(&m.CourseVersionModel{}).
			Where("version_course_id = ?", courseID).
			Pluck("version_id", &versionIDs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil versi silabus")
		}
		if len(versionIDs) > 0 {
			if err := tx.Where("week_version_id IN ?", versionIDs).
				Delete(&m.SyllabusWeekModel{}).Error; err != nil {
				return helper.MapDBError(err, "")
			}
		}

		steps := []error{
			tx.Where("version_course_id = ?", courseID).Delete(&m.CourseVersionModel{}).Error,
			tx.Where("qualification_course_id = ?", courseID).Delete(&m.InstructorQualificationModel{}).Error,
			tx.Where("history_course_id = ?", courseID).Delete(&m.ApprovalHistoryModel{}).Error,
			tx.Where("content_course_id = ?", courseID).Delete(&m.CourseContentModel{}).Error,
			tx.Where("workflow_course_id = ?", courseID).Delete(&m.CourseWorkflowModel{}).Error,
			tx.Where("stamp_course_id = ?", courseID).Delete(&m.CourseAuditStampModel{}).Error,
			tx.Delete(&m.CourseModel{}, "course_id = ?", courseID).Error,
		}
		for _, err := range steps {
			if err != nil {
				return helper.MapDBError(err, "")
			}
		}
		return nil
	})
}
