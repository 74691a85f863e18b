package service_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	courseDTO "academix_backend/internals/features/academic/courses/dto"
	m "academix_backend/internals/features/academic/courses/model"
	"academix_backend/internals/features/academic/courses/service"
	orgModel "academix_backend/internals/features/organization/org_units/model"
	helperAuth "academix_backend/internals/helpers/auth"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&orgModel.OrgUnitModel{},
		&m.CourseModel{},
		&m.CourseWorkflowModel{},
		&m.CourseContentModel{},
		&m.CourseVersionModel{},
		&m.SyllabusWeekModel{},
		&m.InstructorQualificationModel{},
		&m.ApprovalHistoryModel{},
		&m.CourseAuditStampModel{},
	))
	return db
}

func seedOrgUnit(t *testing.T, db *gorm.DB, code string) uint {
	t.Helper()
	ou := orgModel.OrgUnitModel{OrgUnitCode: code, OrgUnitNameVi: "Khoa " + code, OrgUnitIsActive: true}
	require.NoError(t, db.Create(&ou).Error)
	return ou.OrgUnitID
}

func seedCourse(t *testing.T, db *gorm.DB, orgUnitID uint, code string) uint {
	t.Helper()
	course := m.CourseModel{
		CourseOrgUnitID: orgUnitID,
		CourseCode:      code,
		CourseNameVi:    "Học phần " + code,
		CourseCredits:   3,
		CourseStatus:    m.CourseStatusDraft,
	}
	require.NoError(t, db.Create(&course).Error)
	wf := m.CourseWorkflowModel{
		WorkflowCourseID: course.CourseID,
		WorkflowStatus:   m.CourseStatusDraft,
		WorkflowStage:    m.StageFaculty,
	}
	require.NoError(t, db.Create(&wf).Error)
	return course.CourseID
}

func reviewerActor() helperAuth.ActorContext {
	return helperAuth.ActorContext{
		ID:              7,
		RoleName:        "academic_office",
		RoleDescription: "Phòng đào tạo",
		Permissions:     []string{"course.approve", "course.reject"},
	}
}

func lecturerActor() helperAuth.ActorContext {
	return helperAuth.ActorContext{
		ID:              3,
		RoleName:        "lecturer",
		RoleDescription: "Giảng viên",
		Permissions:     []string{},
	}
}

func strPtr(s string) *string { return &s }

func TestApplyUpdate_TransitionTable(t *testing.T) {
	cases := []struct {
		action     string
		reqStatus  string
		wantStatus m.CourseStatus
		wantStage  m.WorkflowStage
		wantEntry  m.HistoryAction
	}{
		{"approve", "REVIEWING", m.CourseStatusReviewing, m.StageAcademicOffice, m.HistoryActionApprove},
		{"reject", "REJECTED", m.CourseStatusRejected, m.StageFaculty, m.HistoryActionReject},
		{"request_changes", "DRAFT", m.CourseStatusDraft, m.StageFaculty, m.HistoryActionReturn},
		{"forward", "SUBMITTED", m.CourseStatusSubmitted, m.StageAcademicBoard, m.HistoryActionSubmit},
		{"final_approve", "PUBLISHED", m.CourseStatusPublished, m.StageAcademicBoard, m.HistoryActionPublish},
		{"final_reject", "REJECTED", m.CourseStatusRejected, m.StageAcademicBoard, m.HistoryActionReject},
		{"delete", "ARCHIVED", m.CourseStatusArchived, m.StageAcademicOffice, m.HistoryActionArchive},
	}

	for _, tc := range cases {
		t.Run(tc.action, func(t *testing.T) {
			db := newTestDB(t)
			ou := seedOrgUnit(t, db, "FIT")
			courseID := seedCourse(t, db, ou, "INT1001")
			svc := service.NewWorkflowService(db)

			req := &courseDTO.UpdateCourseRequest{
				Status:         strPtr(tc.reqStatus),
				WorkflowAction: strPtr(tc.action),
				Comment:        strPtr("kiểm tra"),
			}
			proj, err := svc.ApplyUpdate(courseID, reviewerActor(), req)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, proj.Course.Status)
			assert.Equal(t, tc.wantStatus, proj.Workflow.Status)
			assert.Equal(t, tc.wantStage, proj.Workflow.Stage)

			require.Len(t, proj.History, 1)
			entry := proj.History[0]
			assert.Equal(t, tc.wantEntry, entry.Action)
			assert.Equal(t, m.CourseStatusDraft, entry.FromStatus)
			assert.Equal(t, tc.wantStatus, entry.ToStatus)
			assert.Equal(t, uint(7), entry.ReviewerID)
			assert.Equal(t, "academic_office", entry.ReviewerRole)
			assert.Contains(t, entry.Comment, "academic_office - Phòng đào tạo - ")
			assert.Contains(t, entry.Comment, ": kiểm tra")
		})
	}
}

func TestApplyUpdate_UnknownAction(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	courseID := seedCourse(t, db, ou, "INT1001")
	svc := service.NewWorkflowService(db)

	_, err := svc.ApplyUpdate(courseID, reviewerActor(), &courseDTO.UpdateCourseRequest{
		WorkflowAction: strPtr("promote"),
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestApplyUpdate_PermissionDenied_NothingWritten(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	courseID := seedCourse(t, db, ou, "INT1001")
	svc := service.NewWorkflowService(db)

	_, err := svc.ApplyUpdate(courseID, lecturerActor(), &courseDTO.UpdateCourseRequest{
		NameVi:         strPtr("Tên mới"),
		Status:         strPtr("REVIEWING"),
		WorkflowAction: strPtr("approve"),
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnauthorized, fe.Code)

	// denial terjadi sebelum transaksi: course tidak berubah, ledger kosong
	var course m.CourseModel
	require.NoError(t, db.First(&course, "course_id = ?", courseID).Error)
	assert.Equal(t, "Học phần INT1001", course.CourseNameVi)
	assert.Equal(t, m.CourseStatusDraft, course.CourseStatus)

	var histCount int64
	require.NoError(t, db.Model(&m.ApprovalHistoryModel{}).Count(&histCount).Error)
	assert.Zero(t, histCount)
}

func TestApplyUpdate_NoAction_NoHistoryNoStatusChange(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	courseID := seedCourse(t, db, ou, "INT1001")
	svc := service.NewWorkflowService(db)

	proj, err := svc.ApplyUpdate(courseID, lecturerActor(), &courseDTO.UpdateCourseRequest{
		NameVi:  strPtr("Nhập môn lập trình"),
		Credits: intPtr(4),
	})
	require.NoError(t, err)

	assert.Equal(t, "Nhập môn lập trình", proj.Course.NameVi)
	assert.Equal(t, 4, proj.Course.Credits)
	assert.Equal(t, m.CourseStatusDraft, proj.Course.Status)
	assert.Empty(t, proj.History)

	// audit stamp tetap tersentuh walau tanpa action
	require.NotNil(t, proj.AuditStamp)
	assert.Equal(t, uint(3), proj.AuditStamp.UpdatedBy)
}

func TestApplyUpdate_AppliedStatusFallsBackToDraft(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	courseID := seedCourse(t, db, ou, "INT1001")
	svc := service.NewWorkflowService(db)

	proj, err := svc.ApplyUpdate(courseID, reviewerActor(), &courseDTO.UpdateCourseRequest{
		Status:         strPtr("TRENDING"), // bukan status lifecycle
		WorkflowAction: strPtr("approve"),
	})
	require.NoError(t, err)
	assert.Equal(t, m.CourseStatusDraft, proj.Course.Status)
	require.Len(t, proj.History, 1)
	assert.Equal(t, m.CourseStatusDraft, proj.History[0].ToStatus)
}

func TestApplyUpdate_PartialContentUpdate(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	courseID := seedCourse(t, db, ou, "INT1001")
	svc := service.NewWorkflowService(db)

	objectives := "Hiểu biến, vòng lặp, hàm"
	req := &courseDTO.UpdateCourseRequest{}
	req.LearningObjectives.Present = true
	req.LearningObjectives.Value = &objectives
	_, err := svc.ApplyUpdate(courseID, lecturerActor(), req)
	require.NoError(t, err)

	// update kedua hanya kirim passing grade; objectives tidak boleh tersentuh
	grade := 5.5
	req2 := &courseDTO.UpdateCourseRequest{}
	req2.PassingGrade.Present = true
	req2.PassingGrade.Value = &grade
	proj, err := svc.ApplyUpdate(courseID, lecturerActor(), req2)
	require.NoError(t, err)

	require.NotNil(t, proj.Content.Objectives)
	assert.Equal(t, objectives, *proj.Content.Objectives)
	require.NotNil(t, proj.Content.PassingGrade)
	assert.Equal(t, grade, *proj.Content.PassingGrade)
}

func TestApplyUpdate_ContentFieldNullable(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	courseID := seedCourse(t, db, ou, "INT1001")
	svc := service.NewWorkflowService(db)

	objectives := "Mục tiêu ban đầu"
	req := &courseDTO.UpdateCourseRequest{}
	req.LearningObjectives.Present = true
	req.LearningObjectives.Value = &objectives
	_, err := svc.ApplyUpdate(courseID, lecturerActor(), req)
	require.NoError(t, err)

	// kirim null eksplisit → field dikosongkan
	req2 := &courseDTO.UpdateCourseRequest{}
	req2.LearningObjectives.Present = true
	req2.LearningObjectives.Value = nil
	proj, err := svc.ApplyUpdate(courseID, lecturerActor(), req2)
	require.NoError(t, err)
	assert.Nil(t, proj.Content.Objectives)
}

func TestApplyUpdate_SyllabusReplaceAll(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	courseID := seedCourse(t, db, ou, "INT1001")
	svc := service.NewWorkflowService(db)

	first := []courseDTO.SyllabusWeekInput{
		{Week: 1, Topic: "Giới thiệu", Materials: []string{"slide01.pdf"}, Duration: 3},
		{Week: 2, Topic: "Biến và kiểu dữ liệu", Duration: 3},
		{Week: 3, Topic: "Vòng lặp", Duration: 3},
	}
	_, err := svc.ApplyUpdate(courseID, lecturerActor(), &courseDTO.UpdateCourseRequest{Syllabus: &first})
	require.NoError(t, err)

	second := []courseDTO.SyllabusWeekInput{
		{Week: 1, Topic: "Tổng quan học phần", Duration: 2},
		{Week: 2, Topic: "Thi giữa kỳ", IsExamWeek: true, Duration: 2},
	}
	proj, err := svc.ApplyUpdate(courseID, lecturerActor(), &courseDTO.UpdateCourseRequest{Syllabus: &second})
	require.NoError(t, err)

	require.Len(t, proj.Syllabus, 2)
	assert.Equal(t, "Tổng quan học phần", proj.Syllabus[0].Topic)
	assert.True(t, proj.Syllabus[1].IsExamWeek)

	// replace memakai ulang versi DRAFT yang sama, bukan membuat versi baru
	var versions int64
	require.NoError(t, db.Model(&m.CourseVersionModel{}).
		Where("version_course_id = ?", courseID).Count(&versions).Error)
	assert.EqualValues(t, 1, versions)

	var weeks int64
	require.NoError(t, db.Model(&m.SyllabusWeekModel{}).Count(&weeks).Error)
	assert.EqualValues(t, 2, weeks)
}

func TestApplyUpdate_InstructorReplaceAll(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	courseID := seedCourse(t, db, ou, "INT1001")
	svc := service.NewWorkflowService(db)

	first := []courseDTO.InstructorInput{
		{InstructorID: 11, QualificationType: "MAIN"},
		{InstructorID: 12, QualificationType: "ASSISTANT"},
	}
	_, err := svc.ApplyUpdate(courseID, lecturerActor(), &courseDTO.UpdateCourseRequest{Instructors: &first})
	require.NoError(t, err)

	second := []courseDTO.InstructorInput{
		{InstructorID: 12, QualificationType: "MAIN"},
		{InstructorID: 13, QualificationType: "ASSISTANT"},
	}
	proj, err := svc.ApplyUpdate(courseID, lecturerActor(), &courseDTO.UpdateCourseRequest{Instructors: &second})
	require.NoError(t, err)

	require.Len(t, proj.Instructors, 2)
	assert.Equal(t, uint(12), proj.Instructors[0].InstructorID)
	assert.Equal(t, "MAIN", proj.Instructors[0].QualificationType)
	assert.Equal(t, uint(13), proj.Instructors[1].InstructorID)
}

func TestApplyUpdate_DuplicateInstructorRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	courseID := seedCourse(t, db, ou, "INT1001")
	svc := service.NewWorkflowService(db)

	dup := []courseDTO.InstructorInput{
		{InstructorID: 11},
		{InstructorID: 11}, // melanggar uq_qualifications_instructor_per_course
	}
	_, err := svc.ApplyUpdate(courseID, lecturerActor(), &courseDTO.UpdateCourseRequest{
		NameVi:      strPtr("Tên sẽ bị rollback"),
		Instructors: &dup,
	})
	require.Error(t, err)

	// satu transaksi: perubahan nama ikut batal
	var course m.CourseModel
	require.NoError(t, db.First(&course, "course_id = ?", courseID).Error)
	assert.Equal(t, "Học phần INT1001", course.CourseNameVi)

	var quals int64
	require.NoError(t, db.Model(&m.InstructorQualificationModel{}).Count(&quals).Error)
	assert.Zero(t, quals)
}

func TestApplyUpdate_InvalidInstructorIDRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	courseID := seedCourse(t, db, ou, "INT1001")
	svc := service.NewWorkflowService(db)

	weeks := []courseDTO.SyllabusWeekInput{{Week: 1, Topic: "Giới thiệu", Duration: 3}}
	bad := []courseDTO.InstructorInput{{InstructorID: 0}}
	_, err := svc.ApplyUpdate(courseID, reviewerActor(), &courseDTO.UpdateCourseRequest{
		Syllabus:       &weeks,
		Instructors:    &bad,
		Status:         strPtr("SUBMITTED"),
		WorkflowAction: strPtr("forward"),
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)

	// status, workflow state, silabus, dan ledger semuanya batal
	var course m.CourseModel
	require.NoError(t, db.First(&course, "course_id = ?", courseID).Error)
	assert.Equal(t, m.CourseStatusDraft, course.CourseStatus)

	var wf m.CourseWorkflowModel
	require.NoError(t, db.First(&wf, "workflow_course_id = ?", courseID).Error)
	assert.Equal(t, m.StageFaculty, wf.WorkflowStage)

	var weeksCount, histCount int64
	require.NoError(t, db.Model(&m.SyllabusWeekModel{}).Count(&weeksCount).Error)
	require.NoError(t, db.Model(&m.ApprovalHistoryModel{}).Count(&histCount).Error)
	assert.Zero(t, weeksCount)
	assert.Zero(t, histCount)
}

func TestApplyUpdate_DuplicateCodeConflict(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	seedCourse(t, db, ou, "INT1001")
	otherID := seedCourse(t, db, ou, "INT1002")
	svc := service.NewWorkflowService(db)

	_, err := svc.ApplyUpdate(otherID, lecturerActor(), &courseDTO.UpdateCourseRequest{
		Code: strPtr("INT1001"),
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
	assert.Contains(t, fe.Message, "INT1001")
}

func TestApplyUpdate_SameCodeDifferentOrgUnitOK(t *testing.T) {
	db := newTestDB(t)
	ouA := seedOrgUnit(t, db, "FIT")
	ouB := seedOrgUnit(t, db, "FEE")
	seedCourse(t, db, ouA, "INT1001")
	otherID := seedCourse(t, db, ouB, "INT1002")
	svc := service.NewWorkflowService(db)

	proj, err := svc.ApplyUpdate(otherID, lecturerActor(), &courseDTO.UpdateCourseRequest{
		Code: strPtr("INT1001"),
	})
	require.NoError(t, err)
	assert.Equal(t, "INT1001", proj.Course.Code)
}

func TestApplyUpdate_UnknownOrgUnitConflict(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	courseID := seedCourse(t, db, ou, "INT1001")
	svc := service.NewWorkflowService(db)

	missing := uint(999)
	_, err := svc.ApplyUpdate(courseID, lecturerActor(), &courseDTO.UpdateCourseRequest{
		OrgUnitID: &missing,
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestApplyUpdate_CourseNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewWorkflowService(db)

	_, err := svc.ApplyUpdate(12345, reviewerActor(), &courseDTO.UpdateCourseRequest{})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestApplyUpdate_HistoryAccumulates(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	courseID := seedCourse(t, db, ou, "INT1001")
	svc := service.NewWorkflowService(db)

	steps := []struct {
		action string
		status string
	}{
		{"forward", "SUBMITTED"},
		{"approve", "REVIEWING"},
		{"final_approve", "PUBLISHED"},
	}
	for _, st := range steps {
		_, err := svc.ApplyUpdate(courseID, reviewerActor(), &courseDTO.UpdateCourseRequest{
			Status:         strPtr(st.status),
			WorkflowAction: strPtr(st.action),
		})
		require.NoError(t, err)
	}

	proj, err := svc.GetProjection(courseID)
	require.NoError(t, err)
	require.Len(t, proj.History, 3)
	// newest-first
	assert.Equal(t, m.HistoryActionPublish, proj.History[0].Action)
	assert.Equal(t, m.HistoryActionApprove, proj.History[1].Action)
	assert.Equal(t, m.HistoryActionSubmit, proj.History[2].Action)
	// from/to berantai
	assert.Equal(t, m.CourseStatusReviewing, proj.History[0].FromStatus)
	assert.Equal(t, m.CourseStatusPublished, proj.History[0].ToStatus)
}

func TestGetProjection_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewWorkflowService(db)

	_, err := svc.GetProjection(777)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	ou := seedOrgUnit(t, db, "FIT")
	courseID := seedCourse(t, db, ou, "INT1001")
	keepID := seedCourse(t, db, ou, "INT1002")
	svc := service.NewWorkflowService(db)

	weeks := []courseDTO.SyllabusWeekInput{{Week: 1, Topic: "Giới thiệu", Duration: 3}}
	instr := []courseDTO.InstructorInput{{InstructorID: 11}}
	_, err := svc.ApplyUpdate(courseID, reviewerActor(), &courseDTO.UpdateCourseRequest{
		Syllabus:       &weeks,
		Instructors:    &instr,
		Status:         strPtr("SUBMITTED"),
		WorkflowAction: strPtr("forward"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCascade(courseID))

	for _, probe := range []struct {
		model any
		where string
	}{
		{&m.CourseModel{}, "course_id = ?"},
		{&m.CourseWorkflowModel{}, "workflow_course_id = ?"},
		{&m.CourseVersionModel{}, "version_course_id = ?"},
		{&m.InstructorQualificationModel{}, "qualification_course_id = ?"},
		{&m.ApprovalHistoryModel{}, "history_course_id = ?"},
		{&m.CourseAuditStampModel{}, "stamp_course_id = ?"},
	} {
		var cnt int64
		require.NoError(t, db.Model(probe.model).Where(probe.where, courseID).Count(&cnt).Error)
		assert.Zero(t, cnt)
	}

	// course lain tidak tersentuh
	var keep m.CourseModel
	require.NoError(t, db.First(&keep, "course_id = ?", keepID).Error)
}

func intPtr(v int) *int { return &v }
