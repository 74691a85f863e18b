// internals/features/academic/courses/dto/course_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	m "academix_backend/internals/features/academic/courses/model"
)

/* =========================================================
   PATCH FIELD — tri-state (absent | null | value)
   ========================================================= */

type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p PatchField[T]) Get() (*T, bool) { return p.Value, p.Present }

/* =========================================================
   CREATE
   ========================================================= */

type CreateCourseRequest struct {
	OrgUnitID uint `json:"org_unit_id" validate:"required,min=1"`

	Code   string  `json:"code" validate:"required,min=1,max=40"`
	NameVi string  `json:"name_vi" validate:"required,min=1,max=200"`
	NameEn *string `json:"name_en" validate:"omitempty,max=200"`

	Credits     int     `json:"credits" validate:"min=0"`
	Type        string  `json:"type" validate:"omitempty,max=40"`
	Description *string `json:"description"`

	Priority *int    `json:"priority"`
	Notes    *string `json:"notes"`
}

func (r *CreateCourseRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.NameVi = strings.TrimSpace(r.NameVi)
	r.Type = strings.TrimSpace(r.Type)
	trimPtr(&r.NameEn)
	trimPtr(&r.Description)
}

func (r CreateCourseRequest) ToModel() m.CourseModel {
	return m.CourseModel{
		CourseOrgUnitID:   r.OrgUnitID,
		CourseCode:        r.Code,
		CourseNameVi:      r.NameVi,
		CourseNameEn:      r.NameEn,
		CourseCredits:     r.Credits,
		CourseType:        r.Type,
		CourseDescription: r.Description,
		CourseStatus:      m.CourseStatusDraft,
	}
}

/* =========================================================
   UPDATE (PUT) — input untuk transition engine
   ========================================================= */

// Satu nama field kanonik per konsep; bentuk lain ditolak oleh decoder,
// tidak ada fallback alias diam-diam.
type SyllabusWeekInput struct {
	Week        int      `json:"week" validate:"required,min=1"`
	Topic       string   `json:"topic" validate:"required,min=1,max=300"`
	Materials   []string `json:"materials"`
	Assignments []string `json:"assignments"`
	Duration    int      `json:"duration" validate:"min=0"`
	IsExamWeek  bool     `json:"is_exam_week"`
}

type InstructorInput struct {
	InstructorID       uint       `json:"instructor_id" validate:"required,min=1"`
	QualificationType  string     `json:"qualification_type" validate:"omitempty,max=40"`
	QualificationLevel string     `json:"qualification_level" validate:"omitempty,max=40"`
	Status             string     `json:"status" validate:"omitempty,max=20"`
	ValidFrom          *time.Time `json:"valid_from"`
	ValidTo            *time.Time `json:"valid_to"`
}

type UpdateCourseRequest struct {
	// ---- atribut course (merge-on-present) ----
	OrgUnitID *uint              `json:"org_unit_id" validate:"omitempty,min=1"`
	Code      *string            `json:"code" validate:"omitempty,min=1,max=40"`
	NameVi    *string            `json:"name_vi" validate:"omitempty,min=1,max=200"`
	NameEn    PatchField[string] `json:"name_en"`
	Credits   *int               `json:"credits" validate:"omitempty,min=0"`
	Type      *string            `json:"type" validate:"omitempty,max=40"`

	Description PatchField[string] `json:"description"`

	// ---- workflow state ----
	Status   *string            `json:"status" validate:"omitempty,max=20"`
	Priority *int               `json:"priority"`
	Notes    PatchField[string] `json:"notes"`

	// ---- content block (merge-on-present, tri-state) ----
	Prerequisites      PatchField[[]string] `json:"prerequisites"`
	LearningObjectives PatchField[string]   `json:"learning_objectives"`
	AssessmentMethods  PatchField[string]   `json:"assessment_methods"`
	PassingGrade       PatchField[float64]  `json:"passing_grade"`

	// ---- koleksi (replace-on-present: nil = tidak disentuh,
	//      slice kosong = hapus semua) ----
	Syllabus    *[]SyllabusWeekInput `json:"syllabus" validate:"omitempty,dive"`
	Instructors *[]InstructorInput   `json:"instructors" validate:"omitempty,dive"`

	// ---- lifecycle ----
	WorkflowAction *string `json:"workflow_action" validate:"omitempty,max=40"`
	Comment        *string `json:"comment"`
}

func (r *UpdateCourseRequest) Normalize() {
	trimPtr(&r.Code)
	trimPtr(&r.NameVi)
	trimPtr(&r.Type)
	trimPtr(&r.Status)
	trimPtr(&r.WorkflowAction)
	trimPtr(&r.Comment)
	if r.NameEn.Present && r.NameEn.Value != nil {
		v := strings.TrimSpace(*r.NameEn.Value)
		r.NameEn.Value = &v
	}
}

// ApplyCourse menimpa hanya atribut yang dikirim; field absen dibiarkan.
// course_status TIDAK disentuh di sini — itu wilayah transition engine.
func (r UpdateCourseRequest) ApplyCourse(mo *m.CourseModel) {
	if r.OrgUnitID != nil {
		mo.CourseOrgUnitID = *r.OrgUnitID
	}
	if r.Code != nil {
		mo.CourseCode = *r.Code
	}
	if r.NameVi != nil {
		mo.CourseNameVi = *r.NameVi
	}
	if r.Credits != nil {
		mo.CourseCredits = *r.Credits
	}
	if r.Type != nil {
		mo.CourseType = *r.Type
	}

	// nullable string (tri-state)
	if r.NameEn.Present {
		mo.CourseNameEn = r.NameEn.Value
	}
	if r.Description.Present {
		mo.CourseDescription = r.Description.Value
	}
}

// HasContentChanges: ContentBlock hanya disentuh kalau minimal satu
// field content hadir di request.
func (r UpdateCourseRequest) HasContentChanges() bool {
	return r.Prerequisites.Present ||
		r.LearningObjectives.Present ||
		r.AssessmentMethods.Present ||
		r.PassingGrade.Present
}

// ContentPatch membangun map kolom→nilai untuk partial update ContentBlock.
func (r UpdateCourseRequest) ContentPatch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.Prerequisites.Present {
		if r.Prerequisites.Value == nil {
			patch["content_prerequisites"] = nil
		} else {
			// daftar prasyarat diratakan ke teks, dipisah "; "
			flat := strings.Join(*r.Prerequisites.Value, "; ")
			patch["content_prerequisites"] = flat
		}
	}
	if r.LearningObjectives.Present {
		patch["content_objectives"] = ptrOrNil(r.LearningObjectives.Value)
	}
	if r.AssessmentMethods.Present {
		patch["content_assessment_methods"] = ptrOrNil(r.AssessmentMethods.Value)
	}
	if r.PassingGrade.Present {
		if r.PassingGrade.Value == nil {
			patch["content_passing_grade"] = nil
		} else {
			patch["content_passing_grade"] = *r.PassingGrade.Value
		}
	}
	return patch
}

/* =========================================================
   LIST QUERY
   ========================================================= */

type ListCourseQuery struct {
	Q         *string `query:"q"`
	OrgUnitID *uint   `query:"org_unit_id"`
	Status    *string `query:"status"`
	OrderBy   *string `query:"order_by"` // code|name|created_at|updated_at
	Sort      *string `query:"sort"`     // asc|desc
}

/* =========================================================
   RESPONSES
   ========================================================= */

type CourseResponse struct {
	CourseID    uint           `json:"course_id"`
	OrgUnitID   uint           `json:"org_unit_id"`
	Code        string         `json:"code"`
	NameVi      string         `json:"name_vi"`
	NameEn      *string        `json:"name_en,omitempty"`
	Credits     int            `json:"credits"`
	Type        string         `json:"type"`
	Description *string        `json:"description,omitempty"`
	Status      m.CourseStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func FromCourseModel(mo m.CourseModel) CourseResponse {
	return CourseResponse{
		CourseID:    mo.CourseID,
		OrgUnitID:   mo.CourseOrgUnitID,
		Code:        mo.CourseCode,
		NameVi:      mo.CourseNameVi,
		NameEn:      mo.CourseNameEn,
		Credits:     mo.CourseCredits,
		Type:        mo.CourseType,
		Description: mo.CourseDescription,
		Status:      mo.CourseStatus,
		CreatedAt:   mo.CourseCreatedAt,
		UpdatedAt:   mo.CourseUpdatedAt,
	}
}

func FromCourseModels(rows []m.CourseModel) []CourseResponse {
	out := make([]CourseResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromCourseModel(rows[i]))
	}
	return out
}

type WorkflowResponse struct {
	Status   m.CourseStatus  `json:"status"`
	Stage    m.WorkflowStage `json:"stage"`
	Priority int             `json:"priority"`
	Notes    *string         `json:"notes,omitempty"`
}

func FromWorkflowModel(mo m.CourseWorkflowModel) WorkflowResponse {
	return WorkflowResponse{
		Status:   mo.WorkflowStatus,
		Stage:    mo.WorkflowStage,
		Priority: mo.WorkflowPriority,
		Notes:    mo.WorkflowNotes,
	}
}

type ContentResponse struct {
	Prerequisites     *string  `json:"prerequisites,omitempty"`
	Objectives        *string  `json:"learning_objectives,omitempty"`
	AssessmentMethods *string  `json:"assessment_methods,omitempty"`
	PassingGrade      *float64 `json:"passing_grade,omitempty"`
}

func FromContentModel(mo m.CourseContentModel) ContentResponse {
	return ContentResponse{
		Prerequisites:     mo.ContentPrerequisites,
		Objectives:        mo.ContentObjectives,
		AssessmentMethods: mo.ContentAssessmentMethods,
		PassingGrade:      mo.ContentPassingGrade,
	}
}

type SyllabusWeekResponse struct {
	Week        int      `json:"week"`
	Topic       string   `json:"topic"`
	Materials   []string `json:"materials,omitempty"`
	Assignments []string `json:"assignments,omitempty"`
	Duration    int      `json:"duration"`
	IsExamWeek  bool     `json:"is_exam_week"`
}

func FromSyllabusWeekModel(mo m.SyllabusWeekModel) SyllabusWeekResponse {
	resp := SyllabusWeekResponse{
		Week:       mo.WeekNumber,
		Topic:      mo.WeekTopic,
		Duration:   mo.WeekDurationHours,
		IsExamWeek: mo.WeekIsExam,
	}
	if len(mo.WeekMaterials) > 0 {
		_ = json.Unmarshal(mo.WeekMaterials, &resp.Materials)
	}
	if len(mo.WeekAssignments) > 0 {
		_ = json.Unmarshal(mo.WeekAssignments, &resp.Assignments)
	}
	return resp
}

type InstructorQualificationResponse struct {
	InstructorID       uint       `json:"instructor_id"`
	QualificationType  string     `json:"qualification_type"`
	QualificationLevel string     `json:"qualification_level"`
	Status             string     `json:"status"`
	ValidFrom          *time.Time `json:"valid_from,omitempty"`
	ValidTo            *time.Time `json:"valid_to,omitempty"`
}

func FromQualificationModel(mo m.InstructorQualificationModel) InstructorQualificationResponse {
	return InstructorQualificationResponse{
		InstructorID:       mo.QualificationInstructorID,
		QualificationType:  mo.QualificationType,
		QualificationLevel: mo.QualificationLevel,
		Status:             mo.QualificationStatus,
		ValidFrom:          mo.QualificationValidFrom,
		ValidTo:            mo.QualificationValidTo,
	}
}

type ApprovalHistoryResponse struct {
	Action       m.HistoryAction `json:"action"`
	FromStatus   m.CourseStatus  `json:"from_status"`
	ToStatus     m.CourseStatus  `json:"to_status"`
	ReviewerID   uint            `json:"reviewer_id"`
	ReviewerRole string          `json:"reviewer_role"`
	Comment      string          `json:"comment"`
	CreatedAt    time.Time       `json:"created_at"`
}

func FromHistoryModel(mo m.ApprovalHistoryModel) ApprovalHistoryResponse {
	return ApprovalHistoryResponse{
		Action:       mo.HistoryAction,
		FromStatus:   mo.HistoryFromStatus,
		ToStatus:     mo.HistoryToStatus,
		ReviewerID:   mo.HistoryReviewerID,
		ReviewerRole: mo.HistoryReviewerRole,
		Comment:      mo.HistoryComment,
		CreatedAt:    mo.HistoryCreatedAt,
	}
}

type AuditStampResponse struct {
	UpdatedBy uint      `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Proyeksi penuh course lintas semua store (hasil GET / sesudah PUT).
type CourseProjectionResponse struct {
	Course      CourseResponse                    `json:"course"`
	Workflow    WorkflowResponse                  `json:"workflow"`
	Content     ContentResponse                   `json:"content"`
	Syllabus    []SyllabusWeekResponse            `json:"syllabus"`
	Instructors []InstructorQualificationResponse `json:"instructors"`
	History     []ApprovalHistoryResponse         `json:"approval_history"`
	AuditStamp  *AuditStampResponse               `json:"audit_stamp,omitempty"`
}

/* ================= helpers ================= */

func trimPtr(pp **string) {
	if pp == nil || *pp == nil {
		return
	}
	v := strings.TrimSpace(**pp)
	if v == "" {
		*pp = nil
		return
	}
	*pp = &v
}

func ptrOrNil(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
