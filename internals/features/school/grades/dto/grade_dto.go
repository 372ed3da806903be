package dto

import (
	"math"

	"github.com/google/uuid"

	gradeModel "schoolsync_backend/internals/features/school/grades/model"
)

/* ===================== REQUESTS ===================== */

type CreateGradeRequest struct {
	StudentID  uuid.UUID `json:"student_id" validate:"required"`
	Subject    string    `json:"subject" validate:"required,min=1,max=60"`
	SchoolYear string    `json:"school_year" validate:"required,min=4,max=20"`
	Quarter1   *float64  `json:"quarter1" validate:"omitempty,min=0,max=100"`
	Quarter2   *float64  `json:"quarter2" validate:"omitempty,min=0,max=100"`
	Quarter3   *float64  `json:"quarter3" validate:"omitempty,min=0,max=100"`
	Quarter4   *float64  `json:"quarter4" validate:"omitempty,min=0,max=100"`
	Final      *float64  `json:"final" validate:"omitempty,min=0,max=100"`
}

func (r CreateGradeRequest) ToModel(createdBy uuid.UUID) *gradeModel.GradeModel {
	m := &gradeModel.GradeModel{
		GradeStudentID:  r.StudentID,
		GradeSubject:    r.Subject,
		GradeSchoolYear: r.SchoolYear,
		GradeQuarter1:   r.Quarter1,
		GradeQuarter2:   r.Quarter2,
		GradeQuarter3:   r.Quarter3,
		GradeQuarter4:   r.Quarter4,
		GradeCreatedBy:  createdBy,
	}
	DeriveFinal(m, r.Final)
	return m
}

type UpdateGradeRequest struct {
	Quarter1 *float64 `json:"quarter1" validate:"omitempty,min=0,max=100"`
	Quarter2 *float64 `json:"quarter2" validate:"omitempty,min=0,max=100"`
	Quarter3 *float64 `json:"quarter3" validate:"omitempty,min=0,max=100"`
	Quarter4 *float64 `json:"quarter4" validate:"omitempty,min=0,max=100"`
	Final    *float64 `json:"final" validate:"omitempty,min=0,max=100"`
}

// ApplyToModel applies the provided quarters then re-derives the final.
func (r *UpdateGradeRequest) ApplyToModel(m *gradeModel.GradeModel) {
	if r.Quarter1 != nil {
		m.GradeQuarter1 = r.Quarter1
	}
	if r.Quarter2 != nil {
		m.GradeQuarter2 = r.Quarter2
	}
	if r.Quarter3 != nil {
		m.GradeQuarter3 = r.Quarter3
	}
	if r.Quarter4 != nil {
		m.GradeQuarter4 = r.Quarter4
	}
	DeriveFinal(m, r.Final)
}

type BulkUpdateGradeItem struct {
	GradeID uuid.UUID `json:"grade_id" validate:"required"`
	UpdateGradeRequest
}

type BulkUpdateGradesRequest struct {
	Grades []BulkUpdateGradeItem `json:"grades" validate:"required,min=1,dive"`
}

/* ===================== DERIVATION ===================== */

// DeriveFinal applies the single final-grade rule: an explicitly supplied
// final always wins; otherwise, once all four quarters are present the final
// is the mean rounded to two decimals. With quarters missing and no explicit
// value the stored final is left as-is.
func DeriveFinal(m *gradeModel.GradeModel, explicit *float64) {
	if explicit != nil {
		m.GradeFinal = explicit
		return
	}
	if m.GradeQuarter1 == nil || m.GradeQuarter2 == nil || m.GradeQuarter3 == nil || m.GradeQuarter4 == nil {
		return
	}
	mean := (*m.GradeQuarter1 + *m.GradeQuarter2 + *m.GradeQuarter3 + *m.GradeQuarter4) / 4
	rounded := math.Round(mean*100) / 100
	m.GradeFinal = &rounded
}

/* ===================== RESPONSES ===================== */

const passingFinal = 75

type GradeResponse struct {
	gradeModel.GradeModel
	GradeRemark string `json:"grade_remark"`
}

// Remark is display-only, never stored.
func Remark(final *float64) string {
	switch {
	case final == nil:
		return "Pending"
	case *final >= passingFinal:
		return "Passed"
	default:
		return "Failed"
	}
}

func FromModel(m gradeModel.GradeModel) GradeResponse {
	return GradeResponse{
		GradeModel:  m,
		GradeRemark: Remark(m.GradeFinal),
	}
}

func FromModels(rows []gradeModel.GradeModel) []GradeResponse {
	out := make([]GradeResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, FromModel(m))
	}
	return out
}
