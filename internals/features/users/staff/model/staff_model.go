package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StaffRoleTeacher = "teacher"
	StaffRoleAdmin   = "admin"
)

type StaffModel struct {
	StaffID       uuid.UUID `gorm:"column:staff_id;type:uuid;primaryKey" json:"staff_id"`
	StaffName     string    `gorm:"column:staff_name;type:varchar(100);not null" json:"staff_name"`
	StaffEmail    string    `gorm:"column:staff_email;type:varchar(120);not null;uniqueIndex" json:"staff_email"`
	StaffIDNumber string    `gorm:"column:staff_id_number;type:varchar(40);not null;uniqueIndex" json:"staff_id_number"`
	StaffPassword string    `gorm:"column:staff_password;type:varchar(100);not null" json:"-"`
	StaffRole     string    `gorm:"column:staff_role;type:varchar(20);not null;default:teacher" json:"staff_role"`

	// subjects taught, JSON string array
	StaffSubjects datatypes.JSON `gorm:"column:staff_subjects" json:"staff_subjects,omitempty"`

	// denormalized mirror of class_teachers: distinct class ids this staff teaches.
	// Kept consistent by the roster protocol, never written anywhere else.
	StaffAssignedClassIDs datatypes.JSON `gorm:"column:staff_assigned_class_ids" json:"staff_assigned_class_ids,omitempty"`

	StaffCreatedAt time.Time `gorm:"column:staff_created_at;not null;autoCreateTime" json:"staff_created_at"`
	StaffUpdatedAt time.Time `gorm:"column:staff_updated_at;not null;autoUpdateTime" json:"staff_updated_at"`
}

func (StaffModel) TableName() string { return "staff" }

func (m *StaffModel) BeforeCreate(tx *gorm.DB) error {
	if m.StaffID == uuid.Nil {
		m.StaffID = uuid.New()
	}
	return nil
}

func (m *StaffModel) SubjectsList() []string {
	var out []string
	if len(m.StaffSubjects) > 0 {
		_ = json.Unmarshal(m.StaffSubjects, &out)
	}
	return out
}

func (m *StaffModel) SetSubjects(subjects []string) {
	if subjects == nil {
		subjects = []string{}
	}
	b, _ := json.Marshal(subjects)
	m.StaffSubjects = datatypes.JSON(b)
}

func (m *StaffModel) AssignedClassIDs() []uuid.UUID {
	var raw []string
	if len(m.StaffAssignedClassIDs) > 0 {
		_ = json.Unmarshal(m.StaffAssignedClassIDs, &raw)
	}
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, err := uuid.Parse(s); err == nil {
			out = append(out, id)
		}
	}
	return out
}

func (m *StaffModel) SetAssignedClassIDs(ids []uuid.UUID) {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}
	b, _ := json.Marshal(raw)
	m.StaffAssignedClassIDs = datatypes.JSON(b)
}
