package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "schoolsync_backend/internals/features/school/classes/model"
	staffModel "schoolsync_backend/internals/features/users/staff/model"
	studentModel "schoolsync_backend/internals/features/users/students/model"
)

// Roster protocol. Every mutation here keeps both sides of the two
// denormalized relations consistent:
//   students.student_class_id        <-> the class a student is enrolled in
//   staff.staff_assigned_class_ids   <-> distinct class ids in class_teachers
// Callers are expected to run these inside a single transaction so a crash
// cannot leave one side updated without the other.

type TeacherAssignment struct {
	TeacherID uuid.UUID
	Subject   string
}

func FindClassByTuple(db *gorm.DB, gradeLevel, section, schoolYear string) (*classModel.ClassModel, error) {
	var class classModel.ClassModel
	err := db.
		Where("class_grade_level = ? AND class_section = ? AND class_school_year = ?",
			gradeLevel, section, schoolYear).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// EnrollStudents points every listed student at the class.
func EnrollStudents(tx *gorm.DB, classID uuid.UUID, studentIDs []uuid.UUID) error {
	if len(studentIDs) == 0 {
		return nil
	}
	return tx.Model(&studentModel.StudentModel{}).
		Where("student_id IN ?", studentIDs).
		Update("student_class_id", classID).Error
}

// DetachStudentsOfClass clears class membership on every student currently
// pointing at the class.
func DetachStudentsOfClass(tx *gorm.DB, classID uuid.UUID) error {
	return tx.Model(&studentModel.StudentModel{}).
		Where("student_class_id = ?", classID).
		Update("student_class_id", nil).Error
}

// ReplaceStudentMembership clears the old membership then sets the new list.
// Within one transaction no student is left pointing at a class that no
// longer lists them.
func ReplaceStudentMembership(tx *gorm.DB, classID uuid.UUID, newStudentIDs []uuid.UUID) error {
	if err := DetachStudentsOfClass(tx, classID); err != nil {
		return err
	}
	return EnrollStudents(tx, classID, newStudentIDs)
}

// SyncTeacherMirror recomputes staff_assigned_class_ids from class_teachers.
// Recomputing (instead of incremental add/remove) makes the mirror idempotent:
// a teacher assigned twice to the same class still appears exactly once.
func SyncTeacherMirror(tx *gorm.DB, staffID uuid.UUID) error {
	var staff staffModel.StaffModel
	if err := tx.First(&staff, "staff_id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // tolerate dangling assignment rows
		}
		return err
	}

	var classIDs []uuid.UUID
	if err := tx.Model(&classModel.ClassTeacherModel{}).
		Distinct("class_teacher_class_id").
		Where("class_teacher_staff_id = ?", staffID).
		Pluck("class_teacher_class_id", &classIDs).Error; err != nil {
		return err
	}

	staff.SetAssignedClassIDs(classIDs)
	return tx.Model(&staffModel.StaffModel{}).
		Where("staff_id = ?", staffID).
		Update("staff_assigned_class_ids", staff.StaffAssignedClassIDs).Error
}

// SetTeacherAssignments replaces the class's teacher list with the given
// assignments (deduplicated) and refreshes the mirror of every staff touched,
// old and new.
func SetTeacherAssignments(tx *gorm.DB, classID uuid.UUID, assignments []TeacherAssignment) error {
	var oldStaffIDs []uuid.UUID
	if err := tx.Model(&classModel.ClassTeacherModel{}).
		Distinct("class_teacher_staff_id").
		Where("class_teacher_class_id = ?", classID).
		Pluck("class_teacher_staff_id", &oldStaffIDs).Error; err != nil {
		return err
	}

	if err := tx.Where("class_teacher_class_id = ?", classID).
		Delete(&classModel.ClassTeacherModel{}).Error; err != nil {
		return err
	}

	type key struct {
		staff   uuid.UUID
		subject string
	}
	seen := map[key]struct{}{}
	touched := map[uuid.UUID]struct{}{}
	for _, id := range oldStaffIDs {
		touched[id] = struct{}{}
	}

	for _, a := range assignments {
		k := key{staff: a.TeacherID, subject: a.Subject}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		touched[a.TeacherID] = struct{}{}

		row := classModel.ClassTeacherModel{
			ClassTeacherClassID: classID,
			ClassTeacherStaffID: a.TeacherID,
			ClassTeacherSubject: a.Subject,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	for staffID := range touched {
		if err := SyncTeacherMirror(tx, staffID); err != nil {
			return err
		}
	}
	return nil
}

// CleanupClass detaches every student and teacher from the class. Used before
// deleting the class record; both passes must complete before the delete.
func CleanupClass(tx *gorm.DB, classID uuid.UUID) error {
	if err := DetachStudentsOfClass(tx, classID); err != nil {
		return err
	}
	return SetTeacherAssignments(tx, classID, nil)
}

// ReassignStudentClass re-derives a student's class after a grade level or
// section change. Detaches from the old class and attaches to the class
// matching the new tuple for the given school year; with no match the
// student becomes classless rather than erroring.
func ReassignStudentClass(tx *gorm.DB, student *studentModel.StudentModel, schoolYear string) error {
	class, err := FindClassByTuple(tx, student.StudentGradeLevel, student.StudentSection, schoolYear)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			student.StudentClassID = nil
			return tx.Model(&studentModel.StudentModel{}).
				Where("student_id = ?", student.StudentID).
				Update("student_class_id", nil).Error
		}
		return err
	}

	student.StudentClassID = &class.ClassID
	return tx.Model(&studentModel.StudentModel{}).
		Where("student_id = ?", student.StudentID).
		Update("student_class_id", class.ClassID).Error
}

// ClassStudentIDs lists the current roster membership.
func ClassStudentIDs(db *gorm.DB, classID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&studentModel.StudentModel{}).
		Where("student_class_id = ?", classID).
		Pluck("student_id", &ids).Error
	return ids, err
}

// ClassTeacherRows lists the current teacher assignments.
func ClassTeacherRows(db *gorm.DB, classID uuid.UUID) ([]classModel.ClassTeacherModel, error) {
	var rows []classModel.ClassTeacherModel
	err := db.Where("class_teacher_class_id = ?", classID).
		Order("class_teacher_created_at ASC").
		Find(&rows).Error
	return rows, err
}
