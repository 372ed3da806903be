package database

import (
	"log"

	"gorm.io/gorm"

	announcementModel "schoolsync_backend/internals/features/school/announcements/model"
	attendanceModel "schoolsync_backend/internals/features/school/attendance/model"
	classModel "schoolsync_backend/internals/features/school/classes/model"
	eventModel "schoolsync_backend/internals/features/school/events/model"
	gradeModel "schoolsync_backend/internals/features/school/grades/model"
	materialModel "schoolsync_backend/internals/features/school/materials/model"
	submissionModel "schoolsync_backend/internals/features/school/submissions/model"
	staffModel "schoolsync_backend/internals/features/users/staff/model"
	studentModel "schoolsync_backend/internals/features/users/students/model"
)

// Migrate creates/updates the schema for every ledger.
func Migrate(db *gorm.DB) {
	if err := db.AutoMigrate(
		&studentModel.StudentModel{},
		&staffModel.StaffModel{},
		&classModel.ClassModel{},
		&classModel.ClassTeacherModel{},
		&gradeModel.GradeModel{},
		&attendanceModel.AttendanceModel{},
		&materialModel.MaterialModel{},
		&submissionModel.SubmissionModel{},
		&announcementModel.AnnouncementModel{},
		&eventModel.EventModel{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}
