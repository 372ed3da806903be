package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	announcementRoute "schoolsync_backend/internals/features/school/announcements/route"
	attendanceRoute "schoolsync_backend/internals/features/school/attendance/route"
	classRoute "schoolsync_backend/internals/features/school/classes/route"
	eventRoute "schoolsync_backend/internals/features/school/events/route"
	gradeRoute "schoolsync_backend/internals/features/school/grades/route"
	materialRoute "schoolsync_backend/internals/features/school/materials/route"
	submissionRoute "schoolsync_backend/internals/features/school/submissions/route"
	authRoute "schoolsync_backend/internals/features/users/auth/route"
	staffRoute "schoolsync_backend/internals/features/users/staff/route"
	studentRoute "schoolsync_backend/internals/features/users/students/route"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

// SetupRoutes mounts the public auth surface and the token-guarded API.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	authRoute.AuthRoutes(api, db)

	protected := api.Group("", authMw.AuthMiddleware())

	studentRoute.StudentRoutes(protected, db)
	staffRoute.StaffRoutes(protected, db)
	classRoute.ClassRoutes(protected, db)
	gradeRoute.GradeRoutes(protected, db)
	attendanceRoute.AttendanceRoutes(protected, db)
	materialRoute.MaterialRoutes(protected, db)
	submissionRoute.SubmissionRoutes(protected, db)
	announcementRoute.AnnouncementRoutes(protected, db)
	eventRoute.EventRoutes(protected, db)
}
