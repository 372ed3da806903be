package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolsync_backend/internals/constants"
	attendanceCtl "schoolsync_backend/internals/features/school/attendance/controller"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

// AttendanceRoutes: teacher/admin write, admin-only delete.
func AttendanceRoutes(r fiber.Router, db *gorm.DB) {
	ctl := attendanceCtl.NewAttendanceController(db)

	grp := r.Group("/attendance")

	staffOnly := authMw.OnlyRoles("Only staff may manage attendance", constants.StaffOnly...)
	adminOnly := authMw.OnlyRoles("Only admins may delete attendance", constants.AdminOnly...)

	grp.Get("/", ctl.List)
	grp.Post("/", staffOnly, ctl.Mark)
	grp.Post("/bulk", staffOnly, ctl.BulkMark)
	grp.Get("/stats/:studentId", ctl.Stats)
	grp.Put("/:id", staffOnly, ctl.Update)
	grp.Delete("/:id", adminOnly, ctl.Delete)
}
