package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolsync_backend/internals/constants"
	studentCtl "schoolsync_backend/internals/features/users/students/controller"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

// StudentRoutes: list is staff-only, create/delete admin-only, the rest is
// gated self-or-admin inside the controller.
func StudentRoutes(r fiber.Router, db *gorm.DB) {
	ctl := studentCtl.NewStudentController(db)

	grp := r.Group("/students")

	staffOnly := authMw.OnlyRoles("Only staff may list students", constants.StaffOnly...)
	adminOnly := authMw.OnlyRoles("Only admins may manage students", constants.AdminOnly...)

	grp.Get("/", staffOnly, ctl.List)
	grp.Post("/", adminOnly, ctl.Create)

	grp.Get("/:id", ctl.GetByID)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", adminOnly, ctl.Delete)

	grp.Get("/:id/grades", ctl.Grades)
	grp.Get("/:id/attendance", ctl.Attendance)

	grp.Put("/:id/change-password", ctl.ChangePassword)
	grp.Put("/:id/reset-password", adminOnly, ctl.ResetPassword)
	grp.Post("/:id/avatar", ctl.UploadAvatar)
}
