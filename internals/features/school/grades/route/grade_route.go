package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolsync_backend/internals/constants"
	gradeCtl "schoolsync_backend/internals/features/school/grades/controller"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

// GradeRoutes: teacher/admin write, admin-only delete.
func GradeRoutes(r fiber.Router, db *gorm.DB) {
	ctl := gradeCtl.NewGradeController(db)

	grp := r.Group("/grades")

	staffOnly := authMw.OnlyRoles("Only staff may manage grades", constants.StaffOnly...)
	adminOnly := authMw.OnlyRoles("Only admins may delete grades", constants.AdminOnly...)

	grp.Get("/", ctl.List)
	grp.Post("/", staffOnly, ctl.Create)
	grp.Put("/bulk", staffOnly, ctl.BulkUpdate)
	grp.Get("/:id", ctl.GetByID)
	grp.Put("/:id", staffOnly, ctl.Update)
	grp.Delete("/:id", adminOnly, ctl.Delete)
}
