package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolsync_backend/internals/constants"
	classCtl "schoolsync_backend/internals/features/school/classes/controller"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

// ClassRoutes: reads for any authenticated role, mutation admin-only.
func ClassRoutes(r fiber.Router, db *gorm.DB) {
	ctl := classCtl.NewClassController(db)

	grp := r.Group("/classes")

	grp.Get("/", ctl.List)
	grp.Get("/teacher/:teacherId", ctl.ByTeacher)
	grp.Get("/:id", ctl.GetByID)

	adminOnly := authMw.OnlyRoles("Only admins may manage classes", constants.AdminOnly...)
	grp.Post("/", adminOnly, ctl.Create)
	grp.Put("/:id", adminOnly, ctl.Update)
	grp.Delete("/:id", adminOnly, ctl.Delete)
	grp.Post("/:id/students/:studentId", adminOnly, ctl.AddStudent)
	grp.Delete("/:id/students/:studentId", adminOnly, ctl.RemoveStudent)
}
