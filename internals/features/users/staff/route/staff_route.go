package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolsync_backend/internals/constants"
	staffCtl "schoolsync_backend/internals/features/users/staff/controller"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

// StaffRoutes: admin-only surface.
func StaffRoutes(r fiber.Router, db *gorm.DB) {
	ctl := staffCtl.NewStaffController(db)

	grp := r.Group("/staff", authMw.OnlyRoles("Only admins may manage staff", constants.AdminOnly...))

	grp.Get("/", ctl.List)
	grp.Post("/", ctl.Create)
	grp.Get("/:id", ctl.GetByID)
	grp.Put("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
