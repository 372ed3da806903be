package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolsync_backend/internals/constants"
	materialCtl "schoolsync_backend/internals/features/school/materials/controller"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

// MaterialRoutes: teacher/admin write, submissions listing is staff-only.
func MaterialRoutes(r fiber.Router, db *gorm.DB) {
	ctl := materialCtl.NewMaterialController(db)

	grp := r.Group("/materials")

	staffOnly := authMw.OnlyRoles("Only staff may manage materials", constants.StaffOnly...)

	grp.Get("/", ctl.List)
	grp.Post("/", staffOnly, ctl.Create)
	grp.Get("/:id", ctl.GetByID)
	grp.Put("/:id", staffOnly, ctl.Update)
	grp.Delete("/:id", staffOnly, ctl.Delete)
	grp.Get("/:id/submissions", staffOnly, ctl.Submissions)
}
