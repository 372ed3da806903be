package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolsync_backend/internals/constants"
	announcementCtl "schoolsync_backend/internals/features/school/announcements/controller"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

// AnnouncementRoutes: everyone reads (visibility applies), staff write.
func AnnouncementRoutes(r fiber.Router, db *gorm.DB) {
	ctl := announcementCtl.NewAnnouncementController(db)

	grp := r.Group("/announcements")

	staffOnly := authMw.OnlyRoles("Only staff may manage announcements", constants.StaffOnly...)

	grp.Get("/", ctl.List)
	grp.Post("/", staffOnly, ctl.Create)
	grp.Get("/:id", ctl.GetByID)
	grp.Put("/:id", staffOnly, ctl.Update)
	grp.Delete("/:id", staffOnly, ctl.Delete)
}
