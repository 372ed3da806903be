package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolsync_backend/internals/constants"
	eventCtl "schoolsync_backend/internals/features/school/events/controller"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

// EventRoutes: everyone reads (visibility applies), staff write.
func EventRoutes(r fiber.Router, db *gorm.DB) {
	ctl := eventCtl.NewEventController(db)

	grp := r.Group("/events")

	staffOnly := authMw.OnlyRoles("Only staff may manage events", constants.StaffOnly...)

	grp.Get("/", ctl.List)
	grp.Post("/", staffOnly, ctl.Create)
	grp.Get("/:id", ctl.GetByID)
	grp.Put("/:id", staffOnly, ctl.Update)
	grp.Delete("/:id", staffOnly, ctl.Delete)
}
