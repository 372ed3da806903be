package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolsync_backend/internals/constants"
	submissionCtl "schoolsync_backend/internals/features/school/submissions/controller"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

// SubmissionRoutes: students submit, staff grade, ownership checks live in
// the controller.
func SubmissionRoutes(r fiber.Router, db *gorm.DB) {
	ctl := submissionCtl.NewSubmissionController(db)

	grp := r.Group("/submissions")

	studentOnly := authMw.OnlyRoles("Only students may submit work", constants.RoleStudent)
	staffOnly := authMw.OnlyRoles("Only staff may grade submissions", constants.StaffOnly...)

	grp.Post("/", studentOnly, ctl.Create)
	grp.Get("/student/:studentId", ctl.ByStudent)
	grp.Get("/:id", ctl.GetByID)
	grp.Put("/:id", studentOnly, ctl.Update)
	grp.Put("/:id/grade", staffOnly, ctl.Grade)
	grp.Delete("/:id", ctl.Delete)
}
