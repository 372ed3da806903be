package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authCtl "schoolsync_backend/internals/features/users/auth/controller"
	"schoolsync_backend/internals/middlewares"
	authMw "schoolsync_backend/internals/middlewares/auth"
)

// AuthRoutes: register/login are public (rate limited), /me needs a token.
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := authCtl.NewAuthController(db)

	grp := r.Group("/auth")

	loginLimit := middlewares.LoginRateLimiter()
	grp.Post("/register", loginLimit, ctl.Register)
	grp.Post("/login", loginLimit, ctl.Login)
	grp.Post("/login-google", loginLimit, ctl.LoginGoogle)

	grp.Get("/me", authMw.AuthMiddleware(), ctl.Me)
}
