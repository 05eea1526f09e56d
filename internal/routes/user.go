package routes

import (
	"github.com/labstack/echo/v4"

	"roombook/internal/controllers"
	"roombook/internal/entities"
	"roombook/pkg/middleware"
)

func runUserRouter(secureGroup *echo.Group, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(entities.RoleAdmin)

	secureGroup.GET("/users/current", userCtrl.GetCurrentUser)
	secureGroup.GET("/users/booking-organizers", userCtrl.GetOrganizers)
	secureGroup.POST("/users/validate-username", userCtrl.ValidateUsername)

	secureGroup.GET("/users/all", userCtrl.GetUsers, adminOnly)
	secureGroup.PATCH("/users/:id/status", userCtrl.UpdateUserStatus, adminOnly)
	secureGroup.POST("/users/:id/reset-password", userCtrl.ResetPassword, adminOnly)
}
