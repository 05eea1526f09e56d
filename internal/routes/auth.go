package routes

import (
	"github.com/labstack/echo/v4"

	"roombook/internal/controllers"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, authCtrl *controllers.AuthController) {
	api.POST("/auth/login", authCtrl.Login)
	api.POST("/auth/refresh_token", authCtrl.Refresh)
	secureGroup.GET("/auth/me", authCtrl.Me)
	secureGroup.POST("/auth/logout", authCtrl.Logout)
}
