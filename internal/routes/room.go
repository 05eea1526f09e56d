package routes

import (
	"github.com/labstack/echo/v4"

	"roombook/internal/controllers"
	"roombook/internal/entities"
	"roombook/pkg/middleware"
)

func runRoomRouter(secureGroup *echo.Group, roomCtrl *controllers.RoomController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(entities.RoleAdmin)

	secureGroup.GET("/rooms", roomCtrl.GetRooms)
	secureGroup.GET("/rooms/:id", roomCtrl.FindRoom)
	secureGroup.POST("/rooms", roomCtrl.CreateRoom, adminOnly)
	secureGroup.PUT("/rooms/:id", roomCtrl.UpdateRoom, adminOnly)
	secureGroup.DELETE("/rooms/:id", roomCtrl.DeleteRoom, adminOnly)

	secureGroup.GET("/images/rooms/config", roomCtrl.GetImageConfig)
	secureGroup.POST("/rooms/:id/image", roomCtrl.UploadImage, adminOnly)
	secureGroup.DELETE("/rooms/:id/image", roomCtrl.DeleteImage, adminOnly)
}
