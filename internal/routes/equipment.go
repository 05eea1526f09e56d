package routes

import (
	"github.com/labstack/echo/v4"

	"roombook/internal/controllers"
	"roombook/internal/entities"
	"roombook/pkg/middleware"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentCtrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(entities.RoleAdmin)

	secureGroup.GET("/equipment", equipmentCtrl.GetEquipments)
	secureGroup.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	secureGroup.POST("/equipment", equipmentCtrl.CreateEquipment, adminOnly)
	secureGroup.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment, adminOnly)
	secureGroup.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment, adminOnly)

	secureGroup.GET("/images/equipments/config", equipmentCtrl.GetImageConfig)
	secureGroup.POST("/equipment/:id/image", equipmentCtrl.UploadImage, adminOnly)
	secureGroup.DELETE("/equipment/:id/image", equipmentCtrl.DeleteImage, adminOnly)
}
