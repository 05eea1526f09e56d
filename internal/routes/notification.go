package routes

import (
	"github.com/labstack/echo/v4"

	"roombook/internal/controllers"
	"roombook/internal/entities"
	"roombook/pkg/middleware"
)

func runNotificationRouter(secureGroup *echo.Group, notificationCtrl *controllers.NotificationController, authMW *middleware.AuthMiddleware) {
	adminOnly := authMW.RequireRoles(entities.RoleAdmin)

	secureGroup.GET("/notifications", notificationCtrl.GetMyNotifications)
	secureGroup.GET("/notifications/unread-count", notificationCtrl.GetUnreadCount)
	secureGroup.GET("/notifications/types", notificationCtrl.GetNotificationTypes)
	secureGroup.PUT("/notifications/read-all", notificationCtrl.MarkAllRead)
	secureGroup.PUT("/notifications/:id/read", notificationCtrl.MarkRead)
	secureGroup.PUT("/notifications/:id/unread", notificationCtrl.MarkUnread)
	secureGroup.DELETE("/notifications/:id", notificationCtrl.DeleteNotification)

	secureGroup.GET("/notifications/admin", notificationCtrl.GetAllNotifications, adminOnly)
	secureGroup.POST("/notifications/admin", notificationCtrl.Broadcast, adminOnly)
	secureGroup.PUT("/notifications/admin/read-all", notificationCtrl.MarkAllReadAdmin, adminOnly)
	secureGroup.DELETE("/notifications/admin/:id", notificationCtrl.HardDeleteNotification, adminOnly)
}
