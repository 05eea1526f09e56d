package routes

import (
	"github.com/labstack/echo/v4"

	"roombook/internal/controllers"
)

func runBookingRouter(secureGroup *echo.Group, bookingCtrl *controllers.BookingController, equipmentCtrl *controllers.EquipmentController) {
	// Static segments before the :id route so "recurring" is never parsed
	// as an id.
	secureGroup.GET("/bookings", bookingCtrl.GetBookings)
	secureGroup.GET("/bookings/available-equipments", equipmentCtrl.GetAvailableEquipments)
	secureGroup.GET("/bookings/export", bookingCtrl.ExportBookings)
	secureGroup.GET("/bookings/:id", bookingCtrl.FindBooking)
	secureGroup.POST("/bookings", bookingCtrl.CreateBooking)
	secureGroup.POST("/bookings/recurring", bookingCtrl.CreateRecurringBooking)
	secureGroup.PUT("/bookings/:id", bookingCtrl.UpdateBooking)
	secureGroup.DELETE("/bookings/:id", bookingCtrl.DeleteBooking)
}
