package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"roombook/internal/dto"
	"roombook/internal/services"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/utils"
)

type BookingController struct {
	bookingService *services.BookingService
	logger         *zap.Logger
}

func NewBookingController(bookingService *services.BookingService, logger *zap.Logger) *BookingController {
	return &BookingController{bookingService: bookingService, logger: logger}
}

func (c *BookingController) GetBookings(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.bookingService.GetBookings(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Bookings fetched", http.StatusOK, total)
}

func (c *BookingController) FindBooking(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.bookingService.FindBooking(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Booking found", http.StatusOK)
}

func (c *BookingController) CreateBooking(ctx echo.Context) error {
	var payload dto.CreateBookingDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	userID, _ := utils.GetUserIDFromCtx(ctx.Request().Context())
	res, err := c.bookingService.CreateBooking(ctx.Request().Context(), userID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Booking created", http.StatusCreated)
}

func (c *BookingController) CreateRecurringBooking(ctx echo.Context) error {
	var payload dto.CreateRecurringBookingDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	userID, _ := utils.GetUserIDFromCtx(ctx.Request().Context())
	res, err := c.bookingService.CreateRecurringBooking(ctx.Request().Context(), userID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	// Partial success is still a success; the per-occurrence results carry
	// the failures.
	code := http.StatusCreated
	if res.Created == 0 {
		code = http.StatusConflict
	}
	return utils.SuccessResponse(ctx, res, "Recurring booking processed", code)
}

func (c *BookingController) UpdateBooking(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateBookingDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	userID, _ := utils.GetUserIDFromCtx(ctx.Request().Context())
	res, err := c.bookingService.UpdateBooking(ctx.Request().Context(), userID, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Booking updated", http.StatusOK)
}

func (c *BookingController) DeleteBooking(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.bookingService.DeleteBooking(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Booking deleted", http.StatusOK)
}

var bookingReportHeaders = []interface{}{
	"ID", "Title", "Room", "Start", "End", "Attendees", "Organizer",
}

// ExportBookings streams the filtered booking list as an xlsx workbook.
func (c *BookingController) ExportBookings(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = false
	filter.Limit = utils.MaxLimit

	bookings, _, err := c.bookingService.GetBookings(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	f := excelize.NewFile()
	sheet := "Bookings"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &bookingReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "G1", style)

	for i, b := range bookings {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{b.ID, b.Title, b.Room.Name, b.StartTime, b.EndTime, b.Attendees, b.Organizer}
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "C", 30)
	f.SetColWidth(sheet, "D", "E", 20)
	f.SetColWidth(sheet, "G", "G", 25)

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
