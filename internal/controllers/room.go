package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"roombook/internal/dto"
	"roombook/internal/services"
	"roombook/pkg/config"
	apperrors "roombook/pkg/errors"
	"roombook/pkg/utils"
)

type RoomController struct {
	roomService *services.RoomService
	uploadCfg   config.UploadConfig
	logger      *zap.Logger
}

func NewRoomController(roomService *services.RoomService, logger *zap.Logger) *RoomController {
	return &RoomController{
		roomService: roomService,
		uploadCfg:   config.RoomImageConfig(),
		logger:      logger,
	}
}

func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"invalid id parameter",
			err,
			map[string]interface{}{"param": ctx.Param(name)},
		)
	}
	return id, nil
}

func (c *RoomController) GetRooms(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.roomService.GetRooms(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Rooms fetched", http.StatusOK, total)
}

func (c *RoomController) FindRoom(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.roomService.FindRoom(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Room found", http.StatusOK)
}

func (c *RoomController) CreateRoom(ctx echo.Context) error {
	var payload dto.CreateRoomDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.roomService.CreateRoom(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Room created", http.StatusCreated)
}

func (c *RoomController) UpdateRoom(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateRoomDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.roomService.UpdateRoom(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Room updated", http.StatusOK)
}

func (c *RoomController) DeleteRoom(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.roomService.DeleteRoom(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Room deleted", http.StatusOK)
}

func (c *RoomController) GetImageConfig(ctx echo.Context) error {
	return utils.SuccessResponse(ctx, c.uploadCfg, "Upload config", http.StatusOK)
}

func (c *RoomController) UploadImage(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	file, err := openValidatedImage(ctx, c.uploadCfg)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer file.Close()

	res, err := c.roomService.UploadImage(ctx.Request().Context(), id, file, file.Name, c.uploadCfg.PathPrefix)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Image uploaded", http.StatusOK)
}

func (c *RoomController) DeleteImage(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.roomService.DeleteImage(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Image deleted", http.StatusOK)
}
