package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"roombook/internal/controllers"
	"roombook/internal/repositories"
	"roombook/internal/services"
	"roombook/pkg/config"
	"roombook/pkg/filestorage"
	"roombook/pkg/middleware"
	"roombook/pkg/service"
)

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.Config,
) {
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Server.UploadsDir)
	if err != nil {
		logger.Fatal("failed to initialize file storage", zap.Error(err))
	}
	roomRepo := repositories.NewRoomRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	bookingRepo := repositories.NewBookingRepository(dbConn, logger)
	notificationRepo := repositories.NewNotificationRepository(dbConn, logger)
	userRepo := repositories.NewUserRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	roomService := services.NewRoomService(dbConn, roomRepo, fileStorage, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, fileStorage, logger)
	bookingService := services.NewBookingService(dbConn, bookingRepo, roomRepo, equipmentRepo, notificationRepo, logger)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, cacheRepo, logger)
	userService := services.NewUserService(userRepo, bookingRepo, logger)
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, logger)

	roomCtrl := controllers.NewRoomController(roomService, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)
	bookingCtrl := controllers.NewBookingController(bookingService, logger)
	notificationCtrl := controllers.NewNotificationController(notificationService, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	authCtrl := controllers.NewAuthController(authService, logger)

	api := e.Group("/api")
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authCtrl)
	runRoomRouter(secureGroup, roomCtrl, authMW)
	runEquipmentRouter(secureGroup, equipmentCtrl, authMW)
	runBookingRouter(secureGroup, bookingCtrl, equipmentCtrl)
	runNotificationRouter(secureGroup, notificationCtrl, authMW)
	runUserRouter(secureGroup, userCtrl, authMW)
}
