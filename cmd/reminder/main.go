package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"roombook/internal/repositories"
	"roombook/internal/services"
	"roombook/pkg/config"
	"roombook/pkg/database/postgresql"
	applogger "roombook/pkg/logger"
	"roombook/pkg/mailer"
)

// One pass of the reminder job. Scheduled externally: the 24h pass hourly,
// the 1h pass every 15 minutes.
func main() {
	passType := flag.String("type", "", "reminder pass to run: 24h or 1h")
	flag.Parse()

	if *passType != "24h" && *passType != "1h" {
		log.Fatal("usage: reminder --type 24h|1h")
	}

	logger := applogger.NewLogger()
	cfg := config.New()

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	bookingRepo := repositories.NewBookingRepository(dbConn, logger)
	userRepo := repositories.NewUserRepository(dbConn, logger)
	notificationRepo := repositories.NewNotificationRepository(dbConn, logger)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)

	reminderService := services.NewReminderService(bookingRepo, userRepo, notificationRepo, smtpMailer, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var err error
	switch *passType {
	case "24h":
		err = reminderService.RunAdvancePass(ctx)
	case "1h":
		err = reminderService.RunImminentPass(ctx)
	}
	if err != nil {
		logger.Fatal("reminder pass failed", zap.String("type", *passType), zap.Error(err))
	}
}
