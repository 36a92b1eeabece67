package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonpro-dashboard/config"
	"salonpro-dashboard/models"
	"salonpro-dashboard/routes"
	"salonpro-dashboard/services"
	"salonpro-dashboard/telemetry"
	"salonpro-dashboard/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.InitLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing := telemetry.Setup("salonpro-dashboard", cfg.OTelEndpoint, cfg.OTelInsecure)

	db, err := config.ConnectDB(cfg)
	if err != nil {
		zap.S().Fatalf("database: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		zap.S().Fatalf("migrate: %v", err)
	}

	backend := services.NewBackendClient(cfg.BackendURL, cfg.LoginUpstreamURL, cfg.BackendTimeout)

	var reminders *services.ReminderService
	if cfg.TwilioEnabled() {
		sender := services.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber, cfg.TwilioWhatsAppNumber)
		reminders = services.NewReminderService(db, backend, sender, utils.NewSealer(cfg.SessionSealKey), cfg.Location)
		reminders.WhatsApp = cfg.TwilioWhatsAppNumber != ""
	} else {
		zap.S().Info("Twilio not configured, reminders disabled")
	}

	scheduler := services.NewScheduler(db, reminders, cfg.Location)
	if err := scheduler.Start(cfg.ReminderCron, cfg.CleanupCron); err != nil {
		zap.S().Fatalf("scheduler: %v", err)
	}

	r := routes.SetupRouter(cfg, backend, reminders)
	if !cfg.IsProduction() {
		printRoutes(r)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewHandler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zap.S().Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.S().Errorf("server shutdown: %v", err)
	}
	scheduler.Stop()
	if err := shutdownTracing(ctx); err != nil {
		zap.S().Errorf("tracing shutdown: %v", err)
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
