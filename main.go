package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lunchbox/config"
	"lunchbox/cron"
	"lunchbox/database"
	memoryRepo "lunchbox/database/repository/memory"
	notificationRepo "lunchbox/database/repository/notification"
	reminderRepo "lunchbox/database/repository/reminder"
	settingsRepo "lunchbox/database/repository/settings"
	userRepo "lunchbox/database/repository/user"
	"lunchbox/handlers"
	"lunchbox/middleware"
	"lunchbox/models"
	"lunchbox/routes"
	"lunchbox/services/channels"
	"lunchbox/services/notification"
	"lunchbox/services/reminder"
	"lunchbox/services/settings"
	"lunchbox/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stores struct {
	notifications notificationRepo.NotificationRepository
	users         userRepo.UserRepository
	settings      settingsRepo.SettingsRepository
	claimer       reminderRepo.MarkerClaimer
}

func buildStores(logger *zap.Logger) stores {
	if config.AppConfig.StorageDriver == "memory" {
		logger.Warn("main: using in-memory storage, data is lost on restart")
		return stores{
			notifications: memoryRepo.NewNotificationStore(),
			users:         memoryRepo.NewUserStore(),
			settings:      memoryRepo.NewSettingsStore(models.Settings{}),
			claimer:       memoryRepo.NewMarkerStore(),
		}
	}

	database.InitDB()
	s := stores{
		notifications: notificationRepo.NewMongoNotificationRepo(),
		users:         userRepo.NewMongoUserRepo(),
		settings:      settingsRepo.NewMongoSettingsRepo(),
		claimer:       reminderRepo.NewMongoMarkerClaimer(),
	}
	if config.AppConfig.ReminderDedup == "redis" {
		if client := utils.GetCacheClient(); client != nil {
			s.claimer = reminderRepo.NewRedisLockClaimer(client)
		} else {
			logger.Warn("main: REMINDER_DEDUP=redis but Redis is unavailable, using Mongo markers")
		}
	}
	return s
}

// buildPushSender returns nil when push is not configured.
func buildPushSender(ctx context.Context, logger *zap.Logger) channels.PushSender {
	path := config.AppConfig.FirebaseCredentialsFile
	if path == "" {
		logger.Info("main: push disabled, FIREBASE_CREDENTIALS_FILE not set")
		return nil
	}
	client, err := utils.NewMessagingClient(ctx, path)
	if err != nil {
		logger.Error("main: push disabled", zap.Error(err))
		return nil
	}
	return channels.NewFCMPushSender(client)
}

func buildEmailSender(logger *zap.Logger) channels.EmailSender {
	cfg := config.AppConfig
	switch cfg.EmailProvider {
	case "smtp":
		return channels.NewSMTPEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	case "graph":
		tokens := channels.NewGraphTokenCache(cfg.GraphTenantID, cfg.GraphClientID, cfg.GraphSecret)
		return channels.NewGraphEmailSender(tokens, cfg.EmailFrom)
	case "", "none":
		return nil
	default:
		logger.Warn("main: unknown EMAIL_PROVIDER, email disabled", zap.String("provider", cfg.EmailProvider))
		return nil
	}
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.AppConfig.JWTSecret == "" {
		logger.Fatal("main: JWT_SECRET must be set")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := utils.InitCache(); err != nil {
		logger.Warn("main: Redis unavailable", zap.Error(err))
	}

	st := buildStores(logger)
	loc := config.Location()

	dispatcher := &notification.Dispatcher{
		Notifications: st.notifications,
		Users:         st.users,
		Push:          buildPushSender(ctx, logger),
		Email:         buildEmailSender(logger),
		Logger:        logger.Named("dispatcher"),
		SendTimeout:   config.AppConfig.ChannelSendTimeout,
		Concurrency:   config.AppConfig.DispatchConcurrency,
	}

	notificationService, err := notification.NewDefaultNotificationService(
		st.notifications, st.users, dispatcher, config.AppConfig.RetentionDays, logger.Named("notifications"))
	if err != nil {
		logger.Fatal("main: failed to build notification service", zap.Error(err))
	}

	settingsService := settings.NewDefaultSettingsService(st.settings, models.Settings{
		MenuUpdateReminderTime: config.AppConfig.MenuUpdateReminderTime,
		OrderReminderTime:      config.AppConfig.OrderReminderTime,
	}, logger.Named("settings"))

	gate := &reminder.Gate{
		Notifications: st.notifications,
		Claimer:       st.claimer,
		Settings:      settingsService,
		Dispatcher:    dispatcher,
		Location:      loc,
		Logger:        logger.Named("reminder"),
	}

	var worker *cron.Worker
	if config.AppConfig.SchedulerEnabled {
		if utils.GetCacheClient() == nil {
			logger.Warn("main: scheduler disabled, Redis is required for the task queue")
		} else if worker, err = cron.NewWorker(gate, notificationService, loc, logger.Named("worker")); err != nil {
			logger.Error("main: scheduler disabled", zap.Error(err))
			worker = nil
		} else {
			worker.Start()
		}
	}

	utils.StartHealthMonitor(ctx, config.AppConfig.StorageDriver, utils.GetCacheClient(), database.MongoClient)

	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewNotificationHandler(notificationService),
		handlers.NewSettingsHandler(settingsService),
		handlers.NewSchedulerHandler(gate, notificationService),
		handlers.NewEventsHandler(notification.NewEventNotifier(dispatcher, logger.Named("events"))),
		config.AppConfig.InternalToken,
	)
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Warn("main: failed to close MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
