package main

import (
	"context"
	"log"
	"time"

	"hotelbooking/config"
	"hotelbooking/jobs"
	"hotelbooking/metrics"
	"hotelbooking/repository"
	"hotelbooking/routes"
	"hotelbooking/services"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"
	"hotelbooking/validator"
)

// @title           Hotel Booking API
// @version         1.0
// @description     Đặt phòng khách sạn, hủy, trả phòng và trạng thái dọn phòng.
// @BasePath        /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := logger.NewDefaultLogger(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogDir != "" {
		fileLog, closer, err := logger.NewFileLogger(logger.ParseLevel(cfg.LogLevel), cfg.LogDir)
		if err != nil {
			log.Fatalf("Failed to open log dir: %v", err)
		}
		defer closer.Close()
		appLog = fileLog
	}

	if err := validator.RegisterCustomValidations(); err != nil {
		log.Fatalf("Failed to register validations: %v", err)
	}

	rangeMode, err := services.ParseRangeMode(cfg.RangeMode)
	if err != nil {
		log.Fatalf("Invalid BOOKING_RANGE_MODE: %v", err)
	}

	appMetrics := metrics.New()
	router, m, c := config.InitApp(appMetrics)
	defer c.Stop()

	var (
		store  repository.Store
		locker services.Locker
		cache  services.CalendarCache
	)
	if cfg.IsDemo() {
		mem := repository.NewMemoryStore()
		if err := services.SeedDemo(context.Background(), mem); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		store, locker, cache = mem, services.NewLocalLocker(), services.NewMemoryCalendarCache()
		appLog.Info("Chạy chế độ demo với dữ liệu in-memory, mật khẩu demo: %s", services.DemoPassword)
	} else {
		db, err := config.ConnectDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect db: %v", err)
		}
		rdb, err := config.ConnectRedis(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()

		store = repository.NewGormStore(db)
		locker = services.NewRedisLocker(rdb, 10*time.Second, appLog)
		cache = services.NewRedisCalendarCache(rdb, appLog)
	}

	var uploader services.PhotoUploader
	cld, err := config.ConnectCloudinary(cfg)
	if err != nil {
		log.Fatalf("Lỗi khi khởi tạo Cloudinary: %v", err)
	}
	if cld != nil {
		uploader = services.NewCloudinaryUploader(cld)
	}

	notifier := notification.NewMelodyService(m)
	housekeeping := services.NewHousekeeping(services.HousekeepingOptions{
		Store:    store,
		Notifier: notifier,
		Metrics:  appMetrics,
		Logger:   appLog,
	})
	facade := services.NewBookingFacade(services.BookingFacadeOptions{
		Store:        store,
		Ledger:       services.NewLedger(rangeMode),
		Housekeeping: housekeeping,
		Locker:       locker,
		Cache:        cache,
		Notifier:     notifier,
		Metrics:      appMetrics,
		Logger:       appLog,
	})
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL)

	if err := jobs.InitCronJobs(c, cfg.CheckoutCron, facade, appLog); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, routes.Dependencies{
		Tokens:       tokens,
		Auth:         services.NewAuthService(store, tokens, cfg.GoogleClientID, appLog),
		Hotels:       services.NewHotelService(store, uploader, appLog),
		Staff:        services.NewStaffService(store, appLog),
		Bookings:     facade,
		Housekeeping: housekeeping,
		Metrics:      appMetrics,
		Logger:       appLog,
	})

	log.Println("Server starting on port " + cfg.Port + "...")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
