package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"salonhub/config"
	"salonhub/cron"
	"salonhub/database"
	"salonhub/database/repository"
	"salonhub/handlers"
	"salonhub/middleware"
	"salonhub/models"
	"salonhub/routes"
	"salonhub/services/booking"
	"salonhub/services/branch"
	"salonhub/services/catalog"
	"salonhub/services/invoice"
	"salonhub/services/notification"
	"salonhub/services/report"
	"salonhub/services/settings"
	"salonhub/services/staff"
	"salonhub/services/storage"
	"salonhub/services/tasks"
	"salonhub/services/user"
	"salonhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	loc := config.Location()
	models.SetDayLocation(loc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database.InitDB()
	cacheClient := utils.GetCacheClient()
	authClient := utils.GetAuthCacheClient()
	if err := utils.FirebaseInit(ctx); err != nil {
		logger.Fatal("main: firebase init failed", zap.Error(err))
	}
	store, err := storage.New(ctx)
	if err != nil {
		logger.Fatal("main: storage init failed", zap.Error(err))
	}

	var sealer *utils.Sealer
	if key := config.AppConfig.SettingsEncryptionKey; key != "" {
		if sealer, err = utils.NewSealer(key); err != nil {
			logger.Fatal("main: invalid SETTINGS_ENCRYPTION_KEY", zap.Error(err))
		}
	} else {
		logger.Warn("SETTINGS_ENCRYPTION_KEY not set; payment method secrets cannot be stored")
	}

	queueOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	queue := asynq.NewClient(queueOpt)
	defer queue.Close()

	// Repositories.
	repos := repository.NewMongoRepositories()
	cache := utils.NewRedisJSONCache(cacheClient)
	sessions := utils.NewRedisSessionStore(authClient)
	ttl := config.CacheTTL()

	// Services.
	settingsSvc := settings.NewSettingsService(repos.Settings, repos.PaymentMethods, cache, sealer, ttl, logger)
	staffSvc := staff.NewStaffService(repos.Staff, cache, ttl, logger)
	branchSvc := branch.NewBranchService(repos.Branches, cache, ttl, logger)
	cat := catalog.New(repos, cache, ttl, logger)

	broker := booking.NewBroker(repos.Bookings, logger)
	scheduler := tasks.NewBookingScheduler(queue, loc, settingsSvc.ReminderLead)
	bookingSvc := booking.NewBookingService(repos.Bookings, staffSvc, branchSvc, settingsSvc,
		booking.WithTasks(scheduler),
		booking.WithPublisher(broker),
		booking.WithLogger(logger))

	userSvc := &user.DefaultUserService{
		Repo:      repos.Users,
		Customers: repos.Customers,
		Identity:  user.NewFirebaseIdentity(utils.AuthClient),
		Sessions:  sessions,
		TokenTTL:  config.TokenTTL(),
		Logger:    logger,
	}

	var push notification.PushSender
	if utils.FCMClient != nil {
		push = utils.FCMClient
	}
	notifier, err := notification.NewDefaultNotificationService(
		repos.Users,
		settingsSvc,
		notification.NewSMTPSender(config.AppConfig.SMTPHost, config.AppConfig.SMTPPort, config.AppConfig.SMTPFrom),
		notification.NewSMSSender(config.AppConfig.SMSWebhookURL, config.AppConfig.SMSWebhookToken),
		push,
	)
	if err != nil {
		logger.Fatal("main: notification service", zap.Error(err))
	}

	invoiceSvc := invoice.NewInvoiceService(repos.Bookings, settingsSvc, store, config.AppConfig.Currency, config.AppConfig.TaxRate, logger)
	reportSvc := report.NewReportService(repos.Bookings, repos.Expenses, config.AppConfig.Currency)

	// Background work.
	go broker.Run(ctx)
	worker := cron.StartWorker(queueOpt, cron.NewTaskHandlers(repos.Bookings, notifier, loc, logger), logger)
	jobs := cron.NewJobs(reportSvc, staffSvc, logger)
	cronScheduler, err := cron.StartScheduler(ctx, jobs, config.AppConfig.StatusAuditSchedule, config.AppConfig.RatingsRefreshSchedule)
	if err != nil {
		logger.Fatal("main: invalid cron schedule", zap.Error(err))
	}
	utils.StartHealthMonitor(ctx, 30*time.Second, []*redis.Client{cacheClient, authClient}, database.MongoClient)

	hb := &handlers.HandlerBundle{
		Sessions: sessions,
		Users:    handlers.NewUserHandler(userSvc),
		Bookings: handlers.NewBookingHandler(bookingSvc),
		Calendar: handlers.NewCalendarHandler(bookingSvc, broker, settingsSvc),
		Invoices: handlers.NewInvoiceHandler(invoiceSvc),
		Settings: handlers.NewSettingsHandler(settingsSvc),
		Reports:  handlers.NewReportHandler(reportSvc),
		Storage:  handlers.NewStorageHandler(store),
		Cart:     handlers.NewCartHandler(cat.Cart),
		Feedback: &handlers.FeedbackHandler{Feedbacks: cat.Feedbacks},
		Staff:    handlers.NewStaffHandler(staffSvc),

		Branches:   handlers.NewCRUDHandler[models.Branch]("branches", branchSvc),
		Services:   handlers.NewCRUDHandler[models.Service]("services", cat.Services),
		Products:   handlers.NewCRUDHandler[models.Product]("products", cat.Products),
		Categories: handlers.NewCRUDHandler[models.Category]("categories", cat.Categories),
		Expenses:   handlers.NewCRUDHandler[models.Expense]("expenses", cat.Expenses),
		Feedbacks:  handlers.NewCRUDHandler[models.Feedback]("feedbacks", cat.Feedbacks),
		Customers:  handlers.NewCRUDHandler[models.Customer]("customers", cat.Customers),
		Roles:      handlers.NewCRUDHandler[models.Role]("roles", cat.Roles),

		ActiveBranches: &handlers.BranchListHandler{Branches: branchSvc},
	}

	router := routes.SetupRouter(hb,
		utils.ErrorHandler(),
		middleware.RequestLogger(logger),
		routes.CORS(config.AllowedOrigins()),
		middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin),
	)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + config.AppConfig.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	<-cronScheduler.Stop().Done()
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Warn("main: mongo disconnect", zap.Error(err))
	}
	_ = cacheClient.Close()
	_ = authClient.Close()
	logger.Info("main: server stopped gracefully")
}
