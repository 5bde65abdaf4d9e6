package main

import (
	"context"
	"log"

	"booking-portal/config"
	adminhandler "booking-portal/internal/module/admin/handler"
	adminusecases "booking-portal/internal/module/admin/usecases"
	bookinghandler "booking-portal/internal/module/booking/handler"
	bookingrepositories "booking-portal/internal/module/booking/repositories"
	bookingusecases "booking-portal/internal/module/booking/usecases"
	linehandler "booking-portal/internal/module/line/handler"
	linerepositories "booking-portal/internal/module/line/repositories"
	lineusecases "booking-portal/internal/module/line/usecases"
	studenthandler "booking-portal/internal/module/student/handler"
	studentrepositories "booking-portal/internal/module/student/repositories"
	studentusecases "booking-portal/internal/module/student/usecases"
	"booking-portal/internal/pkg/airtable"
	"booking-portal/internal/pkg/database"
	"booking-portal/internal/pkg/helpers"
	"booking-portal/internal/pkg/http"
	"booking-portal/internal/pkg/httpclient"
	"booking-portal/internal/pkg/line"
	"booking-portal/internal/pkg/lock"
	log_internal "booking-portal/internal/pkg/log"
	"booking-portal/internal/pkg/mailer"
	"booking-portal/internal/pkg/messagestream"
	"booking-portal/internal/pkg/middleware"
	"booking-portal/internal/pkg/redis"
	"booking-portal/internal/pkg/retry"
	"booking-portal/internal/pkg/scheduler"
	"booking-portal/internal/pkg/session"
	router "booking-portal/internal/route"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

func main() {
	cfg := config.InitConfig()

	app, messageRouters, worker := initService(cfg)

	for _, router := range messageRouters {
		ctx := context.Background()
		go func(router *message.Router) {
			err := router.Run(ctx)
			if err != nil {
				log.Fatal(err)
			}
		}(router)
	}

	// start receipt email worker
	go worker()

	// start http server
	http.StartHttpServer(app, cfg.HttpServer.Port)
}

func initService(cfg *config.Config) (*fiber.App, []*message.Router, func()) {

	// init logger
	logZap := log_internal.SetupLogger()
	log_internal.Init(logZap)
	logger := log_internal.GetLogger()
	// init redis
	redis := redis.SetupClient(&cfg.Redis)
	// init http client
	cb := httpclient.InitCircuitBreaker(&cfg.HttpClient, cfg.HttpClient.Type)
	httpClient := httpclient.InitHttpClient(&cfg.HttpClient, cb)
	airtableClient := airtable.New(httpClient, &cfg.Airtable)

	ctx := context.Background()
	// init message stream
	amqp := messagestream.NewAmpq(&cfg.MessageStream)

	// Init Subscriber
	subscriber, err := amqp.NewSubscriber()
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create subscriber: " + err.Error())
	}

	// Init Publisher
	publisher, err := amqp.NewPublisher()
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create publisher: " + err.Error())
	}

	validator := helpers.NewValidator()
	policy := retry.FromConfig(&cfg.Retry)

	// booking
	bookingRepo := initBookingStore(cfg, airtableClient, lock.NewRedsync(redis, lock.DefaultOptions), logger)
	bookingUsecase := bookingusecases.New(bookingRepo, logger, publisher, cfg.Rooms, policy)
	bookingHandler := bookinghandler.BookingHandler{
		Log:       logger,
		Validator: validator,
		Usecase:   bookingUsecase,
	}

	// line, the Messaging API does not share the Airtable breaker
	lineClient, err := line.NewClient(&cfg.Line, httpClient.Client)
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create line client: " + err.Error())
	}
	lineUsecase := lineusecases.New(linerepositories.New(redis), bookingUsecase, lineClient, logger, &cfg.Line)
	lineHandler := linehandler.LineHandler{
		Log:       logger,
		Validator: validator,
		Usecase:   lineUsecase,
		Publish:   publisher,
		Cfg:       &cfg.Line,
	}

	// students
	sched := scheduler.Scheduler{Log: logger}
	studentUsecase := studentusecases.New(
		studentrepositories.New(airtableClient, &cfg.Airtable),
		logger,
		sched.InitClient(&cfg.Redis),
		mailer.New(&cfg.SMTP),
		policy,
	)
	studentHandler := studenthandler.StudentHandler{
		Log:       logger,
		Validator: validator,
		Usecase:   studentUsecase,
	}

	// admin
	sessions := session.New(&cfg.Admin)
	adminHandler := adminhandler.AdminHandler{
		Log:          logger,
		Validator:    validator,
		Usecase:      adminusecases.New(&cfg.Admin, sessions, logger),
		SecureCookie: cfg.Admin.SecureCookie,
	}
	middleware := middleware.Middleware{
		Log:     logger,
		Session: sessions,
	}

	var messageRouters []*message.Router

	bookingCreatedRouter, err := messagestream.NewRouter(publisher, messagestream.TopicPoisoned, "line_notify_handler", messagestream.TopicBookingCreated, subscriber, lineHandler.ConsumeBookingCreated)
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create booking_created router: " + err.Error())
	}

	messageRouters = append(messageRouters, bookingCreatedRouter)

	worker := func() {
		err := sched.StartHandler(&cfg.Redis,
			[]string{scheduler.TypeSendReceiptEmail},
			[]func(ctx context.Context, t *asynq.Task) error{studentHandler.ProcessReceiptEmail},
		)
		if err != nil {
			logger.Ctx(ctx).Fatal("failed to start task worker: " + err.Error())
		}
	}

	serverHttp := http.SetupHttpEngine()

	r := router.Initialize(serverHttp, &bookingHandler, &lineHandler, &studentHandler, &adminHandler, &middleware, sched.MonitoringHandler(&cfg.Redis))

	return r, messageRouters, worker

}

func initBookingStore(cfg *config.Config, client *airtable.Client, locker lock.Locker, logger *otelzap.Logger) bookingrepositories.Repositories {
	switch cfg.BookingStore {
	case bookingrepositories.DriverPostgres:
		return bookingrepositories.NewPostgres(database.GetConnection(&cfg.Database), logger)
	case bookingrepositories.DriverAirtable:
		return bookingrepositories.NewAirtable(client, &cfg.Airtable, locker, logger)
	default:
		logger.Ctx(context.Background()).Fatal("unknown BOOKING_STORE " + cfg.BookingStore)
		return nil
	}
}
