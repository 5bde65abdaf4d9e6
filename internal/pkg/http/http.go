package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking-portal/internal/pkg/log"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.elastic.co/apm/module/apmfiber"
)

// BodyLimit covers multipart receipt uploads.
const BodyLimit = 10 * 1024 * 1024

func SetupHttpEngine() *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		BodyLimit:   BodyLimit,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(apmfiber.Middleware())

	return app
}

func StartHttpServer(app *fiber.App, port string) {
	logger := log.GetLogger()
	ctx := context.Background()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			logger.Ctx(ctx).Fatal("error start http server: " + err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Ctx(ctx).Info("shutting down http server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Ctx(ctx).Error("error shutdown http server: " + err.Error())
	}
}
