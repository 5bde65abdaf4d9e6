package router

import (
	"net/http"

	adminhandler "booking-portal/internal/module/admin/handler"
	bookinghandler "booking-portal/internal/module/booking/handler"
	linehandler "booking-portal/internal/module/line/handler"
	studenthandler "booking-portal/internal/module/student/handler"
	"booking-portal/internal/pkg/middleware"
	"booking-portal/internal/pkg/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

func Initialize(
	app *fiber.App,
	handlerBooking *bookinghandler.BookingHandler,
	handlerLine *linehandler.LineHandler,
	handlerStudent *studenthandler.StudentHandler,
	handlerAdmin *adminhandler.AdminHandler,
	m *middleware.Middleware,
	monitoring http.Handler,
) *fiber.App {

	// health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("OK")
	})

	Api := app.Group("/api")

	// public routes
	v1 := Api.Group("/v1")
	v1.Get("/availability", handlerBooking.CheckAvailability)
	v1.Post("/rooms/available", handlerBooking.AvailableRooms)
	v1.Post("/bookings", handlerBooking.CreateBooking)

	v1.Get("/line-webhook", handlerLine.WebhookLiveness)
	v1.Post("/line-webhook", handlerLine.Webhook)

	v1.Get("/students/ref/:refid", handlerStudent.StudentsByRef)
	v1.Put("/students/:id", handlerStudent.UpdateStudent)

	v1.Post("/login", handlerAdmin.Login)
	v1.Post("/logout", handlerAdmin.Logout)

	// admin routes
	v1.Get("/line/users", m.RequireAdmin, handlerLine.ListUsers)
	v1.Post("/line/users", m.RequireAdmin, handlerLine.AddUser)
	v1.Get("/students", m.RequireAdmin, handlerStudent.ListStudents)
	v1.Get("/students/:id", m.RequireAdmin, handlerStudent.GetStudent)
	v1.Post("/students/:id/email", m.RequireAdmin, handlerStudent.SendEmail)

	if monitoring != nil {
		app.Use(scheduler.MonitoringRootPath, m.RequireAdmin, adaptor.HTTPHandler(monitoring))
	}

	return app

}
