package handler_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"booking-portal/internal/module/student/handler"
	"booking-portal/internal/module/student/mocks"
	"booking-portal/internal/module/student/models/entity"
	"booking-portal/internal/module/student/models/request"
	"booking-portal/internal/module/student/models/response"
	"booking-portal/internal/pkg/errors"
	"booking-portal/internal/pkg/helpers"
	log_internal "booking-portal/internal/pkg/log"
	"booking-portal/internal/pkg/mailer"
	"booking-portal/internal/pkg/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	h   *handler.StudentHandler
	ucm *mocks.Usecase
	app *fiber.App
)

func setup(t *testing.T) {
	ucm = mocks.NewUsecase(t)
	h = &handler.StudentHandler{
		Log:       log_internal.Setup(),
		Validator: helpers.NewValidator(),
		Usecase:   ucm,
	}
	app = fiber.New()
	app.Get("/api/v1/students", h.ListStudents)
	app.Get("/api/v1/students/ref/:refid", h.StudentsByRef)
	app.Get("/api/v1/students/:id", h.GetStudent)
	app.Put("/api/v1/students/:id", h.UpdateStudent)
	app.Post("/api/v1/students/:id/email", h.SendEmail)
}

func TestReadStudents(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		setup(t)
		ucm.On("ListStudents", mock.Anything).Return(response.Students{Success: true, Students: []entity.Student{{ID: "rec1"}}}, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/students", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("by ref", func(t *testing.T) {
		setup(t)
		ucm.On("StudentsByRef", mock.Anything, "A01").Return(response.Students{Success: true}, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/students/ref/A01", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("missing record", func(t *testing.T) {
		setup(t)
		ucm.On("GetStudent", mock.Anything, "recX").Return(response.Student{}, errors.NotFound("student not found")).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/students/recX", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateStudent(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		setup(t)
		ucm.On("UpdateStudent", mock.Anything, "rec1", mock.MatchedBy(func(req *request.UpdateStudent) bool {
			return req.Nickname != nil && *req.Nickname == "Chai" && req.Remark == nil
		})).Return(response.Student{Success: true}, nil).Once()

		req := httptest.NewRequest("PUT", "/api/v1/students/rec1", bytes.NewBufferString(`{"nickname":"Chai"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("invalid email", func(t *testing.T) {
		setup(t)

		req := httptest.NewRequest("PUT", "/api/v1/students/rec1", bytes.NewBufferString(`{"bill_email":"not-an-email"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func multipartBody(t *testing.T, fields map[string]string, file []byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile("attachment", "receipt.pdf")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestSendEmail(t *testing.T) {
	t.Run("queued with attachment", func(t *testing.T) {
		setup(t)
		ucm.On("QueueReceiptEmail", mock.Anything, "rec1",
			mock.MatchedBy(func(req *request.SendEmail) bool {
				return req.BillEmail == "bill@example.com" && req.Header == "ใบเสร็จ"
			}),
			mock.MatchedBy(func(a *mailer.Attachment) bool {
				return a != nil && a.Filename == "receipt.pdf" && string(a.Content) == "%PDF"
			}),
		).Return(response.EmailQueued{Success: true, TaskID: "task-1"}, nil).Once()

		body, contentType := multipartBody(t, map[string]string{
			"bill_email":   "bill@example.com",
			"email_header": "ใบเสร็จ",
		}, []byte("%PDF"))
		req := httptest.NewRequest("POST", "/api/v1/students/rec1/email", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	})

	t.Run("without attachment", func(t *testing.T) {
		setup(t)
		ucm.On("QueueReceiptEmail", mock.Anything, "rec1", mock.Anything, (*mailer.Attachment)(nil)).
			Return(response.EmailQueued{Success: true}, nil).Once()

		body, contentType := multipartBody(t, map[string]string{"bill_email": "bill@example.com"}, nil)
		req := httptest.NewRequest("POST", "/api/v1/students/rec1/email", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	})

	t.Run("missing bill email", func(t *testing.T) {
		setup(t)

		body, contentType := multipartBody(t, map[string]string{"email_header": "x"}, nil)
		req := httptest.NewRequest("POST", "/api/v1/students/rec1/email", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		raw, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(raw), "bill_email")
	})
}

func TestProcessReceiptEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		setup(t)
		ucm.On("SendReceiptEmail", ctx, &request.ReceiptEmailTask{RecordID: "rec1", To: "bill@example.com", Subject: "Receipt"}).Return(nil).Once()

		task := asynq.NewTask(scheduler.TypeSendReceiptEmail, []byte(`{"record_id":"rec1","to":"bill@example.com","subject":"Receipt"}`))
		assert.NoError(t, h.ProcessReceiptEmail(ctx, task))
	})

	t.Run("malformed payload skips retry", func(t *testing.T) {
		setup(t)

		err := h.ProcessReceiptEmail(ctx, asynq.NewTask(scheduler.TypeSendReceiptEmail, []byte("nope")))
		assert.True(t, stderrors.Is(err, asynq.SkipRetry))
	})

	t.Run("invalid payload skips retry", func(t *testing.T) {
		setup(t)

		err := h.ProcessReceiptEmail(ctx, asynq.NewTask(scheduler.TypeSendReceiptEmail, []byte(`{"record_id":"rec1"}`)))
		assert.True(t, stderrors.Is(err, asynq.SkipRetry))
	})

	t.Run("send failure is returned", func(t *testing.T) {
		setup(t)
		ucm.On("SendReceiptEmail", ctx, mock.Anything).Return(stderrors.New("smtp down")).Once()

		task := asynq.NewTask(scheduler.TypeSendReceiptEmail, []byte(`{"record_id":"rec1","to":"bill@example.com"}`))
		assert.Error(t, h.ProcessReceiptEmail(ctx, task))
	})
}
