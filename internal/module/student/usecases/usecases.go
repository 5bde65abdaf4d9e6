package usecases

import (
	"context"
	"fmt"
	"time"

	"booking-portal/internal/module/student/models/entity"
	"booking-portal/internal/module/student/models/request"
	"booking-portal/internal/module/student/models/response"
	"booking-portal/internal/module/student/repositories"
	"booking-portal/internal/pkg/errors"
	"booking-portal/internal/pkg/mailer"
	"booking-portal/internal/pkg/retry"
	"booking-portal/internal/pkg/scheduler"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const defaultSubject = "ใบเสร็จรับเงิน/ใบกำกับภาษี"

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type usecase struct {
	repo   repositories.Repositories
	log    *otelzap.Logger
	tasks  Enqueuer
	mail   mailer.Mailer
	policy retry.Policy
}

type Usecase interface {
	// http
	ListStudents(ctx context.Context) (response.Students, error)
	StudentsByRef(ctx context.Context, refID string) (response.Students, error)
	GetStudent(ctx context.Context, id string) (response.Student, error)
	UpdateStudent(ctx context.Context, id string, payload *request.UpdateStudent) (response.Student, error)
	QueueReceiptEmail(ctx context.Context, id string, payload *request.SendEmail, attachment *mailer.Attachment) (response.EmailQueued, error)
	// worker
	SendReceiptEmail(ctx context.Context, payload *request.ReceiptEmailTask) error
}

func New(repo repositories.Repositories, log *otelzap.Logger, tasks Enqueuer, mail mailer.Mailer, policy retry.Policy) Usecase {
	return &usecase{
		repo:   repo,
		log:    log,
		tasks:  tasks,
		mail:   mail,
		policy: policy,
	}
}

func (u *usecase) ListStudents(ctx context.Context) (response.Students, error) {
	students, err := retry.Do(ctx, u.policy, u.log, "list students", u.repo.ListStudents)
	if err != nil {
		return response.Students{}, err
	}
	return response.Students{Success: true, Students: students}, nil
}

func (u *usecase) StudentsByRef(ctx context.Context, refID string) (response.Students, error) {
	if refID == "" {
		return response.Students{}, errors.BadRequest("refid is required")
	}

	students, err := retry.Do(ctx, u.policy, u.log, "list students by ref", func(ctx context.Context) ([]entity.Student, error) {
		return u.repo.ListStudentsByRef(ctx, refID)
	})
	if err != nil {
		return response.Students{}, err
	}
	return response.Students{Success: true, Students: students}, nil
}

func (u *usecase) GetStudent(ctx context.Context, id string) (response.Student, error) {
	student, err := retry.Do(ctx, u.policy, u.log, "find student", func(ctx context.Context) (entity.Student, error) {
		return u.repo.FindStudent(ctx, id)
	})
	if err != nil {
		return response.Student{}, err
	}
	return response.Student{Success: true, Student: student}, nil
}

// UpdateStudent saves the self-service form and always marks the record
// as updated by the student.
func (u *usecase) UpdateStudent(ctx context.Context, id string, payload *request.UpdateStudent) (response.Student, error) {
	fields := map[string]interface{}{repositories.FieldIsUpdate: true}
	setString(fields, repositories.FieldNickname, payload.Nickname)
	setString(fields, repositories.FieldUserEmail, payload.UserEmail)
	setString(fields, repositories.FieldCompanyName, payload.CompanyName)
	setString(fields, repositories.FieldTaxpayerName, payload.TaxpayerName)
	setString(fields, repositories.FieldTaxID, payload.TaxID)
	setString(fields, repositories.FieldTaxAddress, payload.TaxAddress)
	setString(fields, repositories.FieldBillEmail, payload.BillEmail)
	setString(fields, repositories.FieldRemark, payload.Remark)

	student, err := u.repo.UpdateStudent(ctx, id, fields)
	if err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error update student %s: %v", id, err))
		return response.Student{}, err
	}
	return response.Student{Success: true, Student: student, Message: "บันทึกข้อมูลสำเร็จ"}, nil
}

// QueueReceiptEmail stores the billing fields, marks the email pending and
// hands the sending to the worker.
func (u *usecase) QueueReceiptEmail(ctx context.Context, id string, payload *request.SendEmail, attachment *mailer.Attachment) (response.EmailQueued, error) {
	fields := map[string]interface{}{
		repositories.FieldBillEmail:   payload.BillEmail,
		repositories.FieldIsUpdate:    true,
		repositories.FieldIsEmailSent: string(entity.EmailPending),
	}
	setNonEmpty(fields, repositories.FieldFullName, payload.FullName)
	setNonEmpty(fields, repositories.FieldNameClass, payload.NameClass)
	setNonEmpty(fields, repositories.FieldCompanyName, payload.CompanyName)
	setNonEmpty(fields, repositories.FieldTaxID, payload.TaxID)
	setNonEmpty(fields, repositories.FieldTaxAddress, payload.TaxAddress)

	if _, err := u.repo.UpdateStudent(ctx, id, fields); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error update student %s before email: %v", id, err))
		return response.EmailQueued{}, err
	}

	subject := payload.Subject
	if subject == "" {
		subject = defaultSubject
	}
	taskPayload := request.ReceiptEmailTask{
		RecordID:  id,
		To:        payload.BillEmail,
		Subject:   subject,
		Header:    payload.Header,
		Recipient: payload.Recipient,
		Bold:      payload.Bold,
		Detail:    payload.Detail,
		Footer:    payload.Footer,
	}
	if attachment != nil && len(attachment.Content) > 0 {
		taskPayload.AttachmentName = attachment.Filename
		taskPayload.Attachment = attachment.Content
	}

	raw, err := json.Marshal(taskPayload)
	if err != nil {
		return response.EmailQueued{}, errors.Wrap(errors.KindServerError, err, "error encode email task")
	}

	info, err := u.tasks.EnqueueContext(ctx, asynq.NewTask(scheduler.TypeSendReceiptEmail, raw),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error enqueue receipt email for %s: %v", id, err))
		u.markEmail(ctx, id, entity.EmailFail)
		return response.EmailQueued{}, errors.Wrap(errors.KindServerError, err, "error queue email")
	}

	return response.EmailQueued{
		Success: true,
		Message: "กำลังส่งอีเมล",
		TaskID:  info.ID,
	}, nil
}

// SendReceiptEmail renders and sends one receipt, then records the outcome
// on the student. A failed send is returned so the worker retries it.
func (u *usecase) SendReceiptEmail(ctx context.Context, payload *request.ReceiptEmailTask) error {
	html, err := mailer.RenderReceipt(mailer.Receipt{
		Header:    payload.Header,
		Recipient: payload.Recipient,
		Bold:      payload.Bold,
		Detail:    payload.Detail,
		Footer:    payload.Footer,
	})
	if err != nil {
		u.markEmail(ctx, payload.RecordID, entity.EmailFail)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	mail := mailer.Mail{To: payload.To, Subject: payload.Subject, HTML: html}
	if len(payload.Attachment) > 0 {
		mail.Attachment = &mailer.Attachment{Filename: payload.AttachmentName, Content: payload.Attachment}
	}

	if err := u.mail.Send(ctx, mail); err != nil {
		u.log.Ctx(ctx).Error(fmt.Sprintf("error send receipt email for %s: %v", payload.RecordID, err))
		u.markEmail(ctx, payload.RecordID, entity.EmailFail)
		if !errors.IsRetryable(err) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}

	u.markEmail(ctx, payload.RecordID, entity.EmailSuccess)
	return nil
}

// markEmail is best effort, a failure is only logged.
func (u *usecase) markEmail(ctx context.Context, id string, status entity.EmailStatus) {
	_, err := u.repo.UpdateStudent(ctx, id, map[string]interface{}{repositories.FieldIsEmailSent: string(status)})
	if err != nil {
		u.log.Ctx(ctx).Warn(fmt.Sprintf("error set is_email_sent=%s on %s: %v", status, id, err))
	}
}

func setString(fields map[string]interface{}, name string, v *string) {
	if v != nil {
		fields[name] = *v
	}
}

func setNonEmpty(fields map[string]interface{}, name, v string) {
	if v != "" {
		fields[name] = v
	}
}
