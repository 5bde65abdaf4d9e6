package mailer

import (
	"context"
	stderrors "errors"
	"io"
	"net/textproto"
	"regexp"
	"strconv"
	"strings"

	"booking-portal/config"
	"booking-portal/internal/pkg/errors"

	"gopkg.in/gomail.v2"
)

type Attachment struct {
	Filename string
	Content  []byte
}

type Mail struct {
	To         string
	Subject    string
	HTML       string
	Attachment *Attachment
}

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpMailer struct {
	sender   Sender
	from     string
	fromName string
}

func New(cfg *config.SMTPConfig) Mailer {
	return NewWithSender(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.Username, cfg.FromName)
}

func NewWithSender(sender Sender, from, fromName string) Mailer {
	return &smtpMailer{sender: sender, from: from, fromName: fromName}
}

func (m *smtpMailer) Send(ctx context.Context, mail Mail) error {
	if mail.To == "" {
		return errors.BadRequest("recipient is required")
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/html", mail.HTML)

	if a := mail.Attachment; a != nil && len(a.Content) > 0 {
		content := a.Content
		msg.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.sender.DialAndSend(msg); err != nil {
		return classifySendError(err)
	}
	return nil
}

// gomail flattens errors from MAIL/RCPT/DATA into its own message, so the
// reply code is read back from the text.
var replyCodePattern = regexp.MustCompile(`could not send email \d+: ([2-5]\d\d)[ -]`)

// classifySendError keeps transient SMTP failures retryable. Permanent
// replies (5xx) and malformed addresses are not.
func classifySendError(err error) error {
	code := 0
	var tpErr *textproto.Error
	if stderrors.As(err, &tpErr) {
		code = tpErr.Code
	} else if m := replyCodePattern.FindStringSubmatch(err.Error()); m != nil {
		code, _ = strconv.Atoi(m[1])
	}

	switch {
	case code == 530 || code == 534 || code == 535:
		return errors.Wrap(errors.KindForbidden, err, "smtp login rejected").
			WithDetails("check GMAIL_USER and GMAIL_APP_PASSWORD, Gmail needs an app password")
	case code >= 500:
		return errors.Wrap(errors.KindValidation, err, "email rejected by smtp server")
	case strings.Contains(err.Error(), "gomail: invalid address"):
		return errors.Wrap(errors.KindValidation, err, "invalid email address")
	}
	return errors.Wrap(errors.KindServerError, err, "error send email")
}
