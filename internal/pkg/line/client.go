package line

import (
	"context"
	"net/http"

	"booking-portal/config"
	"booking-portal/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Client is the subset of the Messaging API the portal uses.
type Client interface {
	Reply(ctx context.Context, replyToken string, messages ...messaging_api.MessageInterface) error
	Push(ctx context.Context, to string, messages ...messaging_api.MessageInterface) error
}

type client struct {
	api *messaging_api.MessagingApiAPI
}

func NewClient(cfg *config.LineConfig, httpClient *http.Client) (Client, error) {
	opts := []messaging_api.MessagingApiAPIOption{}
	if cfg.Endpoint != "" {
		opts = append(opts, messaging_api.WithEndpoint(cfg.Endpoint))
	}
	if httpClient != nil {
		opts = append(opts, messaging_api.WithHTTPClient(httpClient))
	}

	api, err := messaging_api.NewMessagingApiAPI(cfg.ChannelAccessToken, opts...)
	if err != nil {
		return nil, err
	}
	return &client{api: api}, nil
}

func (c *client) Reply(ctx context.Context, replyToken string, messages ...messaging_api.MessageInterface) error {
	_, err := c.api.WithContext(ctx).ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   messages,
	})
	if err != nil {
		return errors.Wrap(errors.KindServerError, err, "error reply line message")
	}
	return nil
}

var retryKeySpace = uuid.MustParse("6f1d7c1e-2b5a-4a4e-9a57-3c0f8e2d1b90")

type retryKeyCtx struct{}

// WithRetryKey marks every Push made with ctx as one logical send. Pushes
// that share key and recipient carry the same X-Line-Retry-Key, so LINE
// delivers them once.
func WithRetryKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, retryKeyCtx{}, key)
}

// RetryKey returns the X-Line-Retry-Key for a push to recipient. Without a
// key on ctx every call gets a fresh one.
func RetryKey(ctx context.Context, to string) string {
	key, _ := ctx.Value(retryKeyCtx{}).(string)
	if key == "" {
		return uuid.NewString()
	}
	return uuid.NewSHA1(retryKeySpace, []byte(key+"|"+to)).String()
}

// Push answers nil for a 409, which LINE returns when the retry key was
// already accepted.
func (c *client) Push(ctx context.Context, to string, messages ...messaging_api.MessageInterface) error {
	resp, _, err := c.api.WithContext(ctx).PushMessageWithHttpInfo(&messaging_api.PushMessageRequest{
		To:       to,
		Messages: messages,
	}, RetryKey(ctx, to))
	if resp != nil && resp.StatusCode == http.StatusConflict {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.KindServerError, err, "error push line message")
	}
	return nil
}

func Text(text string) messaging_api.MessageInterface {
	return &messaging_api.TextMessage{Text: text}
}

func Image(url string) messaging_api.MessageInterface {
	return &messaging_api.ImageMessage{
		OriginalContentUrl: url,
		PreviewImageUrl:    url,
	}
}

type PostbackButton struct {
	Label string
	Data  string
}

// Buttons builds a buttons template. LINE caps the text at 160 chars when
// a title is set, so long text goes in a separate Text message.
func Buttons(altText, title, text string, buttons ...PostbackButton) messaging_api.MessageInterface {
	actions := make([]messaging_api.ActionInterface, 0, len(buttons))
	for _, b := range buttons {
		actions = append(actions, &messaging_api.PostbackAction{
			Label:       b.Label,
			Data:        b.Data,
			DisplayText: b.Label,
		})
	}
	return &messaging_api.TemplateMessage{
		AltText: altText,
		Template: &messaging_api.ButtonsTemplate{
			Title:   title,
			Text:    text,
			Actions: actions,
		},
	}
}
