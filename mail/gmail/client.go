package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/guilherme-santos/firstmeeting/internal/logging"
)

// Scope only allows sending messages on behalf of the user.
const Scope = gmail.GmailSendScope

const me = "me"

type Client struct {
	logger *slog.Logger
	opts   []option.ClientOption
}

func NewClient(logger *slog.Logger, opts ...option.ClientOption) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		logger: logger,
		opts:   opts,
	}
}

// Send submits raw, an RFC 822 message, and returns the Gmail message id.
func (c Client) Send(ctx context.Context, httpClient *http.Client, raw []byte) (string, error) {
	opts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, c.opts...)
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("gmail: creating service: %w", err)
	}

	msg, err := svc.Users.Messages.Send(me, &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gmail: sending message: %w", err)
	}
	c.logger.Debug("message accepted", slog.String("id", msg.Id))
	return msg.Id, nil
}
