package messaging

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const DefaultLinkBase = "whatsapp://send"

// Opener asks the host environment to open a deep link.
type Opener interface {
	Open(ctx context.Context, link string) error
}

// DeepLinkDispatcher turns an order message into a messaging deep link.
type DeepLinkDispatcher struct {
	base   string
	opener Opener
	logger *zap.Logger
}

func NewDeepLinkDispatcher(base string, opener Opener, logger *zap.Logger) *DeepLinkDispatcher {
	if base == "" {
		base = DefaultLinkBase
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeepLinkDispatcher{base: base, opener: opener, logger: logger}
}

// Dispatch is fire-and-forget; an opener failure is only logged.
func (d *DeepLinkDispatcher) Dispatch(ctx context.Context, contact, text string) {
	link := BuildLink(d.base, contact, text)
	if err := d.opener.Open(ctx, link); err != nil {
		d.logger.Warn("open deep link", zap.String("contact", contact), zap.Error(err))
	}
}

// BuildLink encodes contact and text as query parameters of base.
// Spaces become %20 rather than '+', which messaging apps render literally.
func BuildLink(base, contact, text string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "phone=" + encodeComponent(contact) + "&text=" + encodeComponent(text)
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
