package emailjs

import (
	"go.uber.org/zap"

	"nexadev.com/landing-web/internal/contact"
)

func (c *Client) fakeSend(sub contact.Submission) error {
	logger := zap.NewNop()
	if c != nil && c.logger != nil {
		logger = c.logger
	}
	logger.Warn("emailjs not configured; submission accepted without delivery",
		zap.String("submission_id", sub.ID),
		zap.String("locale", sub.Locale.String()),
		zap.Int("message_bytes", len(sub.Draft.Message)),
	)
	return nil
}
