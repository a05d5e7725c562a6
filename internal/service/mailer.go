package service

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"genstory-server/internal/config"
	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"go.uber.org/zap"
)

// Compile-time check to ensure smtpMailer implements Mailer
var _ interfaces.Mailer = (*smtpMailer)(nil)

type smtpMailer struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewMailer создает отправителя писем верификации. В режиме MailSimulate
// письма не отправляются, а только логируются - удобно для локального
// запуска без SMTP-сервера.
func NewMailer(cfg *config.Config, logger *zap.Logger) interfaces.Mailer {
	return &smtpMailer{
		cfg:    cfg,
		logger: logger.Named("Mailer"),
	}
}

func (m *smtpMailer) SendVerificationMail(ctx context.Context, email, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", strings.TrimSuffix(m.cfg.FrontendURL, "/"), token)

	if m.cfg.MailSimulate {
		m.logger.Info("Mail simulation enabled, skipping SMTP delivery",
			zap.String("to", email), zap.String("verifyURL", verifyURL))
		return nil
	}

	body := strings.Join([]string{
		fmt.Sprintf("From: %s", m.cfg.SMTPFrom),
		fmt.Sprintf("To: %s", email),
		"Subject: Verify your email",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Welcome! Please verify your email address by opening the link below:",
		"",
		verifyURL,
		"",
		"The link is valid for a limited time and can be used once.",
	}, "\r\n")

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	var auth smtp.Auth
	if m.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.SMTPFrom, []string{email}, []byte(body)); err != nil {
		m.logger.Error("Failed to send verification mail", zap.Error(err), zap.String("to", email))
		return fmt.Errorf("%w: %v", models.ErrMailDeliveryFailed, err)
	}

	m.logger.Info("Verification mail sent", zap.String("to", email))
	return nil
}
