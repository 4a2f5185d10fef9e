package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// mailerConfig holds SMTP configuration for sending emails.
type mailerConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
	// ResetURL is prefixed to the token in the mail body when set.
	ResetURL string `env:"PASSWORD_RESET_URL"`
}

func (c mailerConfig) complete() bool {
	return c.Host != "" && c.Port != 0 && c.Username != "" && c.Password != "" && c.From != ""
}

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	config mailerConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

// ResetEmailData holds the data for the password reset template
type ResetEmailData struct {
	Token    string
	ResetURL string
}

// NewEmailService reads SMTP_* from the environment. A missing or partial
// configuration yields a service whose IsConfigured reports false.
func NewEmailService(logger *zap.Logger) *EmailService {
	cfg, err := env.ParseAs[mailerConfig]()
	if err != nil {
		logger.Warn("failed to parse SMTP environment", zap.Error(err))
	}

	s := &EmailService{config: cfg, logger: logger}
	if cfg.complete() {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

func (s *EmailService) IsConfigured() bool {
	return s.dialer != nil
}

const resetEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Password reset</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <p>You are receiving this email because a password reset was requested for your account.</p>
    {{if .ResetURL}}
    <p><a href="{{.ResetURL}}">Reset your password</a></p>
    {{end}}
    <p>Reset token: <code>{{.Token}}</code></p>
    <p>The token expires soon. If you did not request a reset, ignore this email.</p>
</body>
</html>`

var resetTmpl = template.Must(template.New("reset").Parse(resetEmailTemplate))

// SendPasswordReset mails the plaintext reset token to the account owner.
func (s *EmailService) SendPasswordReset(ctx context.Context, to, token string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service is not configured")
	}

	data := ResetEmailData{Token: token}
	if s.config.ResetURL != "" {
		data.ResetURL = s.config.ResetURL + "?resetToken=" + token
	}

	var body bytes.Buffer
	if err := resetTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password reset token")
	msg.SetBody("text/html", body.String())

	// gomail has no context support; bail out early if the request is gone
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}
