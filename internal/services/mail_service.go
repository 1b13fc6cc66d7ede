// services/mail_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"
)

type IMailService interface {
	// SendWelcomeMail delivers the one-time credential for an account that
	// was auto-created by a successful payment. Best effort; callers log and
	// move on when it fails.
	SendWelcomeMail(to, planName, tempPassword string) error
}

// SMTPConfig holds SMTP plus branding config.
type SMTPConfig struct {
	Host     string // e.g. "smtp.gmail.com"
	Port     int    // e.g. 587
	Username string
	Password string
	From     string // envelope from, e.g. "no-reply@yourapp.com"
	FromName string // display name

	AppName    string
	AppBaseURL string
}

type smtpMailService struct {
	cfg        SMTPConfig
	welcomeTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) IMailService {
	return &smtpMailService{
		cfg:        cfg,
		welcomeTpl: template.Must(template.New("welcome").Parse(welcomeHTMLTemplate)),
	}
}

type welcomeMailData struct {
	AppName      string
	AppBaseURL   string
	PlanName     string
	TempPassword string
	Year         int
}

const welcomeHTMLTemplate = `<!doctype html>
<html>
<head><meta charset="UTF-8"><title>Welcome to {{.AppName}}</title></head>
<body style="font-family:Arial,sans-serif;background:#0f172a;color:#e2e8f0;padding:24px;">
  <div style="max-width:560px;margin:0 auto;background:#1e293b;border-radius:12px;padding:32px;">
    <h1 style="color:#60a5fa;">Welcome to {{.AppName}}</h1>
    <p>Your payment went through and your <strong>{{.PlanName}}</strong> account is ready.</p>
    <p>Sign in with this temporary password and change it right away:</p>
    <p style="font-size:20px;letter-spacing:2px;background:#0f172a;padding:12px;border-radius:8px;">{{.TempPassword}}</p>
    <p><a href="{{.AppBaseURL}}" style="color:#60a5fa;">Open {{.AppName}}</a></p>
    <p style="color:#94a3b8;font-size:12px;">&copy; {{.Year}} {{.AppName}}</p>
  </div>
</body>
</html>`

func (s *smtpMailService) SendWelcomeMail(to, planName, tempPassword string) error {
	var html bytes.Buffer
	err := s.welcomeTpl.Execute(&html, welcomeMailData{
		AppName:      s.cfg.AppName,
		AppBaseURL:   s.cfg.AppBaseURL,
		PlanName:     planName,
		TempPassword: tempPassword,
		Year:         time.Now().Year(),
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Your %s account is ready", s.cfg.AppName)
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.Write(html.Bytes())

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg.Bytes())
}

// noopMailService is wired when SMTP is not configured (local dev, tests).
type noopMailService struct{}

func NewNoopMailService() IMailService {
	return noopMailService{}
}

func (noopMailService) SendWelcomeMail(to, planName, tempPassword string) error {
	return nil
}
