// Package services содержит отправку приветственных писем: воркер получает
// задания из очереди, рендерит HTML-шаблон и отправляет письмо по SMTP.
package services

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/olasslabs/olass-backend/internal/lib/sl"
	"github.com/olasslabs/olass-backend/internal/lib/smtp"
	"github.com/olasslabs/olass-backend/internal/models"
)

const onboardingSubject = "Welcome to olass!"

var onboardingTemplate = template.Must(template.New("onboarding").Parse(`<html>
<body>
  <h1>Welcome to olass!</h1>
  <p>Thanks for joining. Your salary comparison results are waiting for you.</p>
  <p><a href="{{.UnsubscribeLink}}">Unsubscribe</a></p>
</body>
</html>`))

// SenderService реализует отправку приветственных писем.
type SenderService struct {
	transport       smtp.TransportInterface
	unsubscribeLink string
	log             *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, unsubscribeLink string, log *slog.Logger) *SenderService {
	return &SenderService{
		transport:       transport,
		unsubscribeLink: unsubscribeLink,
		log:             log,
	}
}

// SendOnboardingEmail обрабатывает одно задание из очереди рассылки.
func (s *SenderService) SendOnboardingEmail(body []byte) error {
	var recipient models.OnboardingRecipient
	if err := json.Unmarshal(body, &recipient); err != nil {
		s.log.Error("failed to unmarshal onboarding task", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	var html strings.Builder
	if err := onboardingTemplate.Execute(&html, map[string]string{
		"UnsubscribeLink": s.unsubscribeLink,
	}); err != nil {
		s.log.Error("failed to render onboarding template", sl.Err(err))
		return err
	}

	return s.sendEmail([]string{recipient.Email}, onboardingSubject, html.String())
}

func (s *SenderService) sendEmail(to []string, subject, htmlBody string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	s.log.Info("sent onboarding email", slog.String("to", strings.Join(to, ";")))
	return nil
}
