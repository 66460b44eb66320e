package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"path/filepath"

	"github.com/academix/academix-api/internal/config"
)

type EmailService struct {
	smtpHost      string
	smtpPort      string
	smtpUsername  string
	smtpPassword  string
	fromEmail     string
	fromName      string
	appURL        string
	templatesPath string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		smtpHost:      cfg.SMTPHost,
		smtpPort:      cfg.SMTPPort,
		smtpUsername:  cfg.SMTPUsername,
		smtpPassword:  cfg.SMTPPassword,
		fromEmail:     cfg.SMTPFromEmail,
		fromName:      cfg.SMTPFromName,
		appURL:        cfg.AppURL,
		templatesPath: "templates/emails",
	}
}

// SendEmail sends an email using SMTP
func (s *EmailService) SendEmail(to, subject, body string) error {
	// SMTP authentication
	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	// Construct email message
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", from, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)

	// Local development runs without SMTP authentication
	if s.smtpUsername == "" && s.smtpPassword == "" {
		conn, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		if err := conn.Mail(s.fromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err := conn.Rcpt(to); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := conn.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write(msg); err != nil {
			return fmt.Errorf("failed to write message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return conn.Quit()
	}

	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendPasswordResetEmail sends a password reset link to an admin user
func (s *EmailService) SendPasswordResetEmail(to, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password/%s", s.appURL, token)

	body, err := s.renderTemplate("reset.html", map[string]interface{}{
		"ResetURL": resetURL,
		"AppURL":   s.appURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.SendEmail(to, "Password Reset - Academix", body)
}

// SendStudentWelcomeEmail notifies a newly registered student
func (s *EmailService) SendStudentWelcomeEmail(to, studentNumber string) error {
	body, err := s.renderTemplate("student_welcome.html", map[string]interface{}{
		"StudentNumber": studentNumber,
		"AppURL":        s.appURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.SendEmail(to, "Welcome to Academix", body)
}

// renderTemplate loads and renders an email template
func (s *EmailService) renderTemplate(templateName string, data map[string]interface{}) (string, error) {
	templatePath := filepath.Join(s.templatesPath, templateName)

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}
