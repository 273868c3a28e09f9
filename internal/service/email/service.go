package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resend/resend-go/v2"

	"buildsite-be/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, fullName, companyName string) error
	SendStockAlertEmail(ctx context.Context, toEmail, fullName, materialName, projectName string, quantity float64, unit string) error
}

type service struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	templatePath := "internal/service/templates/email"
	return &service{
		client:       client,
		config:       cfg,
		templatePath: templatePath,
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("BuildSite <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, fullName, companyName string) error {
	data := struct {
		Title   string
		Name    string
		Company string
		Link    string
	}{
		Title:   "Welcome to BuildSite",
		Name:    fullName,
		Company: companyName,
		Link:    fmt.Sprintf("http://%s/login", s.config.AppDomain),
	}
	return s.sendEmail(toEmail, "Welcome to BuildSite!", "welcome.html", data)
}

func (s *service) SendStockAlertEmail(ctx context.Context, toEmail, fullName, materialName, projectName string, quantity float64, unit string) error {
	data := struct {
		Title    string
		Name     string
		Material string
		Project  string
		Quantity float64
		Unit     string
		Link     string
	}{
		Title:    "Material Stock Alert",
		Name:     fullName,
		Material: materialName,
		Project:  projectName,
		Quantity: quantity,
		Unit:     unit,
		Link:     fmt.Sprintf("http://%s/materials", s.config.AppDomain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("Stock alert: %s", materialName), "stock_alert.html", data)
}
