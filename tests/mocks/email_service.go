package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, fullName, companyName string) error {
	args := m.Called(ctx, toEmail, fullName, companyName)
	return args.Error(0)
}

func (m *EmailService) SendStockAlertEmail(ctx context.Context, toEmail, fullName, materialName, projectName string, quantity float64, unit string) error {
	args := m.Called(ctx, toEmail, fullName, materialName, projectName, quantity, unit)
	return args.Error(0)
}
