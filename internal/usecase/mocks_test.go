package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/logichealth/marketing-api/internal/infra/integration/brevo"
	"github.com/logichealth/marketing-api/internal/infra/integration/hubspot"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Append(ctx context.Context, anonymousID string, userID *string, eventName, source string, properties map[string]any) error {
	args := m.Called(ctx, anonymousID, userID, eventName, source, properties)
	return args.Error(0)
}

type MockVisitorIdentityRepository struct {
	mock.Mock
}

func (m *MockVisitorIdentityRepository) Link(ctx context.Context, anonymousID, crmContactID, email string) error {
	args := m.Called(ctx, anonymousID, crmContactID, email)
	return args.Error(0)
}

type MockCRMGateway struct {
	mock.Mock
}

func (m *MockCRMGateway) UpsertContact(ctx context.Context, input hubspot.ContactInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

type MockMarketingGateway struct {
	mock.Mock
}

func (m *MockMarketingGateway) SyncContact(ctx context.Context, input brevo.ContactInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) SendApplicationNotice(fullName, email, roleName string) error {
	args := m.Called(fullName, email, roleName)
	return args.Error(0)
}
