package usecase

import (
	"context"

	"github.com/logichealth/marketing-api/internal/infra/integration/brevo"
	"github.com/logichealth/marketing-api/internal/infra/integration/hubspot"
)

// CRMGateway is the idempotent contact upsert against the CRM.
// Implementations return hubspot.ErrNotConfigured when no credential is
// set; the orchestrator reports that as "skipped".
type CRMGateway interface {
	UpsertContact(ctx context.Context, input hubspot.ContactInput) (string, error)
}

// MarketingGateway syncs a contact into the nurture mailing list.
// brevo.ErrNotConfigured means the integration was never set up.
type MarketingGateway interface {
	SyncContact(ctx context.Context, input brevo.ContactInput) error
}

// NotificationSender tells the team about a new careers application.
type NotificationSender interface {
	SendApplicationNotice(fullName, email, roleName string) error
}
