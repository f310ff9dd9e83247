package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/logichealth/marketing-api/internal/entity"
	"github.com/logichealth/marketing-api/internal/infra/integration/brevo"
	"github.com/logichealth/marketing-api/internal/infra/integration/hubspot"
)

// SubmitLeadUseCase runs the lead intake pipeline: validate, durably
// record the submission, then best-effort sync to the CRM and the
// nurture list. The pre-sync event write is the only fatal step; every
// integration failure after it degrades the response instead of
// blocking the other integrations or losing the lead.
type SubmitLeadUseCase struct {
	Events     entity.EventRepositoryInterface
	Identities entity.VisitorIdentityRepositoryInterface
	CRM        CRMGateway
	Marketing  MarketingGateway
}

func NewSubmitLeadUseCase(
	events entity.EventRepositoryInterface,
	identities entity.VisitorIdentityRepositoryInterface,
	crm CRMGateway,
	marketing MarketingGateway,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Events:     events,
		Identities: identities,
		CRM:        crm,
		Marketing:  marketing,
	}
}

func (uc *SubmitLeadUseCase) Execute(ctx context.Context, input SubmitLeadInput) (*SubmitLeadOutput, error) {
	log := zap.L().With(zap.String("request_id", uuid.New().String()))

	// Bots fill the hidden website field; answer success and do nothing.
	if strings.TrimSpace(input.Honeypot) != "" {
		log.Info("honeypot triggered, suppressing submission")
		return &SubmitLeadOutput{OK: true, Suppressed: true}, nil
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, &DomainError{Code: "EMAIL_REQUIRED", Message: "email is required"}
	}

	name := strings.TrimSpace(input.Name)
	visitorID := input.VisitorID
	if visitorID == "" {
		visitorID = uuid.New().String()
	}

	normalized := Normalize(entity.LeadSubmission{
		Phone:         input.Phone,
		ProviderCount: input.ProviderCount,
		Role:          input.Role,
	})

	props := leadEventProperties(input, email, name, normalized)

	// System of record first: if this write fails nothing else runs.
	if err := uc.Events.Append(ctx, visitorID, nil, entity.EventFormReceived, entity.EventSourceWeb, props); err != nil {
		log.Error("pre-sync event write failed", zap.Error(err))
		return &SubmitLeadOutput{
			Hubspot: entity.SyncSkipped,
			Brevo:   entity.SyncSkipped,
			Message: "Database error",
		}, ErrEventLog
	}

	out := &SubmitLeadOutput{DBSaved: true}

	// CRM and nurture-list syncs are independent; both always run.
	contactID, hubspotStatus := uc.syncCRM(ctx, log, input, email, name, normalized)
	out.Hubspot = hubspotStatus
	out.Brevo = uc.syncMarketing(ctx, log, input, email, name, normalized)

	if contactID != "" {
		if err := uc.Identities.Link(ctx, visitorID, contactID, email); err != nil {
			log.Warn("visitor identity link failed", zap.Error(err))
		}
	}

	var userID *string
	if contactID != "" {
		userID = &contactID
	}
	if err := uc.Events.Append(ctx, visitorID, userID, entity.EventFormSubmitted, entity.EventSourceWeb, props); err != nil {
		log.Warn("post-sync event write failed", zap.Error(err))
	}

	out.OK = out.Hubspot != entity.SyncError && out.Brevo != entity.SyncError
	if !out.OK {
		out.Message = "Partial success"
	}

	log.Info("lead processed",
		zap.Bool("db_saved", out.DBSaved),
		zap.String("hubspot", string(out.Hubspot)),
		zap.String("brevo", string(out.Brevo)))
	return out, nil
}

func (uc *SubmitLeadUseCase) syncCRM(ctx context.Context, log *zap.Logger, input SubmitLeadInput, email, name string, normalized entity.NormalizedLead) (string, entity.SyncStatus) {
	contactID, err := uc.CRM.UpsertContact(ctx, hubspot.ContactInput{
		Email:         email,
		FirstName:     firstWord(name),
		Phone:         normalized.SafePhone,
		JobTitle:      strings.TrimSpace(input.Role),
		Company:       strings.TrimSpace(input.Organization),
		ProviderCount: input.ProviderCount,
		UTMSource:     input.UTMSource,
		UTMMedium:     input.UTMMedium,
		UTMCampaign:   input.UTMCampaign,
		UTMContent:    input.UTMContent,
		UTMTerm:       input.UTMTerm,
		LastFormID:    input.FormID,
		LeadSource:    "Website form",
		SegmentSlug:   input.SegmentSlug,
		SizeBucket:    normalized.CompanySizeBucket,
		Persona:       normalized.PersonaTag,
	})
	switch {
	case err == nil:
		return contactID, entity.SyncOK
	case errors.Is(err, hubspot.ErrNotConfigured):
		log.Warn("hubspot not configured, skipping sync")
		return "", entity.SyncSkipped
	default:
		log.Error("hubspot sync failed", zap.Error(err))
		return "", entity.SyncError
	}
}

func (uc *SubmitLeadUseCase) syncMarketing(ctx context.Context, log *zap.Logger, input SubmitLeadInput, email, name string, normalized entity.NormalizedLead) entity.SyncStatus {
	first, last := splitName(name)
	err := uc.Marketing.SyncContact(ctx, brevo.ContactInput{
		Email:         email,
		FirstName:     first,
		LastName:      last,
		Company:       strings.TrimSpace(input.Organization),
		Role:          strings.TrimSpace(input.Role),
		Phone:         normalized.SafePhone,
		Message:       input.Message,
		ProviderCount: input.ProviderCount,
		LeadSource:    "Website form",
		SegmentSlug:   input.SegmentSlug,
		SizeBucket:    normalized.CompanySizeBucket,
		Persona:       normalized.PersonaTag,
		FormID:        input.FormID,
		UTMSource:     input.UTMSource,
		UTMMedium:     input.UTMMedium,
		UTMCampaign:   input.UTMCampaign,
		UTMContent:    input.UTMContent,
		UTMTerm:       input.UTMTerm,
	})
	switch {
	case err == nil:
		return entity.SyncOK
	case errors.Is(err, brevo.ErrNotConfigured):
		log.Warn("brevo not configured, skipping sync")
		return entity.SyncSkipped
	default:
		log.Error("brevo sync failed", zap.Error(err))
		return entity.SyncError
	}
}

// leadEventProperties is the full normalized submission attached to
// both the form_received and form_submitted events.
func leadEventProperties(input SubmitLeadInput, email, name string, normalized entity.NormalizedLead) map[string]any {
	props := map[string]any{
		"name":  name,
		"email": email,
	}
	set := func(key, val string) {
		if val != "" {
			props[key] = val
		}
	}
	set("phone", normalized.SafePhone)
	set("role", strings.TrimSpace(input.Role))
	set("organization", strings.TrimSpace(input.Organization))
	set("provider_count", input.ProviderCount)
	set("form_id", input.FormID)
	set("utm_source", input.UTMSource)
	set("utm_medium", input.UTMMedium)
	set("utm_campaign", input.UTMCampaign)
	set("utm_content", input.UTMContent)
	set("utm_term", input.UTMTerm)
	set("segment_slug", input.SegmentSlug)
	set("company_size_bucket", normalized.CompanySizeBucket)
	set("persona", normalized.PersonaTag)
	set("message", input.Message)
	set("referrer", input.Referrer)
	return props
}

func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func splitName(s string) (first, last string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
