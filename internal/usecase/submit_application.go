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
	"github.com/logichealth/marketing-api/internal/infra/mail"
)

// defaultApplicationSource labels applications that arrive without an
// explicit source field.
const defaultApplicationSource = "Referral Partner Application"

// SubmitApplicationUseCase handles careers applications: a simpler
// one-way sync with no per-integration response statuses. The CRM is
// mandatory here; everything after it is best-effort.
type SubmitApplicationUseCase struct {
	Events     entity.EventRepositoryInterface
	Identities entity.VisitorIdentityRepositoryInterface
	CRM        CRMGateway
	Marketing  MarketingGateway
	Notifier   NotificationSender
}

func NewSubmitApplicationUseCase(
	events entity.EventRepositoryInterface,
	identities entity.VisitorIdentityRepositoryInterface,
	crm CRMGateway,
	marketing MarketingGateway,
	notifier NotificationSender,
) *SubmitApplicationUseCase {
	return &SubmitApplicationUseCase{
		Events:     events,
		Identities: identities,
		CRM:        crm,
		Marketing:  marketing,
		Notifier:   notifier,
	}
}

func (uc *SubmitApplicationUseCase) Execute(ctx context.Context, input SubmitApplicationInput) (*SubmitApplicationOutput, error) {
	log := zap.L().With(zap.String("request_id", uuid.New().String()))

	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(input.Email)
	if fullName == "" || email == "" {
		return nil, &DomainError{Code: "FIELDS_REQUIRED", Message: "Name and email are required"}
	}

	visitorID := input.VisitorID
	if visitorID == "" {
		visitorID = uuid.New().String()
	}
	safePhone := SanitizePhone(input.Phone)
	first, last := splitName(fullName)
	summary := applicationSummary(input)
	leadSource := strings.TrimSpace(input.Source)
	if leadSource == "" {
		leadSource = defaultApplicationSource
	}

	log.Info("processing application",
		zap.String("email", email),
		zap.String("role_slug", input.RoleSlug))

	var contactID string
	id, err := uc.CRM.UpsertContact(ctx, hubspot.ContactInput{
		Email:           email,
		FirstName:       first,
		LastName:        last,
		Phone:           safePhone,
		Message:         summary,
		LinkedInURL:     strings.TrimSpace(input.LinkedInURL),
		LifecycleStage:  "other",
		ApplicantStatus: "New",
		LeadSource:      leadSource,
	})
	switch {
	case err == nil:
		contactID = id
	case errors.Is(err, hubspot.ErrNotConfigured):
		// Applications go nowhere without the CRM; this is a server
		// configuration fault, not a degraded success.
		log.Error("hubspot not configured, rejecting application")
		return nil, ErrCRMNotConfigured
	default:
		log.Error("hubspot sync failed", zap.Error(err))
	}

	roleName := strings.TrimSpace(input.RoleName)
	brevoRole := roleName
	if brevoRole == "" {
		brevoRole = "Referral Partner"
	}
	if err := uc.Marketing.SyncContact(ctx, brevo.ContactInput{
		Email:      email,
		FirstName:  first,
		LastName:   last,
		Phone:      safePhone,
		Role:       brevoRole,
		Message:    summary,
		LeadSource: defaultApplicationSource,
	}); err != nil && !errors.Is(err, brevo.ErrNotConfigured) {
		log.Warn("brevo sync failed", zap.Error(err))
	}

	if contactID != "" {
		if err := uc.Identities.Link(ctx, visitorID, contactID, email); err != nil {
			log.Warn("visitor identity link failed", zap.Error(err))
		}
	}

	var userID *string
	if contactID != "" {
		userID = &contactID
	}
	props := applicationEventProperties(input, fullName, email, safePhone)
	if err := uc.Events.Append(ctx, visitorID, userID, entity.EventApplicationSubmitted, entity.EventSourceWeb, props); err != nil {
		log.Warn("application event write failed", zap.Error(err))
	}

	if uc.Notifier != nil {
		if err := uc.Notifier.SendApplicationNotice(fullName, email, roleName); err != nil && !errors.Is(err, mail.ErrNotConfigured) {
			log.Warn("application notice failed", zap.Error(err))
		}
	}

	return &SubmitApplicationOutput{OK: true}, nil
}

// applicationSummary folds the free-text fields into the one message
// property the CRM shows recruiters.
func applicationSummary(input SubmitApplicationInput) string {
	var parts []string
	if v := strings.TrimSpace(input.LinkedInURL); v != "" {
		parts = append(parts, "LinkedIn: "+v)
	}
	if v := strings.TrimSpace(input.CurrentRole); v != "" {
		parts = append(parts, "Current Role: "+v)
	}
	if v := strings.TrimSpace(input.RelevantExperience); v != "" {
		parts = append(parts, "Relevant Experience: "+v)
	}
	return strings.Join(parts, "\n\n")
}

func applicationEventProperties(input SubmitApplicationInput, fullName, email, safePhone string) map[string]any {
	props := map[string]any{
		"fullName": fullName,
		"email":    email,
	}
	set := func(key, val string) {
		if val != "" {
			props[key] = val
		}
	}
	set("phone", safePhone)
	set("roleSlug", input.RoleSlug)
	set("roleName", input.RoleName)
	set("source", input.Source)
	set("linkedinUrl", input.LinkedInURL)
	set("currentRole", input.CurrentRole)
	set("relevantExperience", input.RelevantExperience)
	set("utm_source", input.UTMSource)
	set("utm_medium", input.UTMMedium)
	set("utm_campaign", input.UTMCampaign)
	set("utm_content", input.UTMContent)
	set("utm_term", input.UTMTerm)
	set("referrer", input.Referrer)
	set("resume_filename", input.ResumeFilename)
	if input.ResumeSize > 0 {
		props["resume_size"] = input.ResumeSize
	}
	return props
}
