package usecase

import "github.com/logichealth/marketing-api/internal/entity"

// SubmitLeadInput mirrors the lead form payload after transport decode.
type SubmitLeadInput struct {
	Email         string
	Name          string
	Role          string
	Organization  string
	ProviderCount string
	Phone         string
	Message       string
	FormID        string
	SegmentSlug   string
	VisitorID     string
	UTMSource     string
	UTMMedium     string
	UTMCampaign   string
	UTMContent    string
	UTMTerm       string
	Referrer      string
	Honeypot      string
}

// SubmitLeadOutput is the structured pipeline outcome the transport
// turns into a response. Each integration reports its own status so
// operators can tell "CRM down" from "email platform down".
type SubmitLeadOutput struct {
	OK      bool              `json:"ok"`
	DBSaved bool              `json:"dbSaved"`
	Hubspot entity.SyncStatus `json:"hubspot"`
	Brevo   entity.SyncStatus `json:"brevo"`
	Message string            `json:"message,omitempty"`

	// Suppressed marks a honeypot hit: report success, do nothing.
	Suppressed bool `json:"-"`
}

// SubmitApplicationInput mirrors the careers multipart form.
type SubmitApplicationInput struct {
	FullName           string
	Email              string
	Phone              string
	LinkedInURL        string
	CurrentRole        string
	RelevantExperience string
	RoleSlug           string
	RoleName           string
	Source             string
	VisitorID          string
	UTMSource          string
	UTMMedium          string
	UTMCampaign        string
	UTMContent         string
	UTMTerm            string
	Referrer           string

	// Resume metadata only; the file content is not stored.
	ResumeFilename string
	ResumeSize     int64
}

type SubmitApplicationOutput struct {
	OK bool `json:"ok"`
}
