package entity

// SyncStatus is the outcome of one downstream integration attempt.
// "skipped" means the integration was never configured, as opposed to
// "error" which means it was attempted and failed.
type SyncStatus string

const (
	SyncOK      SyncStatus = "ok"
	SyncError   SyncStatus = "error"
	SyncSkipped SyncStatus = "skipped"
)

// Company size buckets derived from the reported provider count.
const (
	SizeSmall = "small" // <= 5 providers
	SizeMid   = "mid"   // <= 25 providers
	SizeLarge = "large"
)

// Persona tags derived from the free-text role field.
const (
	PersonaFinance    = "finance"
	PersonaOperations = "operations"
	PersonaClinical   = "clinical"
)

// LeadSubmission is the raw decoded form payload. It is never persisted
// as-is; the orchestrator derives a normalized view and logs that.
type LeadSubmission struct {
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
	Website       string // honeypot, legitimate users never fill this
}

// NormalizedLead holds the derived fields attached to every logged event.
type NormalizedLead struct {
	SafePhone         string
	CompanySizeBucket string
	PersonaTag        string
}
