package hubspot

// ContactInput carries everything the form pipeline knows about a
// contact. Empty fields are left out of the request entirely.
type ContactInput struct {
	Email         string
	FirstName     string
	LastName      string
	Phone         string
	JobTitle      string
	Company       string
	ProviderCount string
	Message       string
	LinkedInURL   string
	UTMSource     string
	UTMMedium     string
	UTMCampaign   string
	UTMContent    string
	UTMTerm       string
	LastFormID    string
	LeadSource    string
	SegmentSlug   string
	SizeBucket    string
	Persona       string

	// Careers-only fields.
	LifecycleStage  string
	ApplicantStatus string
}

type contactRequest struct {
	Properties map[string]string `json:"properties"`
}

type contactResponse struct {
	ID string `json:"id"`
}

// conflictResponse is the 409 body returned when the contact already
// exists. Older accounts omit existingObjectId, so the message text is
// the reliable signal.
type conflictResponse struct {
	Message          string `json:"message"`
	ExistingObjectID string `json:"existingObjectId"`
}
