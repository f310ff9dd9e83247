package brevo

// ContactInput is the subset of lead data synced to the nurture list.
// Empty fields are dropped from the attribute map before sending.
type ContactInput struct {
	Email         string
	FirstName     string
	LastName      string
	Company       string
	Role          string
	Phone         string
	Message       string
	ProviderCount string
	LeadSource    string
	SegmentSlug   string
	SizeBucket    string
	Persona       string
	FormID        string
	UTMSource     string
	UTMMedium     string
	UTMCampaign   string
	UTMContent    string
	UTMTerm       string
}

// createContactRequest maps onto Brevo's POST /v3/contacts body.
// updateEnabled makes the call a native create-or-update by email.
type createContactRequest struct {
	Email         string         `json:"email"`
	UpdateEnabled bool           `json:"updateEnabled"`
	ListIDs       []int          `json:"listIds"`
	Attributes    map[string]any `json:"attributes"`
}
