package usecase

import "errors"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// ErrEventLog marks a failed pre-sync event write. It is the one fatal
// failure in the pipeline: losing the lead record entirely is not
// acceptable, so the request stops here.
var ErrEventLog = errors.New("event log write failed")

// ErrCRMNotConfigured is returned by the careers flow, which cannot run
// at all without a CRM credential.
var ErrCRMNotConfigured = errors.New("crm credential not configured")
