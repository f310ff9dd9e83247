package usecase

import (
	"strconv"
	"strings"

	"github.com/logichealth/marketing-api/internal/entity"
)

// SanitizePhone strips everything except digits and a leading "+".
// Anything shorter than 7 characters after cleaning is noise and is
// discarded (empty string means absent).
func SanitizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(b.String())
	if len(cleaned) < 7 {
		return ""
	}
	return cleaned
}

// BucketBySize maps a reported provider count onto a coarse size bucket.
// Non-numeric or absent input yields no bucket.
func BucketBySize(count string) string {
	count = strings.TrimSpace(count)
	if count == "" {
		return ""
	}
	n, err := strconv.Atoi(count)
	if err != nil {
		return ""
	}
	switch {
	case n <= 5:
		return entity.SizeSmall
	case n <= 25:
		return entity.SizeMid
	default:
		return entity.SizeLarge
	}
}

// Keyword sets checked in fixed priority order: finance wins over
// operations wins over clinical. "md" and "do" are short substrings and
// can false-positive inside unrelated words; kept as-is until validated
// against real role strings.
var personaKeywords = []struct {
	tag      string
	keywords []string
}{
	{entity.PersonaFinance, []string{"finance", "cfo", "revenue"}},
	{entity.PersonaOperations, []string{"ops", "operation", "practice", "manager", "admin"}},
	{entity.PersonaClinical, []string{"clinical", "md", "do", "doctor", "nurse", "provider"}},
}

// ClassifyPersona derives a persona tag from the free-text role field
// via case-insensitive substring matching. Empty result means no match.
func ClassifyPersona(role string) string {
	if role == "" {
		return ""
	}
	normalized := strings.ToLower(role)
	for _, set := range personaKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(normalized, kw) {
				return set.tag
			}
		}
	}
	return ""
}

// Normalize derives the sanitized view of a submission.
func Normalize(sub entity.LeadSubmission) entity.NormalizedLead {
	return entity.NormalizedLead{
		SafePhone:         SanitizePhone(sub.Phone),
		CompanySizeBucket: BucketBySize(sub.ProviderCount),
		PersonaTag:        ClassifyPersona(sub.Role),
	}
}
