package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotConfigured signals that no access token is set. The caller
// reports the integration as skipped rather than failed.
var ErrNotConfigured = errors.New("hubspot access token not configured")

type Client struct {
	accessToken string
	baseURL     string
	http        *http.Client
}

func NewClient(accessToken, baseURL string, timeout time.Duration) *Client {
	return &Client{
		accessToken: accessToken,
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        &http.Client{Timeout: timeout},
	}
}

// UpsertContact creates the contact, or updates it when the CRM reports
// an email conflict. HubSpot has no native upsert-by-email, so the flow
// is create -> on 409 resolve the existing id (from the conflict body,
// else a lookup by email) -> PATCH. Exactly one create attempt, no
// retries, never deletes.
func (c *Client) UpsertContact(ctx context.Context, input ContactInput) (string, error) {
	if c.accessToken == "" {
		return "", ErrNotConfigured
	}

	props := c.buildProperties(input)
	payload, err := json.Marshal(contactRequest{Properties: props})
	if err != nil {
		return "", fmt.Errorf("marshaling contact: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/crm/v3/objects/contacts", payload)
	if err != nil {
		return "", fmt.Errorf("hubspot create request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var created contactResponse
		if err := json.Unmarshal(body, &created); err != nil {
			return "", fmt.Errorf("decoding create response: %w", err)
		}
		zap.L().Info("hubspot contact created", zap.String("contact_id", created.ID))
		return created.ID, nil
	}

	if resp.StatusCode == http.StatusConflict {
		return c.resolveConflict(ctx, input.Email, body, payload)
	}

	return "", fmt.Errorf("hubspot create failed: status %d - %s", resp.StatusCode, string(body))
}

// resolveConflict handles the contact-already-exists path: find the
// existing id, then push the same attribute set over it.
func (c *Client) resolveConflict(ctx context.Context, email string, conflictBody, payload []byte) (string, error) {
	var conflict conflictResponse
	if err := json.Unmarshal(conflictBody, &conflict); err != nil {
		return "", fmt.Errorf("decoding conflict response: %w", err)
	}
	if !strings.Contains(conflict.Message, "Contact already exists") {
		return "", fmt.Errorf("hubspot conflict without existing contact: %s", conflict.Message)
	}

	contactID := conflict.ExistingObjectID
	if contactID == "" {
		id, err := c.lookupByEmail(ctx, email)
		if err != nil {
			return "", fmt.Errorf("resolving existing contact: %w", err)
		}
		contactID = id
	}

	resp, err := c.do(ctx, http.MethodPatch, "/crm/v3/objects/contacts/"+contactID, payload)
	if err != nil {
		return "", fmt.Errorf("hubspot update request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		zap.L().Warn("hubspot update returned non-2xx",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
	} else {
		zap.L().Info("hubspot contact updated", zap.String("contact_id", contactID))
	}

	return contactID, nil
}

func (c *Client) lookupByEmail(ctx context.Context, email string) (string, error) {
	path := "/crm/v3/objects/contacts/" + url.PathEscape(email) + "?idProperty=email"
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lookup by email failed: status %d", resp.StatusCode)
	}

	var found contactResponse
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		return "", fmt.Errorf("decoding lookup response: %w", err)
	}
	if found.ID == "" {
		return "", fmt.Errorf("lookup by email returned no id")
	}
	return found.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

func (c *Client) buildProperties(input ContactInput) map[string]string {
	props := map[string]string{
		"email": input.Email,
	}
	set := func(key, val string) {
		if val != "" {
			props[key] = val
		}
	}
	set("firstname", input.FirstName)
	set("lastname", input.LastName)
	set("phone", input.Phone)
	set("jobtitle", input.JobTitle)
	set("company", input.Company)
	set("provider_count", input.ProviderCount)
	set("message", input.Message)
	set("linkedin_url", input.LinkedInURL)
	set("utm_source", input.UTMSource)
	set("utm_medium", input.UTMMedium)
	set("utm_campaign", input.UTMCampaign)
	set("utm_content", input.UTMContent)
	set("utm_term", input.UTMTerm)
	set("last_form_id", input.LastFormID)
	set("lead_source", input.LeadSource)
	set("logic_segment_slug", input.SegmentSlug)
	set("logic_company_size_bucket", input.SizeBucket)
	set("logic_persona", input.Persona)
	set("lifecyclestage", input.LifecycleStage)
	set("applicant_status", input.ApplicantStatus)
	return props
}
