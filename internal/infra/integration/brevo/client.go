package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotConfigured signals a missing API key or list id. The caller
// reports the sync as skipped rather than failed.
var ErrNotConfigured = errors.New("brevo api key or list id not configured")

type Client struct {
	apiKey  string
	listID  int
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string, listID int, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		listID:  listID,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SyncContact upserts the contact into the nurture list. Brevo handles
// create-or-update by email natively, so this is a single call with no
// retry. The contact is added to the configured list.
func (c *Client) SyncContact(ctx context.Context, input ContactInput) error {
	if c.apiKey == "" || c.listID == 0 {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(createContactRequest{
		Email:         input.Email,
		UpdateEnabled: true,
		ListIDs:       []int{c.listID},
		Attributes:    buildAttributes(input),
	})
	if err != nil {
		return fmt.Errorf("marshaling contact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v3/contacts", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("brevo request: %w", err)
	}
	defer resp.Body.Close()

	// 201 created, 204 updated.
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		zap.L().Info("brevo contact synced", zap.String("email", input.Email))
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("brevo api error: status %d - %s", resp.StatusCode, string(body))
}

func buildAttributes(input ContactInput) map[string]any {
	attrs := make(map[string]any)
	set := func(key, val string) {
		if val != "" {
			attrs[key] = val
		}
	}
	set("FIRSTNAME", input.FirstName)
	set("LASTNAME", input.LastName)
	set("COMPANY", input.Company)
	set("JOB_TITLE", input.Role)
	set("PHONE", input.Phone)
	set("MESSAGE", input.Message)
	set("LEAD_SOURCE", input.LeadSource)
	set("LOGIC_SEGMENT", input.SegmentSlug)
	set("LOGIC_SIZE", input.SizeBucket)
	set("LOGIC_PERSONA", input.Persona)
	set("LAST_FORM_ID", input.FormID)
	set("UTM_SOURCE", input.UTMSource)
	set("UTM_MEDIUM", input.UTMMedium)
	set("UTM_CAMPAIGN", input.UTMCampaign)
	set("UTM_CONTENT", input.UTMContent)
	set("UTM_TERM", input.UTMTerm)

	// PROVIDER_COUNT is a numeric attribute on the Brevo side.
	if input.ProviderCount != "" {
		if n, err := strconv.ParseFloat(strings.TrimSpace(input.ProviderCount), 64); err == nil {
			attrs["PROVIDER_COUNT"] = n
		}
	}
	return attrs
}
