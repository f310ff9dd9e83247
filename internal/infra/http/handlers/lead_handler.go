package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/logichealth/marketing-api/internal/entity"
	"github.com/logichealth/marketing-api/internal/infra/http/middleware"
	"github.com/logichealth/marketing-api/internal/usecase"
)

type LeadHandler struct {
	UseCase      *usecase.SubmitLeadUseCase
	RateLimiter  *RateLimiter
	PublicAPIKey string
}

func NewLeadHandler(uc *usecase.SubmitLeadUseCase, limiter *RateLimiter, publicAPIKey string) *LeadHandler {
	return &LeadHandler{
		UseCase:      uc,
		RateLimiter:  limiter,
		PublicAPIKey: publicAPIKey,
	}
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// leadRequest accepts both JSON and form-encoded payloads.
// provider_count arrives as a number or a string depending on the form.
type leadRequest struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Organization  string `json:"organization"`
	ProviderCount any    `json:"provider_count"`
	Phone         string `json:"phone"`
	Message       string `json:"message"`
	FormID        string `json:"form_id"`
	SegmentSlug   string `json:"segment_slug"`
	VisitorID     string `json:"visitor_id"`
	UTMSource     string `json:"utm_source"`
	UTMMedium     string `json:"utm_medium"`
	UTMCampaign   string `json:"utm_campaign"`
	UTMContent    string `json:"utm_content"`
	UTMTerm       string `json:"utm_term"`
	Referrer      string `json:"referrer"`
	Website       string `json:"website"`
}

func (h *LeadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method Not Allowed"})
		return
	}

	if h.PublicAPIKey != "" && r.Header.Get("x-public-api-key") != h.PublicAPIKey {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}

	if !h.RateLimiter.Allow(clientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests. Please try again later."})
		return
	}

	input, err := decodeLeadRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid payload"})
		return
	}

	out, err := h.UseCase.Execute(r.Context(), input)
	switch {
	case usecase.IsDomainError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case errors.Is(err, usecase.ErrEventLog):
		writeJSON(w, http.StatusInternalServerError, out)
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal error"})
		return
	}

	if out.Suppressed {
		writeJSON(w, http.StatusOK, okResponse{OK: true})
		return
	}

	recordLeadMetrics(out)
	if !out.OK {
		writeJSON(w, http.StatusMultiStatus, out)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func decodeLeadRequest(r *http.Request) (usecase.SubmitLeadInput, error) {
	ct := r.Header.Get("Content-Type")

	var req leadRequest
	if strings.Contains(ct, "application/x-www-form-urlencoded") || strings.Contains(ct, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return usecase.SubmitLeadInput{}, err
		}
		req = leadRequest{
			Email:         r.FormValue("email"),
			Name:          r.FormValue("name"),
			Role:          r.FormValue("role"),
			Organization:  r.FormValue("organization"),
			ProviderCount: r.FormValue("provider_count"),
			Phone:         r.FormValue("phone"),
			Message:       r.FormValue("message"),
			FormID:        r.FormValue("form_id"),
			SegmentSlug:   r.FormValue("segment_slug"),
			VisitorID:     r.FormValue("visitor_id"),
			UTMSource:     r.FormValue("utm_source"),
			UTMMedium:     r.FormValue("utm_medium"),
			UTMCampaign:   r.FormValue("utm_campaign"),
			UTMContent:    r.FormValue("utm_content"),
			UTMTerm:       r.FormValue("utm_term"),
			Referrer:      r.FormValue("referrer"),
			Website:       r.FormValue("website"),
		}
	} else {
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&req); err != nil {
			return usecase.SubmitLeadInput{}, err
		}
	}

	return usecase.SubmitLeadInput{
		Email:         req.Email,
		Name:          req.Name,
		Role:          req.Role,
		Organization:  req.Organization,
		ProviderCount: stringifyCount(req.ProviderCount),
		Phone:         req.Phone,
		Message:       req.Message,
		FormID:        req.FormID,
		SegmentSlug:   req.SegmentSlug,
		VisitorID:     req.VisitorID,
		UTMSource:     req.UTMSource,
		UTMMedium:     req.UTMMedium,
		UTMCampaign:   req.UTMCampaign,
		UTMContent:    req.UTMContent,
		UTMTerm:       req.UTMTerm,
		Referrer:      req.Referrer,
		Honeypot:      req.Website,
	}, nil
}

func stringifyCount(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(n)
	case json.Number:
		return n.String()
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return ""
	}
}

func recordLeadMetrics(out *usecase.SubmitLeadOutput) {
	result := "ok"
	if !out.OK {
		result = "partial"
	}
	middleware.RecordLeadCaptured(result)
	if out.Hubspot == entity.SyncError {
		middleware.RecordIntegrationError("hubspot")
	}
	if out.Brevo == entity.SyncError {
		middleware.RecordIntegrationError("brevo")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
