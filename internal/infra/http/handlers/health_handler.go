package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"
)

type HealthHandler struct {
	DB                *sql.DB
	HubspotConfigured bool
	BrevoConfigured   bool
	SMTPConfigured    bool
	StartTime         time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sql.DB, hubspotConfigured, brevoConfigured, smtpConfigured bool) *HealthHandler {
	return &HealthHandler{
		DB:                db,
		HubspotConfigured: hubspotConfigured,
		BrevoConfigured:   brevoConfigured,
		SMTPConfigured:    smtpConfigured,
		StartTime:         time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.DB != nil {
		if err := h.DB.Ping(); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	deps["hubspot"] = configuredLabel(h.HubspotConfigured)
	deps["brevo"] = configuredLabel(h.BrevoConfigured)
	deps["smtp"] = configuredLabel(h.SMTPConfigured)

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}

func configuredLabel(configured bool) string {
	if configured {
		return "configured"
	}
	return "not configured"
}
