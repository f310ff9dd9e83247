package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/logichealth/marketing-api/internal/infra/http/middleware"
	"github.com/logichealth/marketing-api/internal/usecase"
)

// maxResumeMemory bounds how much of the multipart body stays in memory.
const maxResumeMemory = 10 << 20

type CareersHandler struct {
	UseCase     *usecase.SubmitApplicationUseCase
	RateLimiter *RateLimiter
}

func NewCareersHandler(uc *usecase.SubmitApplicationUseCase, limiter *RateLimiter) *CareersHandler {
	return &CareersHandler{UseCase: uc, RateLimiter: limiter}
}

func (h *CareersHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.RateLimiter.Allow(clientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests. Please try again later."})
		return
	}

	input, err := decodeApplicationRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid payload"})
		return
	}

	out, err := h.UseCase.Execute(r.Context(), input)
	switch {
	case usecase.IsDomainError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case errors.Is(err, usecase.ErrCRMNotConfigured):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Server configuration error"})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal error"})
		return
	}

	middleware.RecordApplicationReceived()
	writeJSON(w, http.StatusOK, out)
}

// decodeApplicationRequest reads the multipart (or form-encoded) careers
// form. Only the resume's metadata is kept; the file itself is dropped.
func decodeApplicationRequest(r *http.Request) (usecase.SubmitApplicationInput, error) {
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxResumeMemory); err != nil {
			return usecase.SubmitApplicationInput{}, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return usecase.SubmitApplicationInput{}, err
		}
	}

	input := usecase.SubmitApplicationInput{
		FullName:           r.FormValue("fullName"),
		Email:              r.FormValue("email"),
		Phone:              r.FormValue("phone"),
		LinkedInURL:        r.FormValue("linkedinUrl"),
		CurrentRole:        r.FormValue("currentRole"),
		RelevantExperience: r.FormValue("relevantExperience"),
		RoleSlug:           r.FormValue("roleSlug"),
		RoleName:           r.FormValue("roleName"),
		Source:             r.FormValue("source"),
		VisitorID:          r.FormValue("visitor_id"),
		UTMSource:          r.FormValue("utm_source"),
		UTMMedium:          r.FormValue("utm_medium"),
		UTMCampaign:        r.FormValue("utm_campaign"),
		UTMContent:         r.FormValue("utm_content"),
		UTMTerm:            r.FormValue("utm_term"),
		Referrer:           r.FormValue("referrer"),
	}

	if file, header, err := r.FormFile("resume"); err == nil {
		file.Close()
		input.ResumeFilename = header.Filename
		input.ResumeSize = header.Size
	}

	return input, nil
}
