// Package handler provides HTTP handlers for the review form and API.
package handler

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/llm"
	"github.com/sevigo/code-reviewer/internal/report"
)

//go:embed templates/*.html
var templateFiles embed.FS

// maxSourceBytes caps the size of a submitted snippet.
const maxSourceBytes = 1 << 20

const (
	warnEmptySource     = "Please enter some code before submitting."
	warnGenerationError = "Error during model inference. Please try again."
	warnReviewFailed    = "The review could not be completed. Please try again."
)

// ReviewHandler serves the review form and the JSON review API.
type ReviewHandler struct {
	reviewer core.Reviewer
	language string
	tmpl     *template.Template
	logger   *slog.Logger
}

type pageTitles struct {
	Issues      string
	Suggestions string
	FixedCode   string
	Correction  string
}

type pageData struct {
	Language   string
	Code       string
	Warning    string
	Submission *core.Submission
	FixedCode  string
	Titles     pageTitles
}

type reviewRequest struct {
	Code string `json:"code"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewReviewHandler parses the embedded templates and creates the handler.
func NewReviewHandler(reviewer core.Reviewer, language string, logger *slog.Logger) (*ReviewHandler, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &ReviewHandler{
		reviewer: reviewer,
		language: language,
		tmpl:     tmpl,
		logger:   logger,
	}, nil
}

// Index renders the empty form.
func (h *ReviewHandler) Index(w http.ResponseWriter, _ *http.Request) {
	h.render(w, http.StatusOK, h.page("", nil, ""))
}

// SubmitForm handles the form post and renders the result page.
func (h *ReviewHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("could not parse review form", "error", err)
		http.Error(w, "Could not parse form", http.StatusBadRequest)
		return
	}
	code := r.PostFormValue("code")

	sub, err := h.reviewer.Review(r.Context(), code)
	switch {
	case errors.Is(err, core.ErrEmptySource):
		h.render(w, http.StatusOK, h.page(code, nil, warnEmptySource))
	case errors.Is(err, core.ErrGenerationFailed), errors.Is(err, core.ErrEmptyResponse):
		h.logReviewError(r.Context(), err)
		h.render(w, http.StatusOK, h.page(code, nil, warnGenerationError))
	case err != nil:
		h.logReviewError(r.Context(), err)
		h.render(w, http.StatusOK, h.page(code, nil, warnReviewFailed))
	default:
		h.render(w, http.StatusOK, h.page(code, sub, ""))
	}
}

// SubmitJSON handles POST /api/v1/review.
func (h *ReviewHandler) SubmitJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceBytes)
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	sub, err := h.reviewer.Review(r.Context(), req.Code)
	switch {
	case errors.Is(err, core.ErrEmptySource):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrGenerationFailed), errors.Is(err, core.ErrEmptyResponse):
		h.logReviewError(r.Context(), err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	case err != nil:
		h.logReviewError(r.Context(), err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "review failed"})
	default:
		writeJSON(w, http.StatusOK, sub)
	}
}

func (h *ReviewHandler) page(code string, sub *core.Submission, warning string) pageData {
	data := pageData{
		Language:   h.language,
		Code:       code,
		Warning:    warning,
		Submission: sub,
		Titles: pageTitles{
			Issues:      report.TitleIssues,
			Suggestions: report.TitleSuggestions,
			FixedCode:   report.TitleFixedCode,
			Correction:  report.TitleCorrection,
		},
	}
	if sub != nil && sub.Review != nil {
		data.FixedCode = llm.StripCodeFence(sub.Review.FixedCode)
	}
	return data
}

func (h *ReviewHandler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, "index", data); err != nil {
		h.logger.Error("failed to render page", "error", err)
	}
}

func (h *ReviewHandler) logReviewError(ctx context.Context, err error) {
	h.logger.ErrorContext(ctx, "review request failed", "error", err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
