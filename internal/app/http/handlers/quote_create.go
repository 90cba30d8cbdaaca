package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"voicehub/go_backend/internal/domain/quote"
	"voicehub/go_backend/internal/domain/quote/form"
	"voicehub/go_backend/internal/domain/ui"
	"voicehub/go_backend/internal/i18n"
)

type QuoteResponse struct {
	State form.State `json:"state"`
	// BackHome is the link target shown once the request is submitted.
	BackHome string `json:"back_home,omitempty"`
	Outcome
}

type QuoteFormResponse struct {
	Language  string            `json:"language"`
	Labels    map[string]string `json:"labels"`
	Required  []string          `json:"required"`
	Languages []string          `json:"languages"`
}

// CreateQuote submits the quote request form.
func (h *Handlers) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req quote.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	out := &ui.Outbox{}
	f := form.New(form.Deps{
		Sender:   h.Quotes,
		Notifier: out,
		T:        i18n.FromAcceptLanguage(r.Header.Get("Accept-Language")),
		Fallback: h.Cfg.QuoteFallbackEmail,
		Log:      h.Log,
	})
	if err := f.Fill(req); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	err := f.Submit(r.Context())
	resp := QuoteResponse{State: f.State(), Outcome: outcomeOf(out)}
	switch {
	case err == nil:
		resp.BackHome = ui.RouteHome
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, form.ErrMissingRequired), errors.Is(err, form.ErrInvalidLanguage):
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	default:
		writeJSON(w, http.StatusBadGateway, resp)
	}
}

// QuoteForm returns the localized labels of the quote form.
func (h *Handlers) QuoteForm(w http.ResponseWriter, r *http.Request) {
	p := i18n.FromAcceptLanguage(r.Header.Get("Accept-Language"))
	writeJSON(w, http.StatusOK, QuoteFormResponse{
		Language:  p.Tag().String(),
		Labels:    p.Labels(i18n.FormKeys),
		Required:  []string{"fullName", "email", "description"},
		Languages: []string{string(quote.LanguageEnglish), string(quote.LanguageDutch)},
	})
}

// PreviewQuotePDF renders a quote request as the PDF the sales inbox gets.
func (h *Handlers) PreviewQuotePDF(w http.ResponseWriter, r *http.Request) {
	var req quote.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s := quote.NewSubmission(req, time.Now())
	pdfBytes, err := h.PDF.Generate(s)
	if err != nil {
		h.Log.Error("quote pdf generation failed", zap.Error(err))
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, s.Reference))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
