package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/usecase"
)

// RecurrenceHandler handles recurrence template HTTP requests.
type RecurrenceHandler struct {
	recurrenceUC *usecase.RecurrenceUseCase
}

// NewRecurrenceHandler creates a new RecurrenceHandler.
func NewRecurrenceHandler(recurrenceUC *usecase.RecurrenceUseCase) *RecurrenceHandler {
	return &RecurrenceHandler{recurrenceUC: recurrenceUC}
}

// Create creates a new recurrence template.
func (h *RecurrenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRecurrenceTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	template, err := h.recurrenceUC.CreateTemplate(r.Context(), req.ToUseCaseInput(actor(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create template", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecurrenceTemplateFromDomain(template))
}

// List lists active recurrence templates.
func (h *RecurrenceHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.recurrenceUC.ListTemplates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list templates", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RecurrenceTemplatesFromDomain(templates))
}

// Generate triggers generation for the given month (defaults to the current
// month). Meant for manual catch-up runs; the worker does this on a schedule.
func (h *RecurrenceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	month := time.Now().UTC()
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month", err.Error())
			return
		}
		month = parsed
	}

	generated, err := h.recurrenceUC.GenerateForMonth(r.Context(), month, actor(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate recurrences", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"month":     month.Format("2006-01"),
		"generated": generated,
	})
}
