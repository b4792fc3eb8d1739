// Package incidents provides HTTP handlers and business logic for reported incidents.
package incidents

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/iomzzz/Standards-final/internal/domain"
	"github.com/iomzzz/Standards-final/internal/pkg/ctxlog"
	"github.com/iomzzz/Standards-final/internal/pkg/httputil"
)

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrIncidentNotFound, Status: http.StatusNotFound, Message: "incident not found"},
}

// Handler handles HTTP requests for the incidents module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new incidents handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: httputil.NewValidator(),
	}
}

// RegisterRoutes registers all HTTP routes for the incidents module.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/incidents", func(r chi.Router) {
		r.Get("/", h.ListIncidents)
		r.Post("/", h.CreateIncident)
		r.Get("/choices", h.ListChoices)
		r.Get("/{id}", h.GetIncident)
		r.Put("/{id}", h.ReplaceIncident)
		r.Patch("/{id}", h.PatchIncident)
		r.Delete("/{id}", h.DeleteIncident)
	})
}

// CreateIncidentRequest represents the request body for reporting an incident.
// Server-owned fields (id, reported_at) are not decoded.
type CreateIncidentRequest struct {
	Type        string `json:"type" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	Severity    string `json:"severity" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	Status      string `json:"status" validate:"omitempty,oneof=OPEN INVESTIGATING RESOLVED"`
	ReportedBy  string `json:"reported_by" validate:"max=100"`
}

// ToInput converts the request to service input.
func (r *CreateIncidentRequest) ToInput() CreateIncidentInput {
	return CreateIncidentInput{
		Type:        r.Type,
		Description: r.Description,
		Severity:    r.Severity,
		Status:      r.Status,
		ReportedBy:  r.ReportedBy,
	}
}

// ReplaceIncidentRequest represents the request body for a full update (PUT).
// Omitted optional fields keep their stored value.
type ReplaceIncidentRequest struct {
	Type        string  `json:"type" validate:"required,max=100"`
	Description string  `json:"description" validate:"required"`
	Severity    *string `json:"severity" validate:"omitnil,oneof=LOW MEDIUM HIGH CRITICAL"`
	Status      *string `json:"status" validate:"omitnil,oneof=OPEN INVESTIGATING RESOLVED"`
	ReportedBy  *string `json:"reported_by" validate:"omitnil,max=100"`
}

// ToInput converts the request to service input.
func (r *ReplaceIncidentRequest) ToInput() UpdateIncidentInput {
	return UpdateIncidentInput{
		Type:        &r.Type,
		Description: &r.Description,
		Severity:    r.Severity,
		Status:      r.Status,
		ReportedBy:  r.ReportedBy,
	}
}

// PatchIncidentRequest represents the request body for a partial update (PATCH).
type PatchIncidentRequest struct {
	Type        *string `json:"type" validate:"omitnil,min=1,max=100"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	Severity    *string `json:"severity" validate:"omitnil,oneof=LOW MEDIUM HIGH CRITICAL"`
	Status      *string `json:"status" validate:"omitnil,oneof=OPEN INVESTIGATING RESOLVED"`
	ReportedBy  *string `json:"reported_by" validate:"omitnil,max=100"`
}

// ToInput converts the request to service input.
func (r *PatchIncidentRequest) ToInput() UpdateIncidentInput {
	return UpdateIncidentInput{
		Type:        r.Type,
		Description: r.Description,
		Severity:    r.Severity,
		Status:      r.Status,
		ReportedBy:  r.ReportedBy,
	}
}

// Choice is a selectable enumeration member with its display name.
type Choice struct {
	Value       string `json:"value"`
	DisplayName string `json:"display_name"`
}

// ListIncidents handles GET /incidents request.
func (h *Handler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	filter := IncidentFilter{}

	if status := r.URL.Query().Get("status"); status != "" {
		s := domain.IncidentStatus(status)
		filter.Status = &s
	}

	if severity := r.URL.Query().Get("severity"); severity != "" {
		s := domain.Severity(severity)
		filter.Severity = &s
	}

	list, err := h.service.ListIncidents(r.Context(), filter)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, list)
}

// CreateIncident handles POST /incidents request.
func (h *Handler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	var req CreateIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	incident, err := h.service.CreateIncident(r.Context(), req.ToInput())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusCreated, incident)
}

// GetIncident handles GET /incidents/{id} request.
func (h *Handler) GetIncident(w http.ResponseWriter, r *http.Request) {
	incident, err := h.service.GetIncident(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, incident)
}

// ReplaceIncident handles PUT /incidents/{id} request.
func (h *Handler) ReplaceIncident(w http.ResponseWriter, r *http.Request) {
	if !h.found(w, r) {
		return
	}

	var req ReplaceIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	h.update(w, r, req.ToInput())
}

// PatchIncident handles PATCH /incidents/{id} request.
// An empty body changes nothing but still re-saves the record.
func (h *Handler) PatchIncident(w http.ResponseWriter, r *http.Request) {
	if !h.found(w, r) {
		return
	}

	var req PatchIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	h.update(w, r, req.ToInput())
}

// found reports whether the incident addressed by the URL exists and writes
// the error response when it does not. Updates resolve the record before
// looking at the body.
func (h *Handler) found(w http.ResponseWriter, r *http.Request) bool {
	if _, err := h.service.GetIncident(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return false
	}
	return true
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, input UpdateIncidentInput) {
	id := chi.URLParam(r, "id")
	ctx := ctxlog.With(r.Context(), "incident_id", id)

	incident, err := h.service.UpdateIncident(ctx, id, input)
	if err != nil {
		httputil.HandleError(ctx, w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, incident)
}

// DeleteIncident handles DELETE /incidents/{id} request.
func (h *Handler) DeleteIncident(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteIncident(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListChoices handles GET /incidents/choices request.
// Returns the severity and status members with display names for form inputs.
func (h *Handler) ListChoices(w http.ResponseWriter, _ *http.Request) {
	severities := make([]Choice, 0, len(domain.Severities))
	for _, s := range domain.Severities {
		severities = append(severities, Choice{Value: string(s), DisplayName: s.Label()})
	}

	statuses := make([]Choice, 0, len(domain.IncidentStatuses))
	for _, s := range domain.IncidentStatuses {
		statuses = append(statuses, Choice{Value: string(s), DisplayName: s.Label()})
	}

	httputil.JSON(w, http.StatusOK, map[string][]Choice{
		"severity": severities,
		"status":   statuses,
	})
}
