// Package standards provides HTTP handlers and business logic for compliance standards.
package standards

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/iomzzz/Standards-final/internal/pkg/ctxlog"
	"github.com/iomzzz/Standards-final/internal/pkg/httputil"
)

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrStandardNotFound, Status: http.StatusNotFound, Message: "standard not found"},
}

// Handler handles HTTP requests for the standards module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new standards handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: httputil.NewValidator(),
	}
}

// RegisterRoutes registers all HTTP routes for the standards module.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/standards", func(r chi.Router) {
		r.Get("/", h.ListStandards)
		r.Post("/", h.CreateStandard)
		r.Get("/{id}", h.GetStandard)
		r.Put("/{id}", h.ReplaceStandard)
		r.Patch("/{id}", h.PatchStandard)
		r.Delete("/{id}", h.DeleteStandard)
	})
}

// CreateStandardRequest represents the request body for creating a standard.
// Server-owned fields (id, last_updated) are not decoded.
type CreateStandardRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Category string `json:"category" validate:"required,max=100"`
	Content  string `json:"content" validate:"required"`
	Version  string `json:"version" validate:"omitempty,max=20"`
}

// ToInput converts the request to service input.
func (r *CreateStandardRequest) ToInput() CreateStandardInput {
	return CreateStandardInput{
		Title:    r.Title,
		Category: r.Category,
		Content:  r.Content,
		Version:  r.Version,
	}
}

// ReplaceStandardRequest represents the request body for a full update (PUT).
// An omitted version keeps the stored one.
type ReplaceStandardRequest struct {
	Title    string  `json:"title" validate:"required,max=200"`
	Category string  `json:"category" validate:"required,max=100"`
	Content  string  `json:"content" validate:"required"`
	Version  *string `json:"version" validate:"omitnil,min=1,max=20"`
}

// ToInput converts the request to service input.
func (r *ReplaceStandardRequest) ToInput() UpdateStandardInput {
	return UpdateStandardInput{
		Title:    &r.Title,
		Category: &r.Category,
		Content:  &r.Content,
		Version:  r.Version,
	}
}

// PatchStandardRequest represents the request body for a partial update (PATCH).
type PatchStandardRequest struct {
	Title    *string `json:"title" validate:"omitnil,min=1,max=200"`
	Category *string `json:"category" validate:"omitnil,min=1,max=100"`
	Content  *string `json:"content" validate:"omitnil,min=1"`
	Version  *string `json:"version" validate:"omitnil,min=1,max=20"`
}

// ToInput converts the request to service input.
func (r *PatchStandardRequest) ToInput() UpdateStandardInput {
	return UpdateStandardInput{
		Title:    r.Title,
		Category: r.Category,
		Content:  r.Content,
		Version:  r.Version,
	}
}

// ListStandards handles GET /standards request.
func (h *Handler) ListStandards(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListStandards(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, list)
}

// CreateStandard handles POST /standards request.
func (h *Handler) CreateStandard(w http.ResponseWriter, r *http.Request) {
	var req CreateStandardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	standard, err := h.service.CreateStandard(r.Context(), req.ToInput())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusCreated, standard)
}

// GetStandard handles GET /standards/{id} request.
func (h *Handler) GetStandard(w http.ResponseWriter, r *http.Request) {
	standard, err := h.service.GetStandard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, standard)
}

// ReplaceStandard handles PUT /standards/{id} request.
func (h *Handler) ReplaceStandard(w http.ResponseWriter, r *http.Request) {
	if !h.found(w, r) {
		return
	}

	var req ReplaceStandardRequest
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

// PatchStandard handles PATCH /standards/{id} request.
// An empty body changes nothing but still re-saves the record.
func (h *Handler) PatchStandard(w http.ResponseWriter, r *http.Request) {
	if !h.found(w, r) {
		return
	}

	var req PatchStandardRequest
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

// found reports whether the standard addressed by the URL exists and writes
// the error response when it does not. Updates resolve the record before
// looking at the body.
func (h *Handler) found(w http.ResponseWriter, r *http.Request) bool {
	if _, err := h.service.GetStandard(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return false
	}
	return true
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, input UpdateStandardInput) {
	id := chi.URLParam(r, "id")
	ctx := ctxlog.With(r.Context(), "standard_id", id)

	standard, err := h.service.UpdateStandard(ctx, id, input)
	if err != nil {
		httputil.HandleError(ctx, w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, standard)
}

// DeleteStandard handles DELETE /standards/{id} request.
func (h *Handler) DeleteStandard(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteStandard(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
