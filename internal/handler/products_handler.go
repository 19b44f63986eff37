package handler

import (
	"context"
	"net/http"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/internal/service"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

type createProductBody struct {
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Priority   string   `json:"priority"`
	AssignedTo []string `json:"assigned_to"`
}

type advanceProductBody struct {
	ID            string `json:"id"`
	ConfirmLaunch bool   `json:"confirm_launch"`
}

type overrideProductBody struct {
	ID         string   `json:"id"`
	Name       *string  `json:"name"`
	Category   *string  `json:"category"`
	Priority   *string  `json:"priority"`
	Stage      *string  `json:"stage"`
	Progress   *int     `json:"progress"`
	AssignedTo []string `json:"assigned_to"`
}

// Products lists products (GET) or creates one (POST).
func (h *HTTPHandler) Products(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	if r.Method == http.MethodPost {
		h.createProduct(w, r)
		return
	}

	page, pageSize, limit, offset := pagination(r)
	products, total, err := h.pipeline.List(r.Context(), repository.ProductFilter{
		Stage:      optionalQuery(r, "stage"),
		Priority:   optionalQuery(r, "priority"),
		AssignedTo: optionalQuery(r, "assigned_to"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func (h *HTTPHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	uc, err := actor(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var body createProductBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, h.log, err)
		return
	}

	p, err := h.pipeline.Create(r.Context(), &service.CreateProductRequest{
		Name:       body.Name,
		Category:   body.Category,
		Priority:   body.Priority,
		CreatedBy:  uc.UserID,
		AssignedTo: body.AssignedTo,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// GetProduct returns one product.
func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	id, err := requireID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	p, err := h.pipeline.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// AdvanceProduct moves a product one stage forward. Moving from ready to
// launched must be confirmed with confirm_launch.
func (h *HTTPHandler) AdvanceProduct(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	uc, err := actor(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var body advanceProductBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, h.log, err)
		return
	}

	p, err := advanceWithConfirmation(r.Context(), h.pipeline, body.ID, uc.UserID, body.ConfirmLaunch)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// advanceWithConfirmation refuses an unconfirmed launch before advancing.
func advanceWithConfirmation(ctx context.Context, pipeline *service.PipelineService, id, actorID string, confirm bool) (*repository.Product, error) {
	if id == "" {
		return nil, errors.InvalidInput("id", "id is required")
	}
	if !confirm {
		p, err := pipeline.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if service.LaunchConfirmationRequired(p.Stage) {
			return nil, errors.InvalidInput("confirm_launch", "launching a product must be confirmed")
		}
	}
	return pipeline.Advance(ctx, id, actorID)
}

// OverrideProduct applies an administrative edit.
func (h *HTTPHandler) OverrideProduct(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPatch, http.MethodPost) {
		return
	}
	uc, err := actor(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var body overrideProductBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, h.log, err)
		return
	}
	if body.ID == "" {
		writeError(w, h.log, errors.InvalidInput("id", "id is required"))
		return
	}

	p, err := h.pipeline.Override(r.Context(), &service.OverrideProductRequest{
		ProductID:    body.ID,
		ActingUserID: uc.UserID,
		Name:         body.Name,
		Category:     body.Category,
		Priority:     body.Priority,
		Stage:        body.Stage,
		Progress:     body.Progress,
		AssignedTo:   body.AssignedTo,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ProductHistory returns a product's stage intervals.
func (h *HTTPHandler) ProductHistory(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	id, err := requireID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	entries, err := h.pipeline.History(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
