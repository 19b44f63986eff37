package handler

import (
	"net/http"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/internal/service"
)

type vendorBody struct {
	Name        string  `json:"name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Category    string  `json:"category"`
	Notes       *string `json:"notes"`
}

func (b *vendorBody) request() *service.VendorRequest {
	return &service.VendorRequest{
		Name:        b.Name,
		ContactName: b.ContactName,
		Email:       b.Email,
		Phone:       b.Phone,
		Category:    b.Category,
		Notes:       b.Notes,
	}
}

// Vendors lists vendors (GET) or creates one (POST).
func (h *HTTPHandler) Vendors(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	if r.Method == http.MethodPost {
		uc, err := actor(r)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		var body vendorBody
		if err := decodeJSON(w, r, &body); err != nil {
			writeError(w, h.log, err)
			return
		}
		v, err := h.vendors.Create(r.Context(), body.request(), uc.UserID)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusCreated, v)
		return
	}

	page, pageSize, limit, offset := pagination(r)
	vendors, total, err := h.vendors.List(r.Context(), repository.VendorFilter{
		Category: optionalQuery(r, "category"),
		Search:   optionalQuery(r, "search"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"vendors":  vendors,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// GetVendor returns one vendor.
func (h *HTTPHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	id, err := requireID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	v, err := h.vendors.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// UpdateVendor overwrites a vendor's editable fields.
func (h *HTTPHandler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost, http.MethodPut) {
		return
	}
	uc, err := actor(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	id, err := requireID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	var body vendorBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, h.log, err)
		return
	}

	v, err := h.vendors.Update(r.Context(), id, body.request(), uc.UserID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DeleteVendor removes a vendor. Admin only.
func (h *HTTPHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodDelete) {
		return
	}
	uc, err := actor(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	id, err := requireID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.vendors.Delete(r.Context(), id, uc.UserID); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
