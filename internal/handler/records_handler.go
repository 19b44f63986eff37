package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/internal/service"
)

type submitRecordBody struct {
	Kind            string          `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate string          `json:"transaction_date"`
	Category        string          `json:"category"`
	VendorID        *string         `json:"vendor_id"`
	ProofURL        *string         `json:"proof_url"`
	Notes           *string         `json:"notes"`
}

type decideRecordBody struct {
	ID              string  `json:"id"`
	Decision        string  `json:"decision"`
	Comment         *string `json:"comment"`
	RejectionReason *string `json:"rejection_reason"`
}

// Records lists records (GET) or submits a new one (POST).
func (h *HTTPHandler) Records(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	if r.Method == http.MethodPost {
		h.submitRecord(w, r)
		return
	}

	page, pageSize, limit, offset := pagination(r)
	f := recordFilter(r)
	f.Limit, f.Offset = limit, offset

	records, total, err := h.approval.List(r.Context(), f)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records":  records,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func recordFilter(r *http.Request) repository.RecordFilter {
	return repository.RecordFilter{
		Kind:        optionalQuery(r, "kind"),
		Status:      optionalQuery(r, "status"),
		SubmittedBy: optionalQuery(r, "submitted_by"),
		FromDate:    optionalQuery(r, "from_date"),
		ToDate:      optionalQuery(r, "to_date"),
	}
}

func (h *HTTPHandler) submitRecord(w http.ResponseWriter, r *http.Request) {
	uc, err := actor(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var body submitRecordBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, h.log, err)
		return
	}

	rec, err := h.approval.Submit(r.Context(), &service.SubmitRecordRequest{
		Kind:            body.Kind,
		Amount:          body.Amount,
		TransactionDate: body.TransactionDate,
		Category:        body.Category,
		VendorID:        body.VendorID,
		ProofURL:        body.ProofURL,
		Notes:           body.Notes,
		SubmittedBy:     uc.UserID,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// GetRecord returns one record.
func (h *HTTPHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	id, err := requireID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	rec, err := h.approval.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DecideRecord approves or rejects a pending record.
func (h *HTTPHandler) DecideRecord(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	uc, err := actor(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var body decideRecordBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, h.log, err)
		return
	}

	rec, err := h.approval.Decide(r.Context(), &service.DecideRequest{
		RecordID:        body.ID,
		Decision:        body.Decision,
		ActingUserID:    uc.UserID,
		Comment:         body.Comment,
		RejectionReason: body.RejectionReason,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteRecord removes a record. Admin only.
func (h *HTTPHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
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

	if err := h.approval.Delete(r.Context(), id, uc.UserID); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
