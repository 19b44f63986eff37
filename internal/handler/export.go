package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/internal/service"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

const (
	exportSheet    = "Records"
	exportPageSize = 500
)

var exportHeaders = []string{
	"ID", "Kind", "Status", "Amount", "Transaction Date", "Category", "Vendor ID",
	"Submitted By", "Decided By", "Decided At", "Comment", "Rejection Reason", "Notes", "Proof URL",
}

// ExportRecords writes the records matching the list filters as an xlsx
// workbook.
func (h *HTTPHandler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	records, err := h.collectRecords(r.Context(), recordFilter(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	f, err := buildRecordWorkbook(records)
	if err != nil {
		writeError(w, h.log, errors.Wrap(err, errors.ErrCodeInternal, "failed to build workbook"))
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"records_%s.xlsx\"", time.Now().Format("20060102")))
	if err := writeWorkbook(w, f); err != nil {
		h.log.Error().Err(err).Msg("Failed to write export")
	}
}

func (h *HTTPHandler) collectRecords(ctx context.Context, f repository.RecordFilter) ([]*repository.FinancialRecord, error) {
	var all []*repository.FinancialRecord
	f.Limit = exportPageSize
	for {
		page, total, err := h.approval.List(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize || int64(len(all)) >= total {
			return all, nil
		}
		f.Offset += len(page)
	}
}

func buildRecordWorkbook(records []*repository.FinancialRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(exportSheet)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, err
	}

	for i, title := range exportHeaders {
		if err := setCell(f, i+1, 1, title); err != nil {
			f.Close()
			return nil, err
		}
	}

	for i, rec := range records {
		row := i + 2
		values := []interface{}{
			rec.ID,
			rec.Kind,
			rec.Status,
			service.FormatAmount(rec.AmountMinor),
			rec.TransactionDate,
			rec.Category,
			deref(rec.VendorID),
			rec.SubmittedBy,
			deref(rec.ApprovedBy),
			formatTime(rec.DecidedAt),
			deref(rec.ApprovalComment),
			deref(rec.RejectionReason),
			deref(rec.Notes),
			deref(rec.ProofURL),
		}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 38)
	_ = f.SetColWidth(exportSheet, "B", "D", 12)
	_ = f.SetColWidth(exportSheet, "E", "F", 16)
	_ = f.SetColWidth(exportSheet, "G", "J", 38)
	_ = f.SetColWidth(exportSheet, "K", "N", 30)
	return f, nil
}

func setCell(f *excelize.File, col, row int, v interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(exportSheet, cell, v)
}

func writeWorkbook(w io.Writer, f *excelize.File) error {
	_, err := f.WriteTo(w)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
