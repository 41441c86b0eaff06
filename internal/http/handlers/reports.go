package handlers

import (
	"net/http"
	"time"

	"github.com/NileMind-Team/pahray-sub001/internal/queue"
	"github.com/NileMind-Team/pahray-sub001/pkg/response"

	"go.uber.org/zap"
)

// SalesReport runs a report fetch for the requested range and returns the
// resulting snapshot. Both bounds are required; validation happens before
// any upstream call.
func (h *Handler) SalesReport(w http.ResponseWriter, r *http.Request) {
	start, err := readDateParam(r, "startDate")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	end, err := readDateParam(r, "endDate")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.Reports.RequestReport(r.Context(), start, end); err != nil {
		h.respondReportError(w, err)
		return
	}

	response.Success(w, h.Reports.Snapshot())
}

// SalesReportSnapshot returns the current snapshot without refetching.
func (h *Handler) SalesReportSnapshot(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.Reports.Snapshot())
}

// SalesReportDocument serves the standalone printable HTML artifact for the
// current snapshot.
func (h *Handler) SalesReportDocument(w http.ResponseWriter, r *http.Request) {
	document, err := h.Reports.Document(time.Now())
	if err != nil {
		h.respondReportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(document))
}

// SalesReportPDF serves the PDF rendering of the current snapshot.
func (h *Handler) SalesReportPDF(w http.ResponseWriter, r *http.Request) {
	payload, err := h.Reports.PDF(time.Now())
	if err != nil {
		h.respondReportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="sales-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// SalesReportPrint dispatches the current document to the print sink. An
// empty snapshot is a warning; a print already in flight is rejected.
func (h *Handler) SalesReportPrint(w http.ResponseWriter, r *http.Request) {
	if err := h.Reports.PrintReport(r.Context()); err != nil {
		h.respondReportError(w, err)
		return
	}
	response.Success(w, map[string]any{"printed": true})
}

// SalesReportArchive stores the current document in the report archive and,
// when a queue is connected, announces it.
func (h *Handler) SalesReportArchive(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		response.Error(w, http.StatusServiceUnavailable, "ARCHIVE_DISABLED", "Report archive is not configured")
		return
	}

	snap := h.Reports.Snapshot()
	if len(snap.Orders) == 0 {
		response.Error(w, http.StatusBadRequest, "EMPTY_REPORT", "no orders to archive")
		return
	}

	generatedAt := time.Now()
	document, err := h.Reports.Document(generatedAt)
	if err != nil {
		h.respondReportError(w, err)
		return
	}

	payload, err := h.Reports.PDF(generatedAt)
	if err != nil {
		h.respondReportError(w, err)
		return
	}

	archiveURL, err := h.Archive.StoreHTML(r.Context(), generatedAt, document)
	if err != nil {
		h.Logger.Error("report archive failed", zapError(err))
		response.Error(w, http.StatusBadGateway, "ARCHIVE_FAILED", "Failed to archive report")
		return
	}
	pdfURL, err := h.Archive.StorePDF(r.Context(), generatedAt, payload)
	if err != nil {
		h.Logger.Error("report pdf archive failed", zapError(err))
		response.Error(w, http.StatusBadGateway, "ARCHIVE_FAILED", "Failed to archive report")
		return
	}

	if h.Queue != nil {
		event := queue.ReportGeneratedEvent{
			DateRange:   snap.Summary.DateRange,
			TotalOrders: snap.Summary.TotalOrders,
			TotalSales:  snap.Summary.TotalSales,
			ArchiveURL:  archiveURL,
			GeneratedAt: generatedAt,
		}
		if err := h.Queue.PublishReportGenerated(r.Context(), event); err != nil {
			// archive already succeeded; the event is best-effort
			h.Logger.Warn("report event publish failed", zapError(err))
		}
	}

	h.Logger.Info("report archived", zap.String("url", archiveURL))
	response.Success(w, map[string]any{"archiveUrl": archiveURL, "pdfUrl": pdfURL})
}

// SalesReportArchiveList returns the archived report artifacts with their
// public URLs.
func (h *Handler) SalesReportArchiveList(w http.ResponseWriter, r *http.Request) {
	if h.Archive == nil {
		response.Error(w, http.StatusServiceUnavailable, "ARCHIVE_DISABLED", "Report archive is not configured")
		return
	}

	keys, err := h.Archive.ListKeys(r.Context(), "reports/sales/")
	if err != nil {
		h.Logger.Error("report archive list failed", zapError(err))
		response.Error(w, http.StatusBadGateway, "ARCHIVE_FAILED", "Failed to list archived reports")
		return
	}

	entries := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, map[string]string{
			"key": key,
			"url": h.Archive.PublicURL(key),
		})
	}
	response.Success(w, map[string]any{"reports": entries})
}
