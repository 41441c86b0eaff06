package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/NileMind-Team/pahray-sub001/internal/report"
	"github.com/NileMind-Team/pahray-sub001/internal/upstream"
	"github.com/NileMind-Team/pahray-sub001/pkg/response"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func zapError(err error) zap.Field {
	return zap.Error(err)
}

func readPathString(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// readDateParam parses an optional yyyy-MM-dd (or RFC3339) query value. A
// missing parameter comes back as the zero time; the report controller
// decides whether that is acceptable.
func readDateParam(r *http.Request, key string) (time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Time{}, errors.New("invalid date, expected yyyy-MM-dd")
}

// respondReportError maps the report error taxonomy onto the response
// envelope: validation warnings are 4xx and never logged as failures,
// everything else is an upstream problem.
func (h *Handler) respondReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, report.ErrMissingDateBound), errors.Is(err, report.ErrInvalidDateRange):
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, report.ErrNoOrders):
		response.Error(w, http.StatusBadRequest, "EMPTY_REPORT", err.Error())
	case errors.Is(err, report.ErrPrintBusy):
		response.Error(w, http.StatusConflict, "PRINT_IN_PROGRESS", err.Error())
	default:
		h.Logger.Error("report operation failed", zapError(err))
		response.Error(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Operation failed")
	}
}

// respondUpstreamError surfaces a management pass-through failure, keeping
// the backend's status code when it sent one.
func (h *Handler) respondUpstreamError(w http.ResponseWriter, err error, operation string) {
	var upErr *upstream.Error
	if errors.As(err, &upErr) && upErr.Status >= 400 && upErr.Status < 500 {
		code := upErr.Code
		if code == "" {
			code = "UPSTREAM_REJECTED"
		}
		response.Error(w, upErr.Status, code, upErr.Message)
		return
	}
	h.Logger.Error(operation+" failed", zapError(err))
	response.Error(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Backend request failed")
}
