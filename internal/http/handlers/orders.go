package handlers

import (
	"net/http"

	"github.com/NileMind-Team/pahray-sub001/pkg/response"
)

// OrderDetail fetches a single order's full detail through the report
// controller, independent of the current list snapshot.
func (h *Handler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	orderID := readPathString(r, "orderId")
	if orderID == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Order ID is required")
		return
	}

	detail, err := h.Reports.OrderDetails(r.Context(), orderID)
	if err != nil {
		h.respondUpstreamError(w, err, "order detail fetch")
		return
	}

	response.Success(w, detail)
}
