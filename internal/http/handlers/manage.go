package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/NileMind-Team/pahray-sub001/internal/locale"
	"github.com/NileMind-Team/pahray-sub001/internal/model"
	"github.com/NileMind-Team/pahray-sub001/pkg/response"
)

// Management surfaces (branches, delivery areas, shifts) are owned by the
// ordering backend; these handlers validate admin input and pass it
// through.

func (h *Handler) BranchesList(w http.ResponseWriter, r *http.Request) {
	branches, err := h.Backend.ListBranches(r.Context())
	if err != nil {
		h.respondUpstreamError(w, err, "branches list")
		return
	}
	response.Success(w, branches)
}

func (h *Handler) BranchSave(w http.ResponseWriter, r *http.Request) {
	var branch model.Branch
	if err := json.NewDecoder(r.Body).Decode(&branch); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid branch payload")
		return
	}
	branch.ID = readPathString(r, "branchId")
	if strings.TrimSpace(branch.Name) == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Branch name is required")
		return
	}

	saved, err := h.Backend.SaveBranch(r.Context(), branch)
	if err != nil {
		h.respondUpstreamError(w, err, "branch save")
		return
	}
	response.Success(w, saved)
}

func (h *Handler) BranchDelete(w http.ResponseWriter, r *http.Request) {
	branchID := readPathString(r, "branchId")
	if branchID == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Branch ID is required")
		return
	}
	if err := h.Backend.DeleteBranch(r.Context(), branchID); err != nil {
		h.respondUpstreamError(w, err, "branch delete")
		return
	}
	response.Success(w, map[string]any{"deleted": true})
}

func (h *Handler) DeliveryAreasList(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Backend.ListDeliveryAreas(r.Context())
	if err != nil {
		h.respondUpstreamError(w, err, "delivery areas list")
		return
	}
	response.Success(w, areas)
}

func (h *Handler) DeliveryAreaSave(w http.ResponseWriter, r *http.Request) {
	var area model.DeliveryArea
	if err := json.NewDecoder(r.Body).Decode(&area); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid delivery area payload")
		return
	}
	area.ID = readPathString(r, "areaId")
	if strings.TrimSpace(area.Name) == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Area name is required")
		return
	}
	if area.Fee < 0 {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Delivery fee must not be negative")
		return
	}

	saved, err := h.Backend.SaveDeliveryArea(r.Context(), area)
	if err != nil {
		h.respondUpstreamError(w, err, "delivery area save")
		return
	}
	response.Success(w, saved)
}

func (h *Handler) DeliveryAreaDelete(w http.ResponseWriter, r *http.Request) {
	areaID := readPathString(r, "areaId")
	if areaID == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Area ID is required")
		return
	}
	if err := h.Backend.DeleteDeliveryArea(r.Context(), areaID); err != nil {
		h.respondUpstreamError(w, err, "delivery area delete")
		return
	}
	response.Success(w, map[string]any{"deleted": true})
}

// shiftView augments the stored HH:mm bounds with their localized 12-hour
// display form.
type shiftView struct {
	model.Shift
	OpensAtDisplay  string `json:"opensAtDisplay"`
	ClosesAtDisplay string `json:"closesAtDisplay"`
}

func (h *Handler) shiftViews(shifts []model.Shift) []shiftView {
	views := make([]shiftView, 0, len(shifts))
	for _, shift := range shifts {
		views = append(views, shiftView{
			Shift:           shift,
			OpensAtDisplay:  locale.FormatClockTime(shift.OpensAt, h.Config.TimeOffsetHours),
			ClosesAtDisplay: locale.FormatClockTime(shift.ClosesAt, h.Config.TimeOffsetHours),
		})
	}
	return views
}

func (h *Handler) ShiftsList(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.Backend.ListShifts(r.Context())
	if err != nil {
		h.respondUpstreamError(w, err, "shifts list")
		return
	}
	response.Success(w, h.shiftViews(shifts))
}

func validShiftTime(value string) bool {
	_, err := time.Parse("15:04", strings.TrimSpace(value))
	return err == nil
}

func (h *Handler) ShiftSave(w http.ResponseWriter, r *http.Request) {
	var shift model.Shift
	if err := json.NewDecoder(r.Body).Decode(&shift); err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid shift payload")
		return
	}
	shift.ID = readPathString(r, "shiftId")
	if strings.TrimSpace(shift.Name) == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Shift name is required")
		return
	}
	if !validShiftTime(shift.OpensAt) || !validShiftTime(shift.ClosesAt) {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Shift times must be HH:mm")
		return
	}

	saved, err := h.Backend.SaveShift(r.Context(), shift)
	if err != nil {
		h.respondUpstreamError(w, err, "shift save")
		return
	}
	response.Success(w, h.shiftViews([]model.Shift{*saved})[0])
}

func (h *Handler) ShiftDelete(w http.ResponseWriter, r *http.Request) {
	shiftID := readPathString(r, "shiftId")
	if shiftID == "" {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Shift ID is required")
		return
	}
	if err := h.Backend.DeleteShift(r.Context(), shiftID); err != nil {
		h.respondUpstreamError(w, err, "shift delete")
		return
	}
	response.Success(w, map[string]any{"deleted": true})
}
