package http

import (
	"net/http"
	"strconv"

	"locagora-backend/internal/dates"
	"locagora-backend/internal/domain"
	"locagora-backend/internal/service"
)

type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

func queryDateRange(r *http.Request) (dates.Date, dates.Date, error) {
	start, err := dates.Parse(r.URL.Query().Get("start"))
	if err != nil {
		return dates.Date{}, dates.Date{}, domain.NewValidationError("invalid start date: %v", err)
	}
	end, err := dates.Parse(r.URL.Query().Get("end"))
	if err != nil {
		return dates.Date{}, dates.Date{}, domain.NewValidationError("invalid end date: %v", err)
	}
	return start, end, nil
}

type availabilityResponse struct {
	EquipmentID       int32      `json:"equipment_id"`
	Start             dates.Date `json:"start"`
	End               dates.Date `json:"end"`
	AvailableQuantity int32      `json:"available_quantity"`
}

// CheckRange reports how many units of the equipment are free across the
// whole inclusive range.
func (h *AvailabilityHandler) CheckRange(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	start, end, err := queryDateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}

	available, err := h.availabilitySvc.CheckRange(r.Context(), id, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{
		EquipmentID:       id,
		Start:             start,
		End:               end,
		AvailableQuantity: available,
	})
}

// Daily returns a per-day remaining count for the range. Closed days report
// zero.
func (h *AvailabilityHandler) Daily(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	start, end, err := queryDateRange(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var excludeOrderID int32
	if raw := r.URL.Query().Get("exclude_order"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			writeError(w, domain.NewValidationError("invalid exclude_order %q", raw))
			return
		}
		excludeOrderID = int32(parsed)
	}

	days, err := h.availabilitySvc.Daily(r.Context(), id, start, end, excludeOrderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}
