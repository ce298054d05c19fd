package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"locagora-backend/internal/dates"
	"locagora-backend/internal/domain"
	"locagora-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type CalendarHandler struct {
	calendarSvc service.CalendarService
	validate    *validator.Validate
}

func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc, validate: validator.New()}
}

func pathYearMonth(r *http.Request) (int, int, error) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil || year < 2000 || year > 2200 {
		return 0, 0, domain.NewValidationError("invalid year %q", vars["year"])
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, domain.NewValidationError("invalid month %q", vars["month"])
	}
	return year, month, nil
}

// MonthStatus returns the resolved day-by-day status of one month. Customers
// only see months an admin has published.
func (h *CalendarHandler) MonthStatus(w http.ResponseWriter, r *http.Request) {
	year, month, err := pathYearMonth(r)
	if err != nil {
		writeError(w, err)
		return
	}
	days, err := h.calendarSvc.MonthStatus(r.Context(), principalFrom(r), year, month)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (h *CalendarHandler) ListPublishedMonths(w http.ResponseWriter, r *http.Request) {
	months, err := h.calendarSvc.ListPublishedMonths(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, months)
}

func (h *CalendarHandler) PublishMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := pathYearMonth(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.calendarSvc.PublishMonth(r.Context(), principalFrom(r), year, month); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type exceptionRequest struct {
	Date        string `json:"date" validate:"required"`
	Kind        string `json:"kind" validate:"required,oneof=HOLIDAY STOPPAGE EXTRA OTHER"`
	Open        bool   `json:"open"`
	Description string `json:"description"`
}

func (h *CalendarHandler) SetException(w http.ResponseWriter, r *http.Request) {
	var req exceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.NewValidationError("%s", err.Error()))
		return
	}
	day, err := dates.Parse(req.Date)
	if err != nil {
		writeError(w, domain.NewValidationError("invalid date: %v", err))
		return
	}

	exc := &domain.CalendarException{
		Date:        day,
		Kind:        domain.ExceptionKind(req.Kind),
		Open:        req.Open,
		Description: req.Description,
	}
	if err := h.calendarSvc.SetException(r.Context(), principalFrom(r), exc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exc)
}

func (h *CalendarHandler) RemoveException(w http.ResponseWriter, r *http.Request) {
	day, err := dates.Parse(mux.Vars(r)["date"])
	if err != nil {
		writeError(w, domain.NewValidationError("invalid date: %v", err))
		return
	}
	if err := h.calendarSvc.RemoveException(r.Context(), principalFrom(r), day); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type weeklyEntryRequest struct {
	Weekday  int    `json:"weekday" validate:"gte=0,lte=6"`
	OpensAt  string `json:"opens_at"`
	ClosesAt string `json:"closes_at"`
	Closed   bool   `json:"closed"`
}

func (h *CalendarHandler) SetWeeklyEntry(w http.ResponseWriter, r *http.Request) {
	var req weeklyEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.NewValidationError("%s", err.Error()))
		return
	}

	entry := &domain.WeeklyScheduleEntry{
		Weekday:  time.Weekday(req.Weekday),
		OpensAt:  req.OpensAt,
		ClosesAt: req.ClosesAt,
		Closed:   req.Closed,
	}
	if err := h.calendarSvc.SetWeeklyEntry(r.Context(), principalFrom(r), entry); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
