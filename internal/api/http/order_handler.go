package http

import (
	"encoding/json"
	"net/http"

	"locagora-backend/internal/dates"
	"locagora-backend/internal/domain"
	"locagora-backend/internal/service"

	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderSvc service.OrderService
	validate *validator.Validate
}

func NewOrderHandler(orderSvc service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc, validate: validator.New()}
}

type orderLineRequest struct {
	EquipmentID int32  `json:"equipment_id" validate:"required,gt=0"`
	Quantity    int32  `json:"quantity" validate:"required,gt=0"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
}

type createOrderRequest struct {
	Lines           []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
	DeliveryType    string             `json:"delivery_type" validate:"required,oneof=PICKUP DELIVERY"`
	DeliveryAddress string             `json:"delivery_address"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.NewValidationError("%s", err.Error()))
		return
	}

	lines := make([]domain.OrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		start, err := dates.Parse(l.StartDate)
		if err != nil {
			writeError(w, domain.NewValidationError("invalid start_date: %v", err))
			return
		}
		end, err := dates.Parse(l.EndDate)
		if err != nil {
			writeError(w, domain.NewValidationError("invalid end_date: %v", err))
			return
		}
		lines = append(lines, domain.OrderLine{
			EquipmentID: l.EquipmentID,
			Quantity:    l.Quantity,
			StartDate:   start,
			EndDate:     end,
		})
	}

	order, err := h.orderSvc.CreateOrder(r.Context(), principalFrom(r), lines, domain.DeliveryType(req.DeliveryType), req.DeliveryAddress)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	order, err := h.orderSvc.GetOrder(r.Context(), principalFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := queryPage(r)
	orders, total, err := h.orderSvc.ListOrders(r.Context(), principalFrom(r), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: orders, Total: total})
}

type transitionRequest struct {
	Expected string `json:"expected" validate:"required"`
	Next     string `json:"next" validate:"required"`
}

// Transition applies a status change guarded by the expected current status;
// a stale expectation returns 409 with the order's actual state.
func (h *OrderHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.NewValidationError("%s", err.Error()))
		return
	}

	order, err := h.orderSvc.Transition(r.Context(), principalFrom(r), id,
		domain.OrderStatus(req.Expected), domain.OrderStatus(req.Next))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	order, err := h.orderSvc.CancelOwn(r.Context(), principalFrom(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type feesRequest struct {
	DamageFeeCents       int32 `json:"damage_fee_cents" validate:"gte=0"`
	LateFeeCents         int32 `json:"late_fee_cents" validate:"gte=0"`
	RebookingFeeCents    int32 `json:"rebooking_fee_cents" validate:"gte=0"`
	CancellationFeeCents int32 `json:"cancellation_fee_cents" validate:"gte=0"`
	RefundedCents        int32 `json:"refunded_cents" validate:"gte=0"`
}

func (h *OrderHandler) AddFees(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req feesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.NewValidationError("%s", err.Error()))
		return
	}

	err = h.orderSvc.AddFees(r.Context(), principalFrom(r), id,
		req.DamageFeeCents, req.LateFeeCents, req.RebookingFeeCents, req.CancellationFeeCents, req.RefundedCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *OrderHandler) CloseItemWithLoss(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.orderSvc.CloseItemWithLoss(r.Context(), principalFrom(r), orderID, itemID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type itemReturnedRequest struct {
	ReturnedOn string `json:"returned_on" validate:"required"`
}

func (h *OrderHandler) MarkItemReturned(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req itemReturnedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, domain.NewValidationError("%s", err.Error()))
		return
	}
	returnedOn, err := dates.Parse(req.ReturnedOn)
	if err != nil {
		writeError(w, domain.NewValidationError("invalid returned_on: %v", err))
		return
	}

	if err := h.orderSvc.MarkItemReturned(r.Context(), principalFrom(r), orderID, itemID, returnedOn); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
