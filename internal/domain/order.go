package domain

import "locagora-backend/internal/dates"

type OrderStatus string

const (
	OrderStatusPending              OrderStatus = "PENDING"
	OrderStatusApproved             OrderStatus = "APPROVED"
	OrderStatusAwaitingSignature    OrderStatus = "AWAITING_SIGNATURE"
	OrderStatusInProgress           OrderStatus = "IN_PROGRESS"
	OrderStatusAwaitingFinalPayment OrderStatus = "AWAITING_FINAL_PAYMENT"
	OrderStatusCompleted            OrderStatus = "COMPLETED"
	OrderStatusCancelled            OrderStatus = "CANCELLED"
)

// HoldingStatuses are the order statuses that reserve unit capacity. An item
// only blocks availability while its parent order is in one of these.
var HoldingStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusApproved,
	OrderStatusAwaitingSignature,
	OrderStatusInProgress,
}

// orderTransitions is the allowed (from -> to) transition table. Transitions
// are driven by external collaborators (payment confirmation, inspection
// filing, signature, admin override) through OrderService.Transition.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:              {OrderStatusApproved, OrderStatusCancelled},
	OrderStatusApproved:             {OrderStatusAwaitingSignature, OrderStatusCancelled},
	OrderStatusAwaitingSignature:    {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress:           {OrderStatusAwaitingFinalPayment, OrderStatusCancelled},
	OrderStatusAwaitingFinalPayment: {OrderStatusCompleted},
}

// CanTransition reports whether moving an order from one status to another is
// allowed by the lifecycle table.
func CanTransition(from, to OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(s OrderStatus) bool {
	return len(orderTransitions[s]) == 0
}

// IsHolding reports whether orders in status s reserve unit capacity.
func IsHolding(s OrderStatus) bool {
	for _, h := range HoldingStatuses {
		if h == s {
			return true
		}
	}
	return false
}

type DeliveryType string

const (
	DeliveryTypePickup   DeliveryType = "PICKUP"
	DeliveryTypeDelivery DeliveryType = "DELIVERY"
)

// Order is a rental contract. Its [StartDate, EndDate] envelope is the min
// start / max end across its items. Deposit is half of the total.
type Order struct {
	ID                    int32        `json:"id"`
	ReferenceCode         string       `json:"reference_code"`
	CustomerID            int32        `json:"customer_id"`
	Status                OrderStatus  `json:"status"`
	StartDate             dates.Date   `json:"start_date"`
	EndDate               dates.Date   `json:"end_date"`
	SubtotalCents         int32        `json:"subtotal_cents"`
	DeliveryFeeCents      int32        `json:"delivery_fee_cents"`
	DepositCents          int32        `json:"deposit_cents"`
	DamageFeeCents        int32        `json:"damage_fee_cents"`
	LateFeeCents          int32        `json:"late_fee_cents"`
	RebookingFeeCents     int32        `json:"rebooking_fee_cents"`
	CancellationFeeCents  int32        `json:"cancellation_fee_cents"`
	RefundedCents         int32        `json:"refunded_cents"`
	DeliveryType          DeliveryType `json:"delivery_type"`
	DeliveryAddress       string       `json:"delivery_address,omitempty"`
	Items                 []OrderItem  `json:"items,omitempty"`
	CreatedOn             string       `json:"created_on"`
	UpdatedOn             string       `json:"updated_on"`
}

// TotalCents is the contract total before accumulated fees.
func (o *Order) TotalCents() int32 {
	return o.SubtotalCents + o.DeliveryFeeCents
}

type OrderItemStatus string

const (
	OrderItemStatusActive         OrderItemStatus = "ACTIVE"
	OrderItemStatusCancelled      OrderItemStatus = "CANCELLED"
	OrderItemStatusClosedWithLoss OrderItemStatus = "CLOSED_WITH_LOSS"
)

// OrderItem reserves one specific unit for one date range. Dates normally
// equal the order envelope but are stored per item.
type OrderItem struct {
	ID               int32           `json:"id"`
	OrderID          int32           `json:"order_id"`
	UnitID           int32           `json:"unit_id"`
	EquipmentID      int32           `json:"equipment_id"`
	StartDate        dates.Date      `json:"start_date"`
	EndDate          dates.Date      `json:"end_date"`
	Status           OrderItemStatus `json:"status"`
	ActualReturnDate *dates.Date     `json:"actual_return_date,omitempty"`
}

// OrderLine is one requested position of a cart: quantity units of an
// equipment for an inclusive date range. It expands into Quantity items at
// order creation.
type OrderLine struct {
	EquipmentID int32
	Quantity    int32
	StartDate   dates.Date
	EndDate     dates.Date
}
