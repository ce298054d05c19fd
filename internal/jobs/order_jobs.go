package jobs

import (
	"context"
	"time"

	"locagora-backend/internal/logger"
)

// ExpireStaleOrders cancels pending orders whose deposit was never paid
// within the staleness window, releasing their held units. Each order is
// cancelled in its own transaction so one failure never blocks the rest of
// the sweep, and the status guard makes revisiting an already-cancelled
// order a no-op.
func (jr *JobRunner) ExpireStaleOrders() {
	jr.runWithRecovery("ExpireStaleOrders", func() {
		ctx := context.Background()

		window := time.Duration(jr.config.Rental.StaleOrderExpiryMinutes) * time.Minute
		cutoff := time.Now().Add(-window)

		stale, err := jr.store.OrderRepository.ListPendingCreatedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending orders", "error", err)
			return
		}

		cancelled := 0
		for _, order := range stale {
			applied, err := jr.store.OrderRepository.CancelWithItems(ctx, order.ID)
			if err != nil {
				logger.Error("Failed to expire order", "order_id", order.ID, "error", err)
				continue
			}
			if !applied {
				// Paid or already cancelled since the listing; nothing to do.
				continue
			}
			cancelled++
			logger.Debug("Expired unpaid order",
				"order_id", order.ID,
				"reference_code", order.ReferenceCode,
				"created_on", order.CreatedOn)

			customer, err := jr.store.UserRepository.GetByID(ctx, order.CustomerID)
			if err != nil {
				continue
			}
			if err := jr.services.Email.SendOrderExpired(ctx, customer.Email, customer.Name, order.ReferenceCode); err != nil {
				logger.Warn("Failed to send expiry notice", "order_id", order.ID, "error", err)
			}
		}

		logger.Info("Expired unpaid orders", "count", cancelled, "scanned", len(stale))
	})
}
