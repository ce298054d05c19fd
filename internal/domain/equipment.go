package domain

// Equipment is a rentable SKU. Physical stock is tracked per Unit; TotalUnits
// is a denormalized mirror of the unit count and must be updated in the same
// transaction as any unit-count mutation.
type Equipment struct {
	ID              int32   `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	DailyPriceCents int32   `json:"daily_price_cents"`
	TotalUnits      int32   `json:"total_units"`
	CreatedOn       string  `json:"created_on"`
	DeletedOn       *string `json:"deleted_on,omitempty"`
}
