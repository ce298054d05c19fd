package domain

type UnitStatus string

const (
	UnitStatusAvailable   UnitStatus = "AVAILABLE"
	UnitStatusRented      UnitStatus = "RENTED"
	UnitStatusMaintenance UnitStatus = "MAINTENANCE"
)

// Unit is one physical, individually tracked item belonging to an Equipment.
type Unit struct {
	ID          int32      `json:"id"`
	EquipmentID int32      `json:"equipment_id"`
	SerialCode  string     `json:"serial_code,omitempty"`
	Status      UnitStatus `json:"status"`
	// Damages holds free-form damage notes recorded by return inspections.
	Damages   []string `json:"damages,omitempty"`
	CreatedOn string   `json:"created_on"`
}
