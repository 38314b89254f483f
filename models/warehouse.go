package models

// Warehouse is a physical storage location.
//
// Name, not ID, is the join key from SerialUnit.WarehouseLocation (kept for
// compatibility with the persisted blob). Renaming a warehouse orphans the
// location strings on historical units and transactions.
type Warehouse struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address,omitempty"`
	// MaxCapacity bounds the NEW units the allocation engine will place here.
	// Absent means unbounded. Soft limit: overflow is force-placed when every
	// warehouse is full.
	MaxCapacity *int `json:"maxCapacity,omitempty"`
}

// WarehouseUpdate carries partial fields for UpdateWarehouse.
type WarehouseUpdate struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	MaxCapacity *int    `json:"maxCapacity"`
}
