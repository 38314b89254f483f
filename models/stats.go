package models

// InventoryStats are the dashboard aggregates derived from the current unit
// set and the transaction log.
type InventoryStats struct {
	TotalUnits         int           `json:"totalUnits"`
	LowStockModels     []string      `json:"lowStockModels"`
	RecentTransactions []Transaction `json:"recentTransactions"`
}

// PlanSerialProgress classifies one production-plan serial against the
// current unit set.
type PlanSerialProgress struct {
	Serial   string          `json:"serial"`
	State    PlanSerialState `json:"state"`
	Location string          `json:"location,omitempty"`
}
