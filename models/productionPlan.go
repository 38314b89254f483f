package models

import "time"

// ProductionPlan is a named batch of serials pre-declared for production
// tracking. Plans reference the ledger through serial lookups but do not
// participate in the unit state machine.
type ProductionPlan struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ProductID   string    `json:"productId"`
	CreatedDate time.Time `json:"createdDate"`
	Serials     []string  `json:"serials"`
}

// PlanSerialState classifies one plan serial against the current unit set.
type PlanSerialState string

const (
	PlanSerialPending PlanSerialState = "PENDING"  // not yet imported
	PlanSerialInStock PlanSerialState = "IN_STOCK" // imported, still NEW
	PlanSerialSold    PlanSerialState = "SOLD"
)
