package models

import "time"

// SerialUnit tracks one physical device, keyed by its immutable serial
// number. A serial is never reused for a different product.
//
// Invariants maintained by the ledger:
//   - status SOLD  <=> warehouseLocation == "OUT"
//   - status NEW   => warehouseLocation names a real warehouse
//   - IsReimported is sticky: once true the SOLD->NEW edge is closed forever
type SerialUnit struct {
	SerialNumber      string     `json:"serialNumber"`
	ProductID         string     `json:"productId"`
	Status            UnitStatus `json:"status"`
	WarehouseLocation string     `json:"warehouseLocation"`
	ImportDate        time.Time  `json:"importDate"`
	ExportDate        *time.Time `json:"exportDate,omitempty"`
	CustomerName      string     `json:"customerName,omitempty"`
	IsReimported      bool       `json:"isReimported"`
}
