package models

import "time"

type SalesOrderItem struct {
	ProductID    string `json:"productId"`
	Quantity     int    `json:"quantity"`
	ScannedCount int    `json:"scannedCount"`
}

// SalesOrder is an auxiliary planning document for an upcoming sale or
// inter-warehouse transfer. Orders start PENDING with zero scanned counts.
type SalesOrder struct {
	ID                   string           `json:"id"`
	Code                 string           `json:"code"`
	Type                 SalesOrderType   `json:"type"`
	Status               SalesOrderStatus `json:"status"`
	CustomerName         string           `json:"customerName,omitempty"`
	DestinationWarehouse string           `json:"destinationWarehouse,omitempty"`
	CreatedDate          time.Time        `json:"createdDate"`
	Items                []SalesOrderItem `json:"items"`
}
