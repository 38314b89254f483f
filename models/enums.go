package models

import "errors"

type UnitStatus string

const (
	UnitStatusNew  UnitStatus = "NEW"
	UnitStatusSold UnitStatus = "SOLD"
	// Reserved statuses. The ledger never sets these, but older blobs may
	// carry them and they must round-trip unchanged.
	UnitStatusWarranty   UnitStatus = "WARRANTY"
	UnitStatusExhibition UnitStatus = "EXHIBITION"
)

// WarehouseLocationOut is the sentinel location of a sold unit.
const WarehouseLocationOut = "OUT"

type TransactionType string

const (
	TransactionTypeInbound  TransactionType = "INBOUND"
	TransactionTypeOutbound TransactionType = "OUTBOUND"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

type CustomerType string

const (
	CustomerTypeDealer CustomerType = "DEALER"
	CustomerTypeRetail CustomerType = "RETAIL"
)

func (t *CustomerType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "DEALER":
		*t = CustomerTypeDealer
	case "RETAIL":
		*t = CustomerTypeRetail
	default:
		return errors.New("invalid customer type")
	}
	return nil
}

type SalesOrderType string

const (
	SalesOrderTypeSale     SalesOrderType = "SALE"
	SalesOrderTypeTransfer SalesOrderType = "TRANSFER"
)

type SalesOrderStatus string

const (
	SalesOrderStatusPending   SalesOrderStatus = "PENDING"
	SalesOrderStatusCompleted SalesOrderStatus = "COMPLETED"
)
