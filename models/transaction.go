package models

import (
	"slices"
	"time"
)

// Transaction is an immutable audit record. The transaction log is the sole
// source of historical truth; the SerialUnit set is a projection of it.
// Records are never edited or deleted once appended.
type Transaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Date          time.Time       `json:"date"`
	ProductID     string          `json:"productId"`
	Quantity      int             `json:"quantity"`
	SerialNumbers []string        `json:"serialNumbers"`
	ToLocation    string          `json:"toLocation,omitempty"`
	FromLocation  string          `json:"fromLocation,omitempty"`
	Customer      string          `json:"customer,omitempty"`
	IsReimportTx  bool            `json:"isReimportTx,omitempty"`
	PlanName      string          `json:"planName,omitempty"`
}

// Touches reports whether the transaction affected the given serial.
func (t *Transaction) Touches(serial string) bool {
	return slices.Contains(t.SerialNumbers, serial)
}
