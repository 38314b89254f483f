package models

import "fmt"

// ReferentialIntegrityError reports a catalog deletion blocked by live
// references (or by the last-warehouse rule).
type ReferentialIntegrityError struct {
	Entity string
	ID     string
	Reason string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s %q: %s", e.Entity, e.ID, e.Reason)
}

// AlreadyInStockError reports an import of a serial that is currently NEW.
type AlreadyInStockError struct {
	Serial string
}

func (e *AlreadyInStockError) Error() string {
	return fmt.Sprintf("serial %q is already in stock", e.Serial)
}

// ReimportLimitError reports a second re-import attempt for a serial.
// A physical unit may re-enter stock at most once over its lifetime.
type ReimportLimitError struct {
	Serial string
}

func (e *ReimportLimitError) Error() string {
	return fmt.Sprintf("serial %q was already re-imported once", e.Serial)
}

// InvalidSelectionError reports an empty batch or an unknown
// product/warehouse/customer passed to an operation requiring one.
type InvalidSelectionError struct {
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return e.Reason
}
