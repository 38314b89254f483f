package ledger

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/roserial_backend/models"
	"github.com/sirupsen/logrus"
)

// allocation is one (warehouse, serial subset) group produced by the
// spillover walk. Each group becomes exactly one INBOUND transaction.
type allocation struct {
	warehouse string
	serials   []string
}

// allocate walks the warehouse list starting from the initial warehouse
// (falling back to the first when the name is unknown) and fills each one up
// to its remaining capacity. Serials left over after every warehouse is full
// are force-assigned to the last warehouse touched: capacity is a soft
// limit, never a hard block.
func (s *Service) allocate(serials []string, initialWarehouse string) []allocation {
	whs := s.state.Warehouses
	start := 0
	for i, w := range whs {
		if w.Name == initialWarehouse {
			start = i
			break
		}
	}
	ordered := append(append([]models.Warehouse(nil), whs[start:]...), whs[:start]...)

	var groups []allocation
	remaining := serials
	for _, w := range ordered {
		if len(remaining) == 0 {
			break
		}
		take := len(remaining)
		if w.MaxCapacity != nil {
			space := *w.MaxCapacity - s.stockAt(w.Name)
			if space < 0 {
				space = 0
			}
			if take > space {
				take = space
			}
		}
		if take == 0 {
			continue
		}
		groups = append(groups, allocation{warehouse: w.Name, serials: remaining[:take]})
		remaining = remaining[take:]
	}
	if len(remaining) > 0 {
		if len(groups) > 0 {
			last := &groups[len(groups)-1]
			last.serials = append(append([]string(nil), last.serials...), remaining...)
		} else {
			name := initialWarehouse
			if len(ordered) > 0 {
				name = ordered[0].Name
			}
			groups = append(groups, allocation{warehouse: name, serials: remaining})
		}
	}
	return groups
}

// ImportUnits brings a batch of serials into stock, spilling across
// warehouses by capacity. One INBOUND transaction is appended per warehouse
// group. The whole call is all-or-nothing: the first invalid serial in batch
// order aborts it with no mutation.
//
// Re-entry rules are engine-enforced regardless of caller diligence: a
// serial currently NEW fails with AlreadyInStockError, a serial that already
// used its one re-import fails with ReimportLimitError.
func (s *Service) ImportUnits(ctx context.Context, productID string, serials []string, initialWarehouse string, planName string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(serials) == 0 {
		return nil, &models.InvalidSelectionError{Reason: "empty serial batch"}
	}
	if s.findProduct(productID) < 0 {
		return nil, &models.InvalidSelectionError{Reason: fmt.Sprintf("unknown product %q", productID)}
	}

	groups := s.allocate(serials, initialWarehouse)
	now := s.now()

	next := s.state.Clone()
	idx := make(map[string]int, len(next.Units))
	for i, u := range next.Units {
		idx[u.SerialNumber] = i
	}

	txs := make([]models.Transaction, 0, len(groups))
	for _, g := range groups {
		reimport := false
		for _, serial := range g.serials {
			i, seen := idx[serial]
			if !seen {
				next.Units = append(next.Units, models.SerialUnit{
					SerialNumber:      serial,
					ProductID:         productID,
					Status:            models.UnitStatusNew,
					WarehouseLocation: g.warehouse,
					ImportDate:        now,
				})
				idx[serial] = len(next.Units) - 1
				continue
			}
			u := next.Units[i]
			switch {
			case u.Status == models.UnitStatusSold && u.IsReimported:
				return nil, &models.ReimportLimitError{Serial: serial}
			case u.Status == models.UnitStatusSold:
				u.Status = models.UnitStatusNew
				u.WarehouseLocation = g.warehouse
				u.ImportDate = now
				u.IsReimported = true
				next.Units[i] = u
				reimport = true
			default:
				return nil, &models.AlreadyInStockError{Serial: serial}
			}
		}
		txs = append(txs, models.Transaction{
			ID:            s.newID(),
			Type:          models.TransactionTypeInbound,
			Date:          now,
			ProductID:     productID,
			Quantity:      len(g.serials),
			SerialNumbers: append([]string(nil), g.serials...),
			ToLocation:    g.warehouse,
			IsReimportTx:  reimport,
			PlanName:      planName,
		})
	}

	next.Transactions = append(append([]models.Transaction(nil), txs...), next.Transactions...)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"product":    productID,
		"quantity":   len(serials),
		"warehouses": len(txs),
	}).Info("ledger.import")
	return txs, nil
}

// TransferUnits relocates a batch to another warehouse. No capacity check is
// enforced on transfer. FromLocation on the transaction is the first matched
// unit's prior location, a representative value only.
func (s *Service) TransferUnits(ctx context.Context, productID string, serials []string, toLocation string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(serials) == 0 {
		return models.Transaction{}, &models.InvalidSelectionError{Reason: "empty serial batch"}
	}
	if s.findProduct(productID) < 0 {
		return models.Transaction{}, &models.InvalidSelectionError{Reason: fmt.Sprintf("unknown product %q", productID)}
	}
	if s.findWarehouseByName(toLocation) < 0 {
		return models.Transaction{}, &models.InvalidSelectionError{Reason: fmt.Sprintf("unknown warehouse %q", toLocation)}
	}

	next := s.state.Clone()
	fromLocation := ""
	for _, serial := range serials {
		i, ok := s.unitIdx[serial]
		if !ok {
			continue
		}
		if fromLocation == "" {
			fromLocation = next.Units[i].WarehouseLocation
		}
		next.Units[i].WarehouseLocation = toLocation
	}

	tx := models.Transaction{
		ID:            s.newID(),
		Type:          models.TransactionTypeTransfer,
		Date:          s.now(),
		ProductID:     productID,
		Quantity:      len(serials),
		SerialNumbers: append([]string(nil), serials...),
		FromLocation:  fromLocation,
		ToLocation:    toLocation,
	}
	next.Transactions = append([]models.Transaction{tx}, next.Transactions...)
	if err := s.commit(ctx, next); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// ExportUnits marks a batch sold to a customer. The engine trusts the batch
// to contain NEW serials; callers screen with GetUnitBySerial first.
func (s *Service) ExportUnits(ctx context.Context, productID string, serials []string, customerName string, fromLocation string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(serials) == 0 {
		return models.Transaction{}, &models.InvalidSelectionError{Reason: "empty serial batch"}
	}
	if s.findProduct(productID) < 0 {
		return models.Transaction{}, &models.InvalidSelectionError{Reason: fmt.Sprintf("unknown product %q", productID)}
	}
	if s.findCustomerByName(customerName) < 0 {
		return models.Transaction{}, &models.InvalidSelectionError{Reason: fmt.Sprintf("unknown customer %q", customerName)}
	}

	now := s.now()
	next := s.state.Clone()
	for _, serial := range serials {
		i, ok := s.unitIdx[serial]
		if !ok {
			continue
		}
		u := next.Units[i]
		u.Status = models.UnitStatusSold
		exportDate := now
		u.ExportDate = &exportDate
		u.CustomerName = customerName
		u.WarehouseLocation = models.WarehouseLocationOut
		next.Units[i] = u
	}

	tx := models.Transaction{
		ID:            s.newID(),
		Type:          models.TransactionTypeOutbound,
		Date:          now,
		ProductID:     productID,
		Quantity:      len(serials),
		SerialNumbers: append([]string(nil), serials...),
		FromLocation:  fromLocation,
		Customer:      customerName,
	}
	next.Transactions = append([]models.Transaction{tx}, next.Transactions...)
	if err := s.commit(ctx, next); err != nil {
		return models.Transaction{}, err
	}
	s.logger.WithFields(logrus.Fields{
		"product":  productID,
		"quantity": len(serials),
		"customer": customerName,
	}).Info("ledger.export")
	return tx, nil
}
