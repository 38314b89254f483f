package ledger

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/roserial_backend/models"
	"bitbucket.org/mmdatafocus/roserial_backend/utils"
)

// Production plans and sales orders are auxiliary planning documents. They
// reference the ledger through serial lookups but never touch the unit state
// machine.

func (s *Service) AddProductionPlan(ctx context.Context, name, productID string, serials []string) (*models.ProductionPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findProduct(productID) < 0 {
		return nil, &models.InvalidSelectionError{Reason: fmt.Sprintf("unknown product %q", productID)}
	}
	plan := models.ProductionPlan{
		ID:          s.newID(),
		Name:        name,
		ProductID:   productID,
		CreatedDate: s.now(),
		Serials:     append([]string(nil), serials...),
	}
	next := s.state.Clone()
	next.ProductionPlans = append([]models.ProductionPlan{plan}, next.ProductionPlans...)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdateProductionPlan replaces name, product and serial list. Unknown id is
// a no-op.
func (s *Service) UpdateProductionPlan(ctx context.Context, id, name, productID string, serials []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.state.ProductionPlans {
		if p.ID != id {
			continue
		}
		next := s.state.Clone()
		p.Name = name
		p.ProductID = productID
		p.Serials = append([]string(nil), serials...)
		next.ProductionPlans[i] = p
		return s.commit(ctx, next)
	}
	return nil
}

func (s *Service) DeleteProductionPlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.state.ProductionPlans {
		if p.ID != id {
			continue
		}
		next := s.state.Clone()
		next.ProductionPlans = append(next.ProductionPlans[:i], next.ProductionPlans[i+1:]...)
		return s.commit(ctx, next)
	}
	return nil
}

// GetPlanProgress classifies every serial of a plan against the unit set:
// pending (never imported), in stock, or sold.
func (s *Service) GetPlanProgress(planID string) ([]models.PlanSerialProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.state.ProductionPlans {
		if p.ID != planID {
			continue
		}
		out := make([]models.PlanSerialProgress, 0, len(p.Serials))
		for _, serial := range p.Serials {
			prog := models.PlanSerialProgress{Serial: serial, State: models.PlanSerialPending}
			if i, ok := s.unitIdx[serial]; ok {
				u := s.state.Units[i]
				prog.Location = u.WarehouseLocation
				if u.Status == models.UnitStatusSold {
					prog.State = models.PlanSerialSold
				} else {
					prog.State = models.PlanSerialInStock
				}
			}
			out = append(out, prog)
		}
		return out, nil
	}
	return nil, utils.ErrorRecordNotFound
}

// AddSalesOrder opens a PENDING order. SALE orders carry the customer name,
// TRANSFER orders the destination warehouse; scanned counts start at zero.
func (s *Service) AddSalesOrder(ctx context.Context, code, targetName string, items []models.SalesOrderItem, orderType models.SalesOrderType, destination string) (*models.SalesOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := models.SalesOrder{
		ID:          s.newID(),
		Code:        code,
		Type:        orderType,
		Status:      models.SalesOrderStatusPending,
		CreatedDate: s.now(),
	}
	switch orderType {
	case models.SalesOrderTypeSale:
		order.CustomerName = targetName
	case models.SalesOrderTypeTransfer:
		order.DestinationWarehouse = destination
	default:
		return nil, &models.InvalidSelectionError{Reason: fmt.Sprintf("unknown order type %q", orderType)}
	}
	order.Items = make([]models.SalesOrderItem, 0, len(items))
	for _, it := range items {
		it.ScannedCount = 0
		order.Items = append(order.Items, it)
	}

	next := s.state.Clone()
	next.SalesOrders = append([]models.SalesOrder{order}, next.SalesOrders...)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) DeleteSalesOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.state.SalesOrders {
		if o.ID != id {
			continue
		}
		next := s.state.Clone()
		next.SalesOrders = append(next.SalesOrders[:i], next.SalesOrders[i+1:]...)
		return s.commit(ctx, next)
	}
	return nil
}
