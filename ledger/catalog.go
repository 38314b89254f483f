package ledger

import (
	"context"
	"errors"
	"strings"

	"bitbucket.org/mmdatafocus/roserial_backend/models"
	"bitbucket.org/mmdatafocus/roserial_backend/utils"
)

// Catalog store: CRUD for Product, Warehouse and Customer with referential
// guards. Every successful mutation persists the full snapshot.

func (s *Service) AddProduct(ctx context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := utils.ValidateStruct(p); err != nil {
		return err
	}
	if s.findProduct(p.ID) >= 0 {
		return errors.New("duplicate product id")
	}
	next := s.state.Clone()
	next.Products = append(next.Products, p)
	return s.commit(ctx, next)
}

// UpdateProduct merges the non-nil fields. Unknown id is a no-op.
func (s *Service) UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findProduct(id)
	if i < 0 {
		return nil
	}
	next := s.state.Clone()
	p := next.Products[i]
	p.Model = utils.DereferencePtr(upd.Model, p.Model)
	p.Brand = utils.DereferencePtr(upd.Brand, p.Brand)
	p.Specs = utils.DereferencePtr(upd.Specs, p.Specs)
	next.Products[i] = p
	return s.commit(ctx, next)
}

// DeleteProduct fails while any unit still references the product, sold or
// not: the transaction history must keep resolving.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findProduct(id)
	if i < 0 {
		return nil
	}
	for _, u := range s.state.Units {
		if u.ProductID == id {
			return &models.ReferentialIntegrityError{Entity: "product", ID: id, Reason: "serial units reference it"}
		}
	}
	next := s.state.Clone()
	next.Products = append(next.Products[:i], next.Products[i+1:]...)
	return s.commit(ctx, next)
}

func (s *Service) AddWarehouse(ctx context.Context, w models.Warehouse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := utils.ValidateStruct(w); err != nil {
		return err
	}
	if s.findWarehouse(w.ID) >= 0 {
		return errors.New("duplicate warehouse id")
	}
	if s.findWarehouseByName(w.Name) >= 0 {
		return errors.New("duplicate warehouse name")
	}
	next := s.state.Clone()
	next.Warehouses = append(next.Warehouses, w)
	return s.commit(ctx, next)
}

func (s *Service) UpdateWarehouse(ctx context.Context, id string, upd models.WarehouseUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findWarehouse(id)
	if i < 0 {
		return nil
	}
	next := s.state.Clone()
	w := next.Warehouses[i]
	w.Name = utils.DereferencePtr(upd.Name, w.Name)
	w.Address = utils.DereferencePtr(upd.Address, w.Address)
	if upd.MaxCapacity != nil {
		w.MaxCapacity = upd.MaxCapacity
	}
	next.Warehouses[i] = w
	return s.commit(ctx, next)
}

// DeleteWarehouse fails while NEW units are stored there (units join
// warehouses by name) or when it is the last remaining warehouse.
func (s *Service) DeleteWarehouse(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findWarehouse(id)
	if i < 0 {
		return nil
	}
	if len(s.state.Warehouses) == 1 {
		return &models.ReferentialIntegrityError{Entity: "warehouse", ID: id, Reason: "at least one warehouse must exist"}
	}
	if s.stockAt(s.state.Warehouses[i].Name) > 0 {
		return &models.ReferentialIntegrityError{Entity: "warehouse", ID: id, Reason: "warehouse has stock"}
	}
	next := s.state.Clone()
	next.Warehouses = append(next.Warehouses[:i], next.Warehouses[i+1:]...)
	return s.commit(ctx, next)
}

func (s *Service) AddCustomer(ctx context.Context, c models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := utils.ValidateStruct(c); err != nil {
		return err
	}
	if len(strings.TrimSpace(c.Phone)) > 0 {
		if err := utils.ValidatePhoneNumber(c.Phone, utils.CountryCode); err != nil {
			return err
		}
	}
	if s.findCustomer(c.ID) >= 0 {
		return errors.New("duplicate customer id")
	}
	next := s.state.Clone()
	next.Customers = append(next.Customers, c)
	return s.commit(ctx, next)
}

func (s *Service) UpdateCustomer(ctx context.Context, id string, upd models.CustomerUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findCustomer(id)
	if i < 0 {
		return nil
	}
	if upd.Phone != nil && len(strings.TrimSpace(*upd.Phone)) > 0 {
		if err := utils.ValidatePhoneNumber(*upd.Phone, utils.CountryCode); err != nil {
			return err
		}
	}
	next := s.state.Clone()
	c := next.Customers[i]
	c.Name = utils.DereferencePtr(upd.Name, c.Name)
	c.Phone = utils.DereferencePtr(upd.Phone, c.Phone)
	if upd.Type != nil {
		c.Type = *upd.Type
	}
	next.Customers[i] = c
	return s.commit(ctx, next)
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findCustomer(id)
	if i < 0 {
		return nil
	}
	next := s.state.Clone()
	next.Customers = append(next.Customers[:i], next.Customers[i+1:]...)
	return s.commit(ctx, next)
}
