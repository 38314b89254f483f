package ledger

import (
	"context"
	"sync"
	"time"

	"bitbucket.org/mmdatafocus/roserial_backend/config"
	"bitbucket.org/mmdatafocus/roserial_backend/models"
	"bitbucket.org/mmdatafocus/roserial_backend/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service is the serial-unit inventory ledger: catalog store, unit state
// machine and transaction log in one shared object. Construct it once at
// startup and pass it by reference to every consumer; it is the sole mutator
// of the unit set and the log.
//
// All operations are serialized. Mutations are computed into a working copy,
// persisted, and only then swapped into memory, so a failed call leaves both
// memory and the stored blob untouched.
type Service struct {
	mu     sync.RWMutex
	store  storage.SnapshotStore
	logger *logrus.Logger

	state   *models.Snapshot
	unitIdx map[string]int // serialNumber -> index into state.Units

	now   func() time.Time
	newID func() string
}

func New(store storage.SnapshotStore, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = config.GetLogger()
	}
	return &Service{
		store:   store,
		logger:  logger,
		state:   models.DefaultSnapshot(),
		unitIdx: map[string]int{},
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Load reads the stored snapshot. A missing or undecodable blob is not
// fatal: the ledger seeds the default catalog and persists it.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok, err := s.store.Load(ctx)
	if err != nil {
		config.LogError(s.logger, "ledger", "Load", "falling back to default catalog", nil, err)
	}
	if err != nil || !ok {
		return s.commit(ctx, models.DefaultSnapshot())
	}
	if len(snap.Warehouses) == 0 {
		snap.Warehouses = models.DefaultSnapshot().Warehouses
	}
	s.swap(snap)
	return nil
}

// ResetDatabase wipes the persisted blob and reinitializes the default
// catalog.
func (s *Service) ResetDatabase(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	return s.commit(ctx, models.DefaultSnapshot())
}

// commit persists the working snapshot and, on success, makes it current.
func (s *Service) commit(ctx context.Context, next *models.Snapshot) error {
	if err := s.store.Save(ctx, next); err != nil {
		config.LogError(s.logger, "ledger", "commit", "snapshot save failed", nil, err)
		return err
	}
	s.swap(next)
	return nil
}

func (s *Service) swap(next *models.Snapshot) {
	s.state = next
	s.unitIdx = make(map[string]int, len(next.Units))
	for i, u := range next.Units {
		s.unitIdx[u.SerialNumber] = i
	}
}

// --- getters (copy-on-read; callers never see internal slices) ---

func (s *Service) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.state.Products...)
}

func (s *Service) Units() []models.SerialUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SerialUnit(nil), s.state.Units...)
}

func (s *Service) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Transaction(nil), s.state.Transactions...)
}

func (s *Service) Warehouses() []models.Warehouse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Warehouse(nil), s.state.Warehouses...)
}

func (s *Service) Customers() []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Customer(nil), s.state.Customers...)
}

func (s *Service) ProductionPlans() []models.ProductionPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ProductionPlan(nil), s.state.ProductionPlans...)
}

func (s *Service) SalesOrders() []models.SalesOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SalesOrder(nil), s.state.SalesOrders...)
}

func (s *Service) GetProductByID(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.findProduct(id); i >= 0 {
		return s.state.Products[i], true
	}
	return models.Product{}, false
}

func (s *Service) GetUnitBySerial(serial string) (models.SerialUnit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.unitIdx[serial]; ok {
		return s.state.Units[i], true
	}
	return models.SerialUnit{}, false
}

// CheckSerialImported reports whether the serial has ever entered the unit
// set, regardless of its current status. A known serial can never be reused
// for a different product batch.
func (s *Service) CheckSerialImported(serial string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.unitIdx[serial]
	return ok
}

// GetWarehouseCurrentStock counts the NEW units located at the warehouse
// name.
func (s *Service) GetWarehouseCurrentStock(warehouseName string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stockAt(warehouseName)
}

// --- unexported lookups; callers hold the lock ---

func (s *Service) stockAt(warehouseName string) int {
	n := 0
	for _, u := range s.state.Units {
		if u.Status == models.UnitStatusNew && u.WarehouseLocation == warehouseName {
			n++
		}
	}
	return n
}

func (s *Service) findProduct(id string) int {
	for i, p := range s.state.Products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) findWarehouse(id string) int {
	for i, w := range s.state.Warehouses {
		if w.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) findWarehouseByName(name string) int {
	for i, w := range s.state.Warehouses {
		if w.Name == name {
			return i
		}
	}
	return -1
}

func (s *Service) findCustomer(id string) int {
	for i, c := range s.state.Customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) findCustomerByName(name string) int {
	for i, c := range s.state.Customers {
		if c.Name == name {
			return i
		}
	}
	return -1
}
