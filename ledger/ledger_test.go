package ledger

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/roserial_backend/models"
	"bitbucket.org/mmdatafocus/roserial_backend/storage"
	"github.com/sirupsen/logrus"
)

// Shared fixtures. Tests run against the in-memory store with a deterministic
// clock and id sequence; every call advances the clock by one minute.

const (
	whHanoi  = "Kho Tổng (Hà Nội)"
	whHCM    = "Kho Chi Nhánh (HCM)"
	whDanang = "Kho Đà Nẵng"

	dealerName = "Đại lý Điện máy Xanh"
)

func newTestService(t *testing.T) (*Service, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := New(store, logger)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%03d", seq)
	}
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return svc, store
}

func seedProduct(t *testing.T, svc *Service, id string) {
	t.Helper()
	err := svc.AddProduct(context.Background(), models.Product{
		ID:    id,
		Model: "RO Hydrogen 9 cấp",
		Brand: "Karofi",
		Specs: "9 lõi, vỏ tủ VTU",
	})
	if err != nil {
		t.Fatalf("AddProduct(%s): %v", id, err)
	}
}

func setCapacity(t *testing.T, svc *Service, warehouseID string, capacity int) {
	t.Helper()
	err := svc.UpdateWarehouse(context.Background(), warehouseID, models.WarehouseUpdate{MaxCapacity: &capacity})
	if err != nil {
		t.Fatalf("UpdateWarehouse(%s): %v", warehouseID, err)
	}
}

func mustImport(t *testing.T, svc *Service, productID string, serials []string, warehouse string) []models.Transaction {
	t.Helper()
	txs, err := svc.ImportUnits(context.Background(), productID, serials, warehouse, "")
	if err != nil {
		t.Fatalf("ImportUnits(%v): %v", serials, err)
	}
	return txs
}
