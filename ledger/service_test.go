package ledger

import (
	"context"
	"errors"
	"io"
	"testing"

	"bitbucket.org/mmdatafocus/roserial_backend/models"
	"bitbucket.org/mmdatafocus/roserial_backend/storage"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestLoadSeedsDefaultCatalog(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := New(store, quietLogger())
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := len(svc.Warehouses()); got != 3 {
		t.Errorf("warehouses = %d, want 3", got)
	}
	if got := len(svc.Customers()); got != 3 {
		t.Errorf("customers = %d, want 3", got)
	}
	if got := len(svc.Units()); got != 0 {
		t.Errorf("units = %d, want 0", got)
	}
	if store.Saves != 1 {
		t.Errorf("seed catalog not persisted (saves = %d)", store.Saves)
	}
}

func TestLoadCorruptBlobFallsBack(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Corrupt()

	svc := New(store, quietLogger())
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load with corrupt blob: %v", err)
	}
	if got := len(svc.Warehouses()); got != 3 {
		t.Errorf("warehouses = %d, want default 3", got)
	}
}

func TestLoadReseedsEmptyWarehouses(t *testing.T) {
	store := storage.NewMemoryStore()
	if err := store.Save(context.Background(), &models.Snapshot{
		Products: []models.Product{{ID: "p-1", Model: "RO cũ"}},
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	svc := New(store, quietLogger())
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(svc.Warehouses()); got != 3 {
		t.Errorf("warehouses = %d, want reseeded 3", got)
	}
	if _, ok := svc.GetProductByID("p-1"); !ok {
		t.Errorf("stored product lost on load")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := New(store, quietLogger())
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	seedProduct(t, svc, "p-ro9")
	mustImport(t, svc, "p-ro9", []string{"SN-1", "SN-2"}, whHanoi)

	reopened := New(store, quietLogger())
	if err := reopened.Load(context.Background()); err != nil {
		t.Fatalf("reopen Load: %v", err)
	}
	if got := len(reopened.Units()); got != 2 {
		t.Errorf("reopened units = %d, want 2", got)
	}
	if got := len(reopened.Transactions()); got != 1 {
		t.Errorf("reopened transactions = %d, want 1", got)
	}
	u, ok := reopened.GetUnitBySerial("SN-1")
	if !ok || u.Status != models.UnitStatusNew || u.WarehouseLocation != whHanoi {
		t.Errorf("reopened unit: %+v ok=%v", u, ok)
	}
}

func TestResetDatabase(t *testing.T) {
	svc, _ := newTestService(t)
	seedProduct(t, svc, "p-ro9")
	mustImport(t, svc, "p-ro9", []string{"SN-1"}, whHanoi)

	if err := svc.ResetDatabase(context.Background()); err != nil {
		t.Fatalf("ResetDatabase: %v", err)
	}
	if got := len(svc.Units()); got != 0 {
		t.Errorf("units = %d after reset", got)
	}
	if got := len(svc.Products()); got != 0 {
		t.Errorf("products = %d after reset", got)
	}
	if got := len(svc.Warehouses()); got != 3 {
		t.Errorf("warehouses = %d, want default 3", got)
	}
	if svc.CheckSerialImported("SN-1") {
		t.Errorf("serial survived reset")
	}
}

func TestCommitFailureLeavesStateUntouched(t *testing.T) {
	svc, store := newTestService(t)
	seedProduct(t, svc, "p-ro9")

	store.SaveErr = errors.New("disk full")
	_, err := svc.ImportUnits(context.Background(), "p-ro9", []string{"SN-1"}, whHanoi, "")
	if err == nil {
		t.Fatal("import succeeded despite save failure")
	}
	if len(svc.Units()) != 0 || len(svc.Transactions()) != 0 {
		t.Errorf("failed commit mutated memory: units=%d txs=%d", len(svc.Units()), len(svc.Transactions()))
	}

	// The store recovered; the same call must now go through.
	mustImport(t, svc, "p-ro9", []string{"SN-1"}, whHanoi)
	if !svc.CheckSerialImported("SN-1") {
		t.Errorf("retry after save failure did not land")
	}
}

func TestGettersCopyOnRead(t *testing.T) {
	svc, _ := newTestService(t)
	seedProduct(t, svc, "p-ro9")

	products := svc.Products()
	products[0].Model = "bị sửa"
	p, _ := svc.GetProductByID("p-ro9")
	if p.Model != "RO Hydrogen 9 cấp" {
		t.Errorf("caller mutation leaked into state: %q", p.Model)
	}
}
