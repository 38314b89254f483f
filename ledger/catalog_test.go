package ledger

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/roserial_backend/models"
)

func TestDeleteProductBlockedByUnits(t *testing.T) {
	svc, _ := newTestService(t)
	seedProduct(t, svc, "p-ro9")
	ctx := context.Background()

	mustImport(t, svc, "p-ro9", []string{"SN-1"}, whHanoi)

	var ref *models.ReferentialIntegrityError
	if err := svc.DeleteProduct(ctx, "p-ro9"); !errors.As(err, &ref) {
		t.Fatalf("err = %v, want ReferentialIntegrityError", err)
	}

	// Selling the unit does not release the reference; history must keep
	// resolving the model name.
	if _, err := svc.ExportUnits(ctx, "p-ro9", []string{"SN-1"}, dealerName, whHanoi); err != nil {
		t.Fatalf("ExportUnits: %v", err)
	}
	if err := svc.DeleteProduct(ctx, "p-ro9"); !errors.As(err, &ref) {
		t.Fatalf("after sale: err = %v, want ReferentialIntegrityError", err)
	}
}

func TestDeleteWarehouseRules(t *testing.T) {
	svc, _ := newTestService(t)
	seedProduct(t, svc, "p-ro9")
	ctx := context.Background()

	mustImport(t, svc, "p-ro9", []string{"SN-1"}, whHanoi)

	var ref *models.ReferentialIntegrityError
	if err := svc.DeleteWarehouse(ctx, "wh-01"); !errors.As(err, &ref) {
		t.Fatalf("stocked warehouse: err = %v, want ReferentialIntegrityError", err)
	}

	if err := svc.DeleteWarehouse(ctx, "wh-03"); err != nil {
		t.Fatalf("empty warehouse: %v", err)
	}
	if err := svc.DeleteWarehouse(ctx, "wh-02"); err != nil {
		t.Fatalf("empty warehouse: %v", err)
	}
	if err := svc.DeleteWarehouse(ctx, "wh-01"); !errors.As(err, &ref) {
		t.Fatalf("last warehouse: err = %v, want ReferentialIntegrityError", err)
	}
	if got := len(svc.Warehouses()); got != 1 {
		t.Errorf("warehouses = %d, want 1", got)
	}
}

func TestDeleteWarehouseUnblockedAfterSale(t *testing.T) {
	svc, _ := newTestService(t)
	seedProduct(t, svc, "p-ro9")
	ctx := context.Background()

	mustImport(t, svc, "p-ro9", []string{"SN-1"}, whDanang)
	if _, err := svc.ExportUnits(ctx, "p-ro9", []string{"SN-1"}, dealerName, whDanang); err != nil {
		t.Fatalf("ExportUnits: %v", err)
	}
	// Only NEW units hold the warehouse; sold units moved to OUT.
	if err := svc.DeleteWarehouse(ctx, "wh-03"); err != nil {
		t.Fatalf("DeleteWarehouse: %v", err)
	}
}

func TestUpdateProductMergesFields(t *testing.T) {
	svc, _ := newTestService(t)
	seedProduct(t, svc, "p-ro9")

	brand := "Kangaroo"
	if err := svc.UpdateProduct(context.Background(), "p-ro9", models.ProductUpdate{Brand: &brand}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	p, _ := svc.GetProductByID("p-ro9")
	if p.Brand != "Kangaroo" {
		t.Errorf("brand = %q", p.Brand)
	}
	if p.Model != "RO Hydrogen 9 cấp" {
		t.Errorf("model overwritten to %q", p.Model)
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	svc, store := newTestService(t)
	savesBefore := store.Saves

	name := "đổi tên"
	if err := svc.UpdateProduct(context.Background(), "p-missing", models.ProductUpdate{Model: &name}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if err := svc.UpdateCustomer(context.Background(), "cus-99", models.CustomerUpdate{Name: &name}); err != nil {
		t.Fatalf("UpdateCustomer: %v", err)
	}
	if store.Saves != savesBefore {
		t.Errorf("no-op update persisted a snapshot")
	}
}

func TestAddDuplicateIDs(t *testing.T) {
	svc, _ := newTestService(t)
	seedProduct(t, svc, "p-ro9")
	ctx := context.Background()

	if err := svc.AddProduct(ctx, models.Product{ID: "p-ro9", Model: "khác"}); err == nil {
		t.Errorf("duplicate product id accepted")
	}
	if err := svc.AddWarehouse(ctx, models.Warehouse{ID: "wh-01", Name: "Kho Mới"}); err == nil {
		t.Errorf("duplicate warehouse id accepted")
	}
	if err := svc.AddWarehouse(ctx, models.Warehouse{ID: "wh-09", Name: whHanoi}); err == nil {
		t.Errorf("duplicate warehouse name accepted")
	}
	if err := svc.AddCustomer(ctx, models.Customer{ID: "cus-01", Name: "Khác", Type: models.CustomerTypeRetail}); err == nil {
		t.Errorf("duplicate customer id accepted")
	}
}

func TestAddProductRequiresFields(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.AddProduct(context.Background(), models.Product{ID: "p-x"}); err == nil {
		t.Errorf("product without model accepted")
	}
}

func TestCustomerPhoneValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.AddCustomer(ctx, models.Customer{ID: "cus-10", Name: "Đại lý mới", Type: models.CustomerTypeDealer, Phone: "12ab"})
	if err == nil {
		t.Errorf("invalid phone accepted")
	}
	err = svc.AddCustomer(ctx, models.Customer{ID: "cus-10", Name: "Đại lý mới", Type: models.CustomerTypeDealer, Phone: "0901234567"})
	if err != nil {
		t.Errorf("valid VN phone rejected: %v", err)
	}
	err = svc.AddCustomer(ctx, models.Customer{ID: "cus-11", Name: "Khách lẻ", Type: models.CustomerTypeRetail})
	if err != nil {
		t.Errorf("empty phone rejected: %v", err)
	}
}

func TestDeleteCustomerAlwaysAllowed(t *testing.T) {
	svc, _ := newTestService(t)
	seedProduct(t, svc, "p-ro9")
	ctx := context.Background()

	mustImport(t, svc, "p-ro9", []string{"SN-1"}, whHanoi)
	if _, err := svc.ExportUnits(ctx, "p-ro9", []string{"SN-1"}, dealerName, whHanoi); err != nil {
		t.Fatalf("ExportUnits: %v", err)
	}
	// Units carry the customer name by value; deleting the record does not
	// break history.
	if err := svc.DeleteCustomer(ctx, "cus-01"); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}
	u, _ := svc.GetUnitBySerial("SN-1")
	if u.CustomerName != dealerName {
		t.Errorf("customer name lost from unit: %+v", u)
	}
}
