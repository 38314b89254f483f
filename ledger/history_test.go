package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"bitbucket.org/mmdatafocus/roserial_backend/models"
)

var allTransactionTypes = []models.TransactionType{
	models.TransactionTypeInbound,
	models.TransactionTypeOutbound,
	models.TransactionTypeTransfer,
}

func TestSerialHistoryAscending(t *testing.T) {
	svc, _ := newTestService(t)
	seedProduct(t, svc, "p-ro9")
	ctx := context.Background()

	mustImport(t, svc, "p-ro9", []string{"SN-1", "SN-2"}, whHanoi)
	if _, err := svc.TransferUnits(ctx, "p-ro9", []string{"SN-1"}, whHCM); err != nil {
		t.Fatalf("TransferUnits: %v", err)
	}
	if _, err := svc.ExportUnits(ctx, "p-ro9", []string{"SN-1"}, dealerName, whHCM); err != nil {
		t.Fatalf("ExportUnits: %v", err)
	}

	history := svc.GetSerialHistory("SN-1")
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	wantTypes := []models.TransactionType{
		models.TransactionTypeInbound,
		models.TransactionTypeTransfer,
		models.TransactionTypeOutbound,
	}
	for i, tx := range history {
		if tx.Type != wantTypes[i] {
			t.Errorf("history[%d].Type = %s, want %s", i, tx.Type, wantTypes[i])
		}
		if i > 0 && history[i].Date.Before(history[i-1].Date) {
			t.Errorf("history not ascending at %d", i)
		}
	}

	if got := svc.GetSerialHistory("SN-2"); len(got) != 1 {
		t.Errorf("SN-2 history length = %d, want 1", len(got))
	}
}

func TestHistoryByDateRange(t *testing.T) {
	svc, _ := newTestService(t)
	seedProduct(t, svc, "p-ro9")
	ctx := context.Background()

	day1 := time.Date(2024, 5, 1, 14, 30, 0, 0, time.Local)
	day3 := time.Date(2024, 5, 3, 8, 0, 0, 0, time.Local)
	clock := []time.Time{day1, day3, day3.Add(time.Hour)}
	i := 0
	svc.now = func() time.Time {
		ts := clock[i]
		i++
		return ts
	}

	mustImport(t, svc, "p-ro9", []string{"SN-1", "SN-2"}, whHanoi)
	if _, err := svc.TransferUnits(ctx, "p-ro9", []string{"SN-2"}, whHCM); err != nil {
		t.Fatalf("TransferUnits: %v", err)
	}
	if _, err := svc.ExportUnits(ctx, "p-ro9", []string{"SN-1"}, dealerName, whHanoi); err != nil {
		t.Fatalf("ExportUnits: %v", err)
	}

	// The window is day-inclusive: a 14:30 transaction matches a range that
	// starts and ends on its calendar day.
	got := svc.GetHistoryByDateRange(allTransactionTypes, day1, day1)
	if len(got) != 1 || got[0].Type != models.TransactionTypeInbound {
		t.Fatalf("day1 window: %+v", got)
	}

	got = svc.GetHistoryByDateRange(allTransactionTypes, time.Time{}, time.Time{})
	if len(got) != 3 {
		t.Fatalf("unbounded window length = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date) {
			t.Errorf("results not descending at %d", i)
		}
	}

	got = svc.GetHistoryByDateRange([]models.TransactionType{models.TransactionTypeTransfer}, time.Time{}, time.Time{})
	if len(got) != 1 || got[0].Type != models.TransactionTypeTransfer {
		t.Fatalf("type filter: %+v", got)
	}

	got = svc.GetHistoryByDateRange(allTransactionTypes, day3, time.Time{})
	if len(got) != 2 {
		t.Errorf("open-ended window length = %d, want 2", len(got))
	}
}

func TestInventoryStats(t *testing.T) {
	svc, _ := newTestService(t)
	seedProduct(t, svc, "p-ro9")
	seedProductNamed(t, svc, "p-hot", "RO Nóng Lạnh")
	ctx := context.Background()

	mustImport(t, svc, "p-ro9", []string{"SN-1", "SN-2", "SN-3"}, whHanoi)
	if _, err := svc.ExportUnits(ctx, "p-ro9", []string{"SN-3"}, dealerName, whHanoi); err != nil {
		t.Fatalf("ExportUnits: %v", err)
	}

	stats := svc.GetInventoryStats()
	if stats.TotalUnits != 2 {
		t.Errorf("TotalUnits = %d, want 2", stats.TotalUnits)
	}
	if len(stats.LowStockModels) != 1 || stats.LowStockModels[0] != "RO Nóng Lạnh" {
		t.Errorf("LowStockModels = %v", stats.LowStockModels)
	}
	if len(stats.RecentTransactions) != 2 {
		t.Fatalf("RecentTransactions length = %d, want 2", len(stats.RecentTransactions))
	}
	if stats.RecentTransactions[0].Type != models.TransactionTypeOutbound {
		t.Errorf("newest transaction is %s, want OUTBOUND", stats.RecentTransactions[0].Type)
	}
}

func TestInventoryStatsRecentCap(t *testing.T) {
	svc, _ := newTestService(t)
	seedProduct(t, svc, "p-ro9")

	for i := 0; i < 8; i++ {
		mustImport(t, svc, "p-ro9", []string{fmt.Sprintf("SN-%d", i)}, whHanoi)
	}
	stats := svc.GetInventoryStats()
	if len(stats.RecentTransactions) != recentTransactionCount {
		t.Errorf("RecentTransactions length = %d, want %d", len(stats.RecentTransactions), recentTransactionCount)
	}
}

func seedProductNamed(t *testing.T, svc *Service, id, model string) {
	t.Helper()
	if err := svc.AddProduct(context.Background(), models.Product{ID: id, Model: model}); err != nil {
		t.Fatalf("AddProduct(%s): %v", id, err)
	}
}
