package ledger

import (
	"slices"
	"sort"
	"time"

	"bitbucket.org/mmdatafocus/roserial_backend/models"
	"bitbucket.org/mmdatafocus/roserial_backend/utils"
)

const recentTransactionCount = 5

// GetSerialHistory returns every transaction that touched the serial,
// ascending by date.
func (s *Service) GetSerialHistory(serial string) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Transaction
	for _, tx := range s.state.Transactions {
		if tx.Touches(serial) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// GetHistoryByDateRange filters the log by transaction type and an inclusive
// day-bounded window (start truncated to 00:00:00.000, end extended to
// 23:59:59.999, local time). A zero start or end leaves that side unbounded.
// Results are descending by date.
func (s *Service) GetHistoryByDateRange(types []models.TransactionType, start, end time.Time) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var lo, hi time.Time
	if !start.IsZero() {
		lo = utils.StartOfDay(start)
	}
	if !end.IsZero() {
		hi = utils.EndOfDay(end)
	}

	var out []models.Transaction
	for _, tx := range s.state.Transactions {
		if !slices.Contains(types, tx.Type) {
			continue
		}
		if !lo.IsZero() && tx.Date.Before(lo) {
			continue
		}
		if !hi.IsZero() && tx.Date.After(hi) {
			continue
		}
		out = append(out, tx)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// GetInventoryStats computes the dashboard aggregates: total NEW units,
// the models with nothing left on shelf, and the most recent transactions.
func (s *Service) GetInventoryStats() models.InventoryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inStockByProduct := make(map[string]int, len(s.state.Products))
	total := 0
	for _, u := range s.state.Units {
		if u.Status == models.UnitStatusNew {
			inStockByProduct[u.ProductID]++
			total++
		}
	}

	var lowStock []string
	for _, p := range s.state.Products {
		if inStockByProduct[p.ID] == 0 {
			lowStock = append(lowStock, p.Model)
		}
	}

	recent := s.state.Transactions
	if len(recent) > recentTransactionCount {
		recent = recent[:recentTransactionCount]
	}

	return models.InventoryStats{
		TotalUnits:         total,
		LowStockModels:     lowStock,
		RecentTransactions: append([]models.Transaction(nil), recent...),
	}
}
