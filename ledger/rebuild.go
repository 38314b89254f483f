package ledger

import (
	"context"
	"sort"

	"bitbucket.org/mmdatafocus/roserial_backend/models"
	"github.com/sirupsen/logrus"
)

// The transaction log is the sole source of historical truth; the unit set
// is a projection of it. ReplayUnits recomputes that projection, and
// RebuildUnits compares it against the stored units to detect (and
// optionally repair) drift.

// ReplayUnits folds the transaction log, oldest first, into a fresh unit
// set. The log is assumed valid (it was produced by the engine), so replay
// applies transitions without re-validating them.
func ReplayUnits(transactions []models.Transaction) []models.SerialUnit {
	ordered := append([]models.Transaction(nil), transactions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	var units []models.SerialUnit
	idx := map[string]int{}
	for _, tx := range ordered {
		switch tx.Type {
		case models.TransactionTypeInbound:
			for _, serial := range tx.SerialNumbers {
				if i, ok := idx[serial]; ok {
					u := units[i]
					u.Status = models.UnitStatusNew
					u.WarehouseLocation = tx.ToLocation
					u.ImportDate = tx.Date
					u.IsReimported = true
					units[i] = u
					continue
				}
				units = append(units, models.SerialUnit{
					SerialNumber:      serial,
					ProductID:         tx.ProductID,
					Status:            models.UnitStatusNew,
					WarehouseLocation: tx.ToLocation,
					ImportDate:        tx.Date,
				})
				idx[serial] = len(units) - 1
			}
		case models.TransactionTypeTransfer:
			for _, serial := range tx.SerialNumbers {
				if i, ok := idx[serial]; ok {
					units[i].WarehouseLocation = tx.ToLocation
				}
			}
		case models.TransactionTypeOutbound:
			for _, serial := range tx.SerialNumbers {
				if i, ok := idx[serial]; ok {
					u := units[i]
					u.Status = models.UnitStatusSold
					exportDate := tx.Date
					u.ExportDate = &exportDate
					u.CustomerName = tx.Customer
					u.WarehouseLocation = models.WarehouseLocationOut
					units[i] = u
				}
			}
		}
	}
	return units
}

// RebuildUnits replays the log and counts units whose projected
// status/location/reimport flag disagrees with the stored set, plus serials
// present on one side only. With repair set, a drifted unit set is replaced
// by the replayed one and persisted.
func (s *Service) RebuildUnits(ctx context.Context, repair bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replayed := ReplayUnits(s.state.Transactions)
	replayedIdx := make(map[string]models.SerialUnit, len(replayed))
	for _, u := range replayed {
		replayedIdx[u.SerialNumber] = u
	}

	drift := 0
	for _, u := range s.state.Units {
		r, ok := replayedIdx[u.SerialNumber]
		if !ok {
			drift++
			continue
		}
		if r.Status != u.Status || r.WarehouseLocation != u.WarehouseLocation || r.IsReimported != u.IsReimported {
			drift++
		}
		delete(replayedIdx, u.SerialNumber)
	}
	drift += len(replayedIdx)

	s.logger.WithFields(logrus.Fields{
		"stored":   len(s.state.Units),
		"replayed": len(replayed),
		"drift":    drift,
		"repair":   repair,
	}).Info("ledger.rebuild")

	if drift == 0 || !repair {
		return drift, nil
	}

	next := s.state.Clone()
	next.Units = replayed
	if err := s.commit(ctx, next); err != nil {
		return drift, err
	}
	return drift, nil
}
