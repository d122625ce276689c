package repositories

import "budget-explorer/internal/models"

// SnapshotRepositoryInterface serves the precomputed per-year budget
// snapshots the dashboard explores. Snapshots are produced out-of-band by
// the data pipeline; this repository only loads and caches them.
type SnapshotRepositoryInterface interface {
	// GetSnapshot returns the budget flow-diagram snapshot for a year.
	GetSnapshot(year int) (*models.BudgetSnapshot, error)

	// GetBalanceSheet returns the balance-sheet snapshot for a year.
	// Balance sheets are optional in the export; years may be missing.
	GetBalanceSheet(year int) (*models.BudgetSnapshot, error)

	// GetRecords returns the itemized records for a year.
	GetRecords(year int) (models.RecordSet, error)

	// Years returns the years with a loaded snapshot, newest first.
	Years() []int

	// Clear drops every cached snapshot. There is no automatic eviction;
	// manual clear is the only invalidation.
	Clear()

	// Reload reads every snapshot file again and swaps the cache in on
	// success; a failed reload leaves the current cache untouched.
	Reload() error
}
