package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"budget-explorer/internal/models"

	"golang.org/x/sync/errgroup"
)

var (
	ErrSnapshotNotFound = errors.New("no snapshot loaded for year")
	ErrRecordsNotFound  = errors.New("no records loaded for year")
)

const (
	snapshotFilePrefix = "budget_sankey_"
	bilanFilePrefix    = "bilan_sankey_"
	recordsFilePrefix  = "subventions_"
)

// snapshotRepository loads pipeline exports from a data directory into
// memory. Reads vastly outnumber reloads, so a RWMutex guards the maps.
type snapshotRepository struct {
	dataDir string

	mu        sync.RWMutex
	snapshots map[int]*models.BudgetSnapshot
	bilans    map[int]*models.BudgetSnapshot
	records   map[int]models.RecordSet
}

// NewSnapshotRepository creates the repository and loads every snapshot
// file found under dataDir. A directory without any snapshot file is an
// error; individual malformed files abort the load.
func NewSnapshotRepository(dataDir string) (SnapshotRepositoryInterface, error) {
	repo := &snapshotRepository{
		dataDir:   dataDir,
		snapshots: make(map[int]*models.BudgetSnapshot),
		bilans:    make(map[int]*models.BudgetSnapshot),
		records:   make(map[int]models.RecordSet),
	}
	if err := repo.Reload(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *snapshotRepository) GetSnapshot(year int) (*models.BudgetSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, ok := r.snapshots[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotNotFound, year)
	}
	return snapshot, nil
}

func (r *snapshotRepository) GetBalanceSheet(year int) (*models.BudgetSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bilan, ok := r.bilans[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotNotFound, year)
	}
	return bilan, nil
}

func (r *snapshotRepository) GetRecords(year int) (models.RecordSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records, ok := r.records[year]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrRecordsNotFound, year)
	}
	return records, nil
}

func (r *snapshotRepository) Years() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	years := make([]int, 0, len(r.snapshots))
	for year := range r.snapshots {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

func (r *snapshotRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots = make(map[int]*models.BudgetSnapshot)
	r.bilans = make(map[int]*models.BudgetSnapshot)
	r.records = make(map[int]models.RecordSet)
	slog.Info("snapshot cache cleared", "data_dir", r.dataDir)
}

func (r *snapshotRepository) Reload() error {
	entries, err := os.ReadDir(r.dataDir)
	if err != nil {
		return fmt.Errorf("failed to read data directory: %w", err)
	}

	snapshots := make(map[int]*models.BudgetSnapshot)
	bilans := make(map[int]*models.BudgetSnapshot)
	records := make(map[int]models.RecordSet)
	var mu sync.Mutex

	var g errgroup.Group
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}

		switch {
		case strings.HasPrefix(name, snapshotFilePrefix):
			year, ok := yearFromFilename(name, snapshotFilePrefix)
			if !ok {
				slog.Warn("skipping snapshot file without year", "file", name)
				continue
			}
			path := filepath.Join(r.dataDir, name)
			g.Go(func() error {
				var snapshot models.BudgetSnapshot
				if err := readJSONFile(path, &snapshot); err != nil {
					return err
				}
				mu.Lock()
				snapshots[year] = &snapshot
				mu.Unlock()
				return nil
			})

		case strings.HasPrefix(name, bilanFilePrefix):
			year, ok := yearFromFilename(name, bilanFilePrefix)
			if !ok {
				slog.Warn("skipping balance sheet file without year", "file", name)
				continue
			}
			path := filepath.Join(r.dataDir, name)
			g.Go(func() error {
				var bilan models.BudgetSnapshot
				if err := readJSONFile(path, &bilan); err != nil {
					return err
				}
				mu.Lock()
				bilans[year] = &bilan
				mu.Unlock()
				return nil
			})

		case strings.HasPrefix(name, recordsFilePrefix):
			year, ok := yearFromFilename(name, recordsFilePrefix)
			if !ok {
				slog.Warn("skipping records file without year", "file", name)
				continue
			}
			path := filepath.Join(r.dataDir, name)
			g.Go(func() error {
				var set models.RecordSet
				if err := readJSONFile(path, &set); err != nil {
					return err
				}
				mu.Lock()
				records[year] = set
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("no %s*.json files found in %s", snapshotFilePrefix, r.dataDir)
	}

	r.mu.Lock()
	r.snapshots = snapshots
	r.bilans = bilans
	r.records = records
	r.mu.Unlock()

	slog.Info("snapshots loaded",
		"data_dir", r.dataDir,
		"snapshot_years", len(snapshots),
		"bilan_years", len(bilans),
		"record_years", len(records))
	return nil
}

func yearFromFilename(name, prefix string) (int, bool) {
	base := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".json")
	year, err := strconv.Atoi(base)
	if err != nil || year < 1900 || year > 9999 {
		return 0, false
	}
	return year, true
}

func readJSONFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
