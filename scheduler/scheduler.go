// Package scheduler reloads the kendra directory on a daily schedule and
// monitors dataset staleness.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/medinfo/medinfo-api/interfaces"
	"github.com/medinfo/medinfo-api/kendras"
	"github.com/medinfo/medinfo-api/logging"
)

// Compile-time check to ensure Scheduler implements the Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles dataset reloads using dependency injection
type Scheduler struct {
	dataStore   interfaces.DataStore
	datasetPath string
	scheduler   *gocron.Scheduler
	stopMonitor chan struct{}
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(dataStore interfaces.DataStore, datasetPath string) *Scheduler {
	return &Scheduler{
		dataStore:   dataStore,
		datasetPath: datasetPath,
		scheduler:   gocron.NewScheduler(time.Local),
		stopMonitor: make(chan struct{}),
	}
}

// Start performs the initial dataset load, schedules the daily reload and
// begins staleness monitoring.
func (s *Scheduler) Start() error {
	if err := s.reload(); err != nil {
		logging.Error("Failed to perform initial kendra dataset load", "error", err)
		return fmt.Errorf("initial kendra dataset load failed: %w", err)
	}

	// Reload once a day; the directory file may be replaced on disk by an
	// out-of-band sync.
	_, err := s.scheduler.Every(1).Days().At("06:00").Do(func() {
		if err := s.reload(); err != nil {
			logging.Error("Failed to reload kendra dataset", "error", err)
		}
	})

	if err != nil {
		logging.Error("Failed to schedule dataset reloads", "error", err)
		return fmt.Errorf("failed to schedule dataset reloads: %w", err)
	}

	s.scheduler.StartAsync()
	s.startStalenessMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopMonitor)
	s.scheduler.Stop()
}

// reload swaps a freshly parsed directory into the data store.
func (s *Scheduler) reload() error {
	if !s.dataStore.BeginUpdate() {
		logging.Info("Dataset reload already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	start := time.Now()

	list, err := kendras.LoadDataset(s.datasetPath)
	if err != nil {
		return fmt.Errorf("loading kendra dataset: %w", err)
	}

	s.dataStore.UpdateKendras(list)

	logging.Info("Kendra dataset reloaded",
		"duration", time.Since(start).String(),
		"kendra_count", len(list))
	return nil
}

// startStalenessMonitoring warns when the directory has not been refreshed
// in over 48 hours.
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				lastUpdate := s.dataStore.GetLastUpdated()
				if time.Since(lastUpdate) > 48*time.Hour {
					logging.Warn("Kendra dataset hasn't been refreshed in over 48 hours")
				}
			case <-s.stopMonitor:
				return
			}
		}
	}()
}
