// Package data provides thread-safe storage for the kendra directory with
// atomic swaps for zero-downtime reloads.
package data

import (
	"sync/atomic"
	"time"

	"github.com/medinfo/medinfo-api/interfaces"
	"github.com/medinfo/medinfo-api/kendras"
	"github.com/medinfo/medinfo-api/logging"
)

// Compile-time check to ensure Container implements DataStore
var _ interfaces.DataStore = (*Container)(nil)

// Container holds the kendra directory behind atomic pointers so readers
// never observe a partially applied reload.
type Container struct {
	kendras         atomic.Value // []kendras.Kendra
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewContainer creates a Container with empty data
func NewContainer() *Container {
	c := &Container{}
	c.kendras.Store(make([]kendras.Kendra, 0))
	c.lastUpdated.Store(time.Time{})
	c.serverStartTime.Store(time.Now())
	return c
}

// GetKendras returns the current kendra directory
func (c *Container) GetKendras() []kendras.Kendra {
	if v := c.kendras.Load(); v != nil {
		if list, ok := v.([]kendras.Kendra); ok {
			return list
		}
	}

	logging.Warn("Kendra directory is empty or invalid")
	return []kendras.Kendra{}
}

// GetLastUpdated returns when the directory was last reloaded
func (c *Container) GetLastUpdated() time.Time {
	if v := c.lastUpdated.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// GetServerStartTime returns the process start time
func (c *Container) GetServerStartTime() time.Time {
	if v := c.serverStartTime.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

// IsUpdating reports whether a reload is in progress
func (c *Container) IsUpdating() bool {
	return c.updating.Load()
}

// BeginUpdate marks a reload as started. Returns false if one is already
// in progress.
func (c *Container) BeginUpdate() bool {
	return c.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the reload as finished
func (c *Container) EndUpdate() {
	c.updating.Store(false)
}

// UpdateKendras atomically swaps in a new directory
func (c *Container) UpdateKendras(list []kendras.Kendra) {
	c.kendras.Store(list)
	c.lastUpdated.Store(time.Now())
}
