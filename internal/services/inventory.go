package services

import (
	"sync"

	"go.uber.org/zap"

	"github.com/kubev2v/infra-validator/pkg/inventory"
)

// InventoryService answers host lookups from the configured workbook. The
// workbook is read on every lookup so upserts are visible immediately.
type InventoryService struct {
	path   string
	layout inventory.Layout
	mode   inventory.Mode
	mu     sync.RWMutex
}

func NewInventoryService(path string, layout inventory.Layout, mode inventory.Mode) *InventoryService {
	return &InventoryService{path: path, layout: layout, mode: mode}
}

func (s *InventoryService) Mode() inventory.Mode {
	return s.mode
}

func (s *InventoryService) Lookup(hostname string) (inventory.HostConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, err := inventory.Open(s.path, s.layout, s.mode)
	if err != nil {
		return inventory.HostConfig{}, err
	}
	defer func() { _ = book.Close() }()

	return book.Lookup(hostname)
}

// Upsert writes host into the workbook and reports whether a row was created.
func (s *InventoryService) Upsert(host inventory.HostConfig) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := inventory.UpsertHost(s.path, s.layout, host)
	if err != nil {
		return false, err
	}
	zap.S().Named("inventory_service").Infow("host saved", "hostname", host.Hostname, "created", created)
	return created, nil
}
