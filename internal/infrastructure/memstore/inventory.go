package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/visionscan/backend/internal/domain"
)

// InventoryStore is a thread-safe in-memory inventory repository. The
// detection pipeline only reads from it; mutation happens through the
// management endpoints under the store's own lock.
type InventoryStore struct {
	mutex   sync.RWMutex
	records map[string]domain.InventoryRecord
	skus    map[string]string // lowercased sku -> record id
}

// NewInventoryStore creates an empty inventory store
func NewInventoryStore() *InventoryStore {
	return &InventoryStore{
		records: make(map[string]domain.InventoryRecord),
		skus:    make(map[string]string),
	}
}

// Create stores a new inventory record. The SKU must be unique
// case-insensitively.
func (s *InventoryStore) Create(ctx context.Context, record domain.InventoryRecord) (*domain.InventoryRecord, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	skuKey := strings.ToLower(record.SKU)
	if _, exists := s.skus[skuKey]; exists {
		return nil, domain.ErrSKUExists
	}

	now := time.Now()
	record.ID = uuid.NewString()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.Aliases == nil {
		record.Aliases = []string{}
	}

	s.records[record.ID] = record
	s.skus[skuKey] = record.ID

	stored := record
	return &stored, nil
}

// GetByID returns the record with the given id
func (s *InventoryStore) GetByID(ctx context.Context, id string) (*domain.InventoryRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, exists := s.records[id]
	if !exists {
		return nil, domain.ErrInventoryNotFound
	}
	return &record, nil
}

// List returns a page of records ordered by name plus the total count
func (s *InventoryStore) List(ctx context.Context, limit, offset int) ([]domain.InventoryRecord, int, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	total := len(all)
	if offset >= total {
		return []domain.InventoryRecord{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// GetAll returns a snapshot of every record ordered by name. The snapshot is
// a copy; callers can match against it without holding the lock.
func (s *InventoryStore) GetAll(ctx context.Context) ([]domain.InventoryRecord, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	all := make([]domain.InventoryRecord, 0, len(s.records))
	for _, record := range s.records {
		all = append(all, record)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

// Update applies a partial update; nil fields in update keep their current
// value.
func (s *InventoryStore) Update(ctx context.Context, id string, update domain.InventoryUpdate) (*domain.InventoryRecord, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.records[id]
	if !exists {
		return nil, domain.ErrInventoryNotFound
	}

	if update.Name != nil {
		record.Name = *update.Name
	}
	if update.Category != nil {
		record.Category = *update.Category
	}
	if update.Price != nil {
		record.Price = *update.Price
	}
	if update.Stock != nil {
		record.Stock = *update.Stock
	}
	if update.Aliases != nil {
		record.Aliases = *update.Aliases
	}
	record.UpdatedAt = time.Now()

	s.records[id] = record
	return &record, nil
}

// AdjustStock changes the stock level by delta, rejecting adjustments that
// would take stock below zero.
func (s *InventoryStore) AdjustStock(ctx context.Context, id string, delta int) (*domain.InventoryRecord, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.records[id]
	if !exists {
		return nil, domain.ErrInventoryNotFound
	}

	if record.Stock+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	record.Stock += delta
	record.UpdatedAt = time.Now()

	s.records[id] = record
	return &record, nil
}
