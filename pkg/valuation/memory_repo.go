// 文件: pkg/valuation/memory_repo.go
// 内存版存储，未配置 MySQL 时和单元测试里使用

package valuation

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	records []*Record
	byID    map[int64]*Record
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID: make(map[int64]*Record),
	}
}

func (m *MemoryRepository) Create(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[rec.ValuationID]; ok {
		return fmt.Errorf("duplicate valuation id %d", rec.ValuationID)
	}
	stored := rec.clone()
	stored.ID = uint(len(m.records) + 1)
	rec.ID = stored.ID
	m.records = append(m.records, stored)
	m.byID[stored.ValuationID] = stored
	return nil
}

func (m *MemoryRepository) GetByValuationID(_ context.Context, valuationID int64) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.byID[valuationID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return rec.clone(), nil
}

func (m *MemoryRepository) GetByRequestID(_ context.Context, requestID string) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Record
	for _, rec := range m.records {
		if rec.RequestID == requestID {
			out = append(out, rec.clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *MemoryRepository) Recent(_ context.Context, limit int) ([]*Record, error) {
	m.mu.RLock()
	out := make([]*Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec.clone())
	}
	m.mu.RUnlock()

	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// sortNewestFirst 和 MySQL 实现的排序一致: created_at DESC, valuation_id DESC
func sortNewestFirst(recs []*Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].CreatedAt != recs[j].CreatedAt {
			return recs[i].CreatedAt > recs[j].CreatedAt
		}
		return recs[i].ValuationID > recs[j].ValuationID
	})
}
