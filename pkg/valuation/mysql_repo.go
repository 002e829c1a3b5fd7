// 文件: pkg/valuation/mysql_repo.go
package valuation

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type MySQLRepository struct {
	db *gorm.DB
}

var _ Repository = (*MySQLRepository)(nil)

func NewMySQLRepository(db *gorm.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

// AutoMigrate 建表 valuations
func (r *MySQLRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&Record{})
}

func (r *MySQLRepository) Create(ctx context.Context, rec *Record) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("insert valuation %d: %w", rec.ValuationID, err)
	}
	return nil
}

func (r *MySQLRepository) GetByValuationID(ctx context.Context, valuationID int64) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).Where("valuation_id = ?", valuationID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *MySQLRepository) GetByRequestID(ctx context.Context, requestID string) ([]*Record, error) {
	var recs []*Record
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at DESC").
		Order("valuation_id DESC").
		Find(&recs).Error
	return recs, err
}

func (r *MySQLRepository) Recent(ctx context.Context, limit int) ([]*Record, error) {
	var recs []*Record
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("valuation_id DESC").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}
