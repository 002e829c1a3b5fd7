// 文件: pkg/valuation/repository.go
package valuation

import "context"

// Repository 估值记录存储
type Repository interface {
	Create(ctx context.Context, rec *Record) error

	GetByValuationID(ctx context.Context, valuationID int64) (*Record, error)
	GetByRequestID(ctx context.Context, requestID string) ([]*Record, error)
	// Recent 按创建时间倒序
	Recent(ctx context.Context, limit int) ([]*Record, error)
}
