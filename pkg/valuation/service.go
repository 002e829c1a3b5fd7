// 文件: pkg/valuation/service.go
// 估值服务: 请求 -> 合约 -> 缓存 -> 定价 -> 落库 -> 事件
//
// 缓存和事件只是旁路，失败只记日志；存储失败直接返回给调用方。

package valuation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"max.com/treeval/pkg/lattice"
)

// DefaultRecentLimit Recent 未指定条数时的默认值
const DefaultRecentLimit = 20

// Options 服务参数
type Options struct {
	DefaultModel lattice.Model // 请求未指定模型时使用
	ResultTopic  string        // 估值事件 topic
}

type Service struct {
	repo   Repository
	cache  Cache          // 可为 nil
	events EventPublisher // 可为 nil
	opts   Options
}

// NewService cache / events 传 nil 表示不启用
func NewService(repo Repository, cache Cache, events EventPublisher, opts Options) *Service {
	if opts.DefaultModel == "" {
		opts.DefaultModel = lattice.ModelBinomial
	}
	return &Service{
		repo:   repo,
		cache:  cache,
		events: events,
		opts:   opts,
	}
}

// =============================================================================
// 定价
// =============================================================================

// Value 对一个请求估值
//
// 命中缓存时返回最初那次估值的记录 (Cached=true，RequestID 为本次请求)，不再落库。
func (s *Service) Value(ctx context.Context, req *Request) (*Record, error) {
	if err := req.Normalize(s.opts.DefaultModel); err != nil {
		return nil, err
	}
	model := lattice.Model(req.Model)
	pricer, err := lattice.NewPricer(model)
	if err != nil {
		return nil, err
	}
	contract, err := req.Contract()
	if err != nil {
		return nil, err
	}
	fp := Fingerprint(contract, model)

	if rec := s.lookup(ctx, fp); rec != nil {
		rec.RequestID = req.RequestID
		rec.Cached = true
		s.publish(rec)
		return rec, nil
	}

	start := time.Now()
	value, err := pricer.Value(contract)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	rec := &Record{
		ValuationID:   GenerateValuationID(),
		RequestID:     req.RequestID,
		Fingerprint:   fp,
		Model:         string(model),
		ContractType:  string(contract.Type()),
		ValuationDate: lattice.FormatDate(contract.ValuationDate()),
		ExpiryDate:    lattice.FormatDate(contract.ExpiryDate()),
		SpotPrice:     contract.SpotPrice(),
		Strike:        contract.Strike(),
		Volatility:    contract.Volatility(),
		RiskFreeRate:  contract.RiskFreeRate(),
		PeriodCount:   contract.PeriodCount(),
		DividendCount: len(contract.Dividends()),
		Value:         decimal.NewFromFloat(value).Round(ValueScale),
		ElapsedUs:     elapsed.Microseconds(),
		CreatedAt:     time.Now().UnixMilli(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("save valuation: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, fp, rec); err != nil {
			log.Printf("[Valuation] cache set failed: fp=%s, err=%v", fp[:12], err)
		}
	}
	s.publish(rec)
	return rec, nil
}

func (s *Service) lookup(ctx context.Context, fp string) *Record {
	if s.cache == nil {
		return nil
	}
	rec, err := s.cache.Get(ctx, fp)
	if err != nil {
		log.Printf("[Valuation] cache get failed: fp=%s, err=%v", fp[:12], err)
		return nil
	}
	if rec == nil {
		return nil
	}
	return rec.clone()
}

func (s *Service) publish(rec *Record) {
	if s.events == nil {
		return
	}
	if err := s.events.Send(NewValuationEvent(s.opts.ResultTopic, rec)); err != nil {
		log.Printf("[Valuation] publish event failed: valuation_id=%d, err=%v", rec.ValuationID, err)
	}
}

// =============================================================================
// 查询
// =============================================================================

func (s *Service) Get(ctx context.Context, valuationID int64) (*Record, error) {
	return s.repo.GetByValuationID(ctx, valuationID)
}

// History 某个请求ID下落库的所有估值，新的在前
func (s *Service) History(ctx context.Context, requestID string) ([]*Record, error) {
	return s.repo.GetByRequestID(ctx, requestID)
}

func (s *Service) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.repo.Recent(ctx, limit)
}
