package valuation

import (
	"context"
	"errors"
	"sync"

	"max.com/treeval/pkg/kafka"
)

const (
	referenceBinomial  = 4.277953509750311
	referenceTrinomial = 4.274362036609914
)

func intPtr(v int) *int { return &v }

// referenceRequest 2018-01-19 估值、2018-05-19 到期的平值看涨，两笔分红，200 步
func referenceRequest() *Request {
	return &Request{
		ValuationDate: "1/19/2018",
		ExpiryDate:    "5/19/2018",
		ContractType:  "call",
		SpotPrice:     50,
		Strike:        50,
		Volatility:    0.4,
		RiskFreeRate:  0.09,
		Dividends: []DividendInput{
			{Date: "4/19/2018", Amount: 2},
			{Date: "4/21/2018", Amount: 2},
		},
		PeriodCount: intPtr(200),
	}
}

// memCache 进程内缓存
type memCache struct {
	mu   sync.Mutex
	data map[string]*Record
	gets int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]*Record)}
}

func (c *memCache) Get(_ context.Context, fp string) (*Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	rec, ok := c.data[fp]
	if !ok {
		return nil, nil
	}
	return rec.clone(), nil
}

func (c *memCache) Set(_ context.Context, fp string, rec *Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[fp] = rec.clone()
	return nil
}

var errBroken = errors.New("broken")

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (*Record, error) { return nil, errBroken }
func (brokenCache) Set(context.Context, string, *Record) error    { return errBroken }

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (p *recordingPublisher) Send(msg kafka.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

type brokenRepo struct {
	*MemoryRepository
}

func (brokenRepo) Create(context.Context, *Record) error { return errBroken }
