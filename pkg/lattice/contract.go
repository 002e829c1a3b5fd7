package lattice

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// DefaultPeriodCount 常用的默认步数，由调用方显式填入 Config
const DefaultPeriodCount = 3

var (
	ErrInvalidContractType = errors.New("invalid contract type")
	ErrInvalidPeriodCount  = errors.New("invalid period count")
	ErrInvalidInputs       = errors.New("invalid inputs")
	ErrInvalidDates        = errors.New("valuation date must be before expiry date")
	ErrDuplicateDividend   = errors.New("duplicate dividend date")
	ErrUnknownModel        = errors.New("unknown lattice model")
)

// Dividend 一笔离散现金分红
type Dividend struct {
	Date   time.Time
	Amount float64
}

// Config 构造合约的输入参数
//
// PeriodCount 必须为正，未指定时调用方使用 DefaultPeriodCount。
// Dividends 可以为空，也不要求有序。
type Config struct {
	ValuationDate time.Time
	ExpiryDate    time.Time
	Type          ContractType
	SpotPrice     float64
	Strike        float64
	Volatility    float64 // 年化
	RiskFreeRate  float64 // 年化，连续复利
	Dividends     []Dividend
	PeriodCount   int
}

// Contract 校验并归一化之后的合约，构造后不可变。
//
// 分红在构造时只做一次过滤 (严格晚于估值日) 和升序排序，
// 之后的定价逻辑都依赖这个顺序。
type Contract struct {
	valuationDate time.Time
	expiryDate    time.Time
	typ           ContractType
	spot          float64
	strike        float64
	vol           float64
	rate          float64
	dividends     []Dividend
	periods       int
	tstep         float64 // 每一步的天数，可以不是整数
}

// NewContract 校验 Config 并生成 Contract
func NewContract(cfg Config) (*Contract, error) {
	periods := cfg.PeriodCount
	if periods <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPeriodCount, periods)
	}

	valuation := truncateDay(cfg.ValuationDate)
	expiry := truncateDay(cfg.ExpiryDate)
	if !valuation.Before(expiry) {
		return nil, fmt.Errorf("%w: %s >= %s", ErrInvalidDates,
			valuation.Format(isoLayout), expiry.Format(isoLayout))
	}

	if err := validateInputs(cfg); err != nil {
		return nil, err
	}

	dividends, err := normalizeDividends(cfg.Dividends, valuation)
	if err != nil {
		return nil, err
	}

	return &Contract{
		valuationDate: valuation,
		expiryDate:    expiry,
		typ:           cfg.Type,
		spot:          cfg.SpotPrice,
		strike:        cfg.Strike,
		vol:           cfg.Volatility,
		rate:          cfg.RiskFreeRate,
		dividends:     dividends,
		periods:       periods,
		tstep:         float64(daysBetween(valuation, expiry)) / float64(periods),
	}, nil
}

func validateInputs(cfg Config) error {
	if !positive(cfg.SpotPrice) {
		return fmt.Errorf("%w: spot price %v", ErrInvalidInputs, cfg.SpotPrice)
	}
	if !positive(cfg.Strike) {
		return fmt.Errorf("%w: strike %v", ErrInvalidInputs, cfg.Strike)
	}
	// 波动率和利率允许为 0
	if !nonNegative(cfg.Volatility) {
		return fmt.Errorf("%w: volatility %v", ErrInvalidInputs, cfg.Volatility)
	}
	if !nonNegative(cfg.RiskFreeRate) {
		return fmt.Errorf("%w: risk-free rate %v", ErrInvalidInputs, cfg.RiskFreeRate)
	}
	return nil
}

// normalizeDividends 过滤掉估值日当天及之前的分红，按日期升序排列
func normalizeDividends(in []Dividend, valuation time.Time) ([]Dividend, error) {
	out := make([]Dividend, 0, len(in))
	for _, d := range in {
		if !nonNegative(d.Amount) {
			return nil, fmt.Errorf("%w: dividend amount %v", ErrInvalidInputs, d.Amount)
		}
		date := truncateDay(d.Date)
		if !date.After(valuation) {
			continue
		}
		out = append(out, Dividend{Date: date, Amount: d.Amount})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	for i := 1; i < len(out); i++ {
		if out[i].Date.Equal(out[i-1].Date) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDividend, out[i].Date.Format(isoLayout))
		}
	}
	return out, nil
}

func (c *Contract) ValuationDate() time.Time { return c.valuationDate }
func (c *Contract) ExpiryDate() time.Time    { return c.expiryDate }
func (c *Contract) Type() ContractType       { return c.typ }
func (c *Contract) SpotPrice() float64       { return c.spot }
func (c *Contract) Strike() float64          { return c.strike }
func (c *Contract) Volatility() float64      { return c.vol }
func (c *Contract) RiskFreeRate() float64    { return c.rate }
func (c *Contract) PeriodCount() int         { return c.periods }

// TimeStep 每一步对应的天数
func (c *Contract) TimeStep() float64 { return c.tstep }

// Dividends 返回过滤排序后的分红副本
func (c *Contract) Dividends() []Dividend {
	out := make([]Dividend, len(c.dividends))
	copy(out, c.dividends)
	return out
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
