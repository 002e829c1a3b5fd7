// 文件: pkg/valuation/model.go
// 估值请求 / 估值记录 / 应答

package valuation

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ValueScale 估值结果保留的小数位，和 value 列的精度一致
const ValueScale = 12

var (
	ErrRecordNotFound = errors.New("valuation record not found")
	ErrEmptyRequest   = errors.New("empty valuation request")
)

// =============================================================================
// Request - 对外的估值请求
// =============================================================================

// DividendInput 请求里的一笔分红，日期为 M/D/YYYY 或 YYYY-MM-DD
type DividendInput struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// Request 估值请求 (NATS / Kafka / 进程内共用)
type Request struct {
	RequestID     string          `json:"request_id,omitempty"`
	Model         string          `json:"model,omitempty"` // binomial / trinomial
	ValuationDate string          `json:"valuation_date"`
	ExpiryDate    string          `json:"expiry_date"`
	ContractType  string          `json:"contract_type"` // call / put
	SpotPrice     float64         `json:"spot_price"`
	Strike        float64         `json:"strike"`
	Volatility    float64         `json:"volatility"`
	RiskFreeRate  float64         `json:"risk_free_rate"`
	Dividends     []DividendInput `json:"dividends,omitempty"`
	PeriodCount   *int            `json:"period_count,omitempty"` // nil 使用默认步数
}

// =============================================================================
// Record - 持久化的估值结果
// =============================================================================

type Record struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ValuationID int64  `gorm:"column:valuation_id;uniqueIndex" json:"valuation_id,string"` // 雪花ID
	RequestID   string `gorm:"column:request_id;type:varchar(64);index" json:"request_id"`
	Fingerprint string `gorm:"column:fingerprint;type:char(64);index" json:"fingerprint"`

	// 输入
	Model         string  `gorm:"column:model;type:varchar(16)" json:"model"`
	ContractType  string  `gorm:"column:contract_type;type:varchar(8)" json:"contract_type"`
	ValuationDate string  `gorm:"column:valuation_date;type:char(10)" json:"valuation_date"` // YYYY-MM-DD
	ExpiryDate    string  `gorm:"column:expiry_date;type:char(10)" json:"expiry_date"`
	SpotPrice     float64 `gorm:"column:spot_price" json:"spot_price"`
	Strike        float64 `gorm:"column:strike" json:"strike"`
	Volatility    float64 `gorm:"column:volatility" json:"volatility"`
	RiskFreeRate  float64 `gorm:"column:risk_free_rate" json:"risk_free_rate"`
	PeriodCount   int     `gorm:"column:period_count" json:"period_count"`
	DividendCount int     `gorm:"column:dividend_count" json:"dividend_count"`

	// 结果
	Value     decimal.Decimal `gorm:"column:value;type:decimal(24,12)" json:"value"` // 保留 ValueScale 位小数
	ElapsedUs int64           `gorm:"column:elapsed_us" json:"elapsed_us"`
	Cached    bool            `gorm:"-" json:"cached"` // 命中缓存，不落库

	CreatedAt int64 `gorm:"column:created_at;index" json:"created_at"`
}

func (Record) TableName() string {
	return "valuations"
}

// Float 估值结果的浮点值
func (r *Record) Float() float64 {
	return r.Value.InexactFloat64()
}

// clone 缓存命中时返回副本，避免调用方改动共享数据
func (r *Record) clone() *Record {
	c := *r
	return &c
}

// =============================================================================
// Response - NATS 应答
// =============================================================================

type Response struct {
	Record *Record `json:"record,omitempty"`
	Error  string  `json:"error,omitempty"`
}
