// 文件: pkg/valuation/request.go
// 请求归一化与合约构造

package valuation

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"max.com/treeval/pkg/lattice"
)

// Normalize 补全请求: 默认模型、请求ID，统一大小写
func (r *Request) Normalize(defaultModel lattice.Model) error {
	if r == nil {
		return ErrEmptyRequest
	}
	r.Model = strings.ToLower(strings.TrimSpace(r.Model))
	if r.Model == "" {
		r.Model = string(defaultModel)
	}
	r.ContractType = strings.ToLower(strings.TrimSpace(r.ContractType))
	if r.RequestID == "" {
		r.RequestID = uuid.NewString()
	}
	return nil
}

// Contract 把请求转换成校验过的合约
func (r *Request) Contract() (*lattice.Contract, error) {
	if r == nil {
		return nil, ErrEmptyRequest
	}

	valuation, err := parseField("valuation_date", r.ValuationDate)
	if err != nil {
		return nil, err
	}
	expiry, err := parseField("expiry_date", r.ExpiryDate)
	if err != nil {
		return nil, err
	}

	dividends := make([]lattice.Dividend, 0, len(r.Dividends))
	for i, d := range r.Dividends {
		date, err := parseField(fmt.Sprintf("dividends[%d].date", i), d.Date)
		if err != nil {
			return nil, err
		}
		dividends = append(dividends, lattice.Dividend{Date: date, Amount: d.Amount})
	}

	cfg := lattice.Config{
		ValuationDate: valuation,
		ExpiryDate:    expiry,
		Type:          lattice.ContractType(r.ContractType),
		SpotPrice:     r.SpotPrice,
		Strike:        r.Strike,
		Volatility:    r.Volatility,
		RiskFreeRate:  r.RiskFreeRate,
		Dividends:     dividends,
		PeriodCount:   lattice.DefaultPeriodCount,
	}
	// 显式给出的步数原样交给 NewContract 校验
	if r.PeriodCount != nil {
		cfg.PeriodCount = *r.PeriodCount
	}
	return lattice.NewContract(cfg)
}

func parseField(field, value string) (time.Time, error) {
	t, err := lattice.ParseDate(value)
	if err != nil {
		var pe *lattice.DateParseError
		if errors.As(err, &pe) {
			pe.Field = field
			return time.Time{}, pe
		}
		return time.Time{}, err
	}
	return t, nil
}

// Fingerprint 合约 + 模型的稳定摘要，作为缓存 key
//
// 基于归一化后的合约计算，所以日期格式不同、分红顺序不同的等价请求得到同一个值。
func Fingerprint(c *lattice.Contract, model lattice.Model) string {
	var b strings.Builder
	b.WriteString(string(model))
	b.WriteByte('|')
	b.WriteString(string(c.Type()))
	b.WriteByte('|')
	b.WriteString(lattice.FormatDate(c.ValuationDate()))
	b.WriteByte('|')
	b.WriteString(lattice.FormatDate(c.ExpiryDate()))
	for _, v := range []float64{c.SpotPrice(), c.Strike(), c.Volatility(), c.RiskFreeRate()} {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(c.PeriodCount()))
	for _, d := range c.Dividends() {
		b.WriteByte('|')
		b.WriteString(lattice.FormatDate(d.Date))
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(d.Amount, 'g', -1, 64))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
