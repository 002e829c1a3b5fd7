package lattice

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// initialDividendPV 估值日所有未来分红的现值之和
func initialDividendPV(c *Contract) float64 {
	if len(c.dividends) == 0 {
		return 0
	}
	pvs := make([]float64, len(c.dividends))
	for i, d := range c.dividends {
		days := float64(daysBetween(c.valuationDate, d.Date))
		pvs[i] = Discount(d.Amount, days, c.rate)
	}
	return floats.Sum(pvs)
}

// adjustedStartPrice 托管分红模型: 扩散部分 = 现价 - 分红现值
func adjustedStartPrice(c *Contract) float64 {
	return c.spot - initialDividendPV(c)
}

// dividendEscrow 倒推过程中维护 "当前步之后尚未支付的分红" 在当前步的现值。
//
// 每倒推一步，日期往前挪 tstep 天；游标指向的分红日期如果晚于新日期，
// 就把金额加进来，游标前移一位 (每步最多处理一笔)，然后整体贴现一步。
type dividendEscrow struct {
	dividends []Dividend
	rate      float64
	tstep     float64
	step      time.Duration

	day     time.Time
	cursor  int
	current float64
}

func newDividendEscrow(c *Contract) *dividendEscrow {
	return &dividendEscrow{
		dividends: c.dividends,
		rate:      c.rate,
		tstep:     c.tstep,
		step:      stepDuration(c.tstep),
		day:       c.expiryDate,
		cursor:    len(c.dividends) - 1,
	}
}

// value 当前步需要加回到节点价格上的分红现值
func (e *dividendEscrow) value() float64 {
	return e.current
}

// stepBack 从第 s 步退到第 s-1 步
func (e *dividendEscrow) stepBack() {
	e.day = e.day.Add(-e.step)
	if e.cursor >= 0 && e.dividends[e.cursor].Date.After(e.day) {
		e.current += e.dividends[e.cursor].Amount
		e.cursor--
	}
	e.current = Discount(e.current, e.tstep, e.rate)
}

// stepDuration 小数天数换算成时长，精度到微秒
func stepDuration(days float64) time.Duration {
	micros := math.RoundToEven(days * float64(24*time.Hour/time.Microsecond))
	return time.Duration(micros) * time.Microsecond
}
