package lattice

import "math"

// daysPerYear 固定 365 天计息，不做工作日调整
const daysPerYear = 365.0

// Discount 连续复利贴现
// days > 0 表示现金流在未来，现值变小
func Discount(amount, days, rate float64) float64 {
	return amount * math.Exp(-rate*(days/daysPerYear))
}
