package lattice

import "math"

// deterministicLattice 波动率为 0 时的退化情形。
//
// 此时 up == down，概率公式分母为 0。标的的扩散部分按无风险利率确定性增长，
// 同一步所有节点价格相同，仍然按 max(持有, 行权, 0) 倒推并沿用分红托管规则。
func deterministicLattice(c *Contract, m Model, exercise ExerciseFunc) *Lattice {
	tree := newLattice(m, c.periods)
	adj := adjustedStartPrice(c)
	escrow := newDividendEscrow(c)

	var next float64
	for step := c.periods; step >= 0; step-- {
		elapsed := float64(step) * c.tstep
		price := adj*math.Exp(c.rate*elapsed/daysPerYear) + escrow.value()

		var holdVal float64
		if step < c.periods {
			holdVal = Discount(next, c.tstep, c.rate)
		}
		next = math.Max(math.Max(holdVal, exercise(price, c.strike)), 0)

		row := tree.row(step)
		for i := range row {
			row[i] = next
		}
		escrow.stepBack()
	}
	return tree
}
