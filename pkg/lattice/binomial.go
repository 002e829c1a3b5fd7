package lattice

import "math"

// BinomialPricer 二叉树美式期权定价，无状态
type BinomialPricer struct{}

// Value 倒推整棵树，返回根节点价值
func (p BinomialPricer) Value(c *Contract) (float64, error) {
	l, err := p.Lattice(c)
	if err != nil {
		return 0, err
	}
	return l.Root(), nil
}

// Lattice 构建并倒推二叉树。第 s 步有 s+1 个节点，第 i 个节点的标的价格为
// adj * up^(2i-s) + 当前托管分红现值。
func (BinomialPricer) Lattice(c *Contract) (*Lattice, error) {
	exercise, err := c.typ.exercise()
	if err != nil {
		return nil, err
	}
	if c.vol == 0 {
		return deterministicLattice(c, ModelBinomial, exercise), nil
	}

	params := newBinomialParams(c.vol, c.rate, c.tstep)

	tree := newLattice(ModelBinomial, c.periods)
	adj := adjustedStartPrice(c)
	escrow := newDividendEscrow(c)

	for step := c.periods; step >= 0; step-- {
		row := tree.row(step)
		var child []float64
		if step < c.periods {
			child = tree.row(step + 1)
		}
		divs := escrow.value()

		for i := range row {
			price := adj*math.Pow(params.up, float64(2*i-step)) + divs
			exerciseVal := exercise(price, c.strike)

			// 到期那一步没有持有价值
			var holdVal float64
			if child != nil {
				weighted := params.pDown*child[i] + params.pUp*child[i+1]
				holdVal = Discount(weighted, c.tstep, c.rate)
			}
			row[i] = math.Max(math.Max(holdVal, exerciseVal), 0)
		}
		escrow.stepBack()
	}
	return finiteRoot(tree)
}
