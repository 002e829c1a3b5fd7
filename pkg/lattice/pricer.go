// Package lattice 用二叉树/三叉树给带离散现金分红的美式期权估值。
//
// 用法:
//
//	c, err := lattice.NewContract(lattice.Config{...})
//	v, err := lattice.BinomialPricer{}.Value(c)
//
// 两种定价器都是无状态的，每次调用独立分配格点内存，可以并发使用。
package lattice

import (
	"fmt"
	"math"
)

// Pricer 格点定价器的公共能力
type Pricer interface {
	Value(c *Contract) (float64, error)
	Lattice(c *Contract) (*Lattice, error)
}

// 确保实现了接口
var (
	_ Pricer = BinomialPricer{}
	_ Pricer = TrinomialPricer{}
)

// NewPricer 按模型名返回定价器
func NewPricer(m Model) (Pricer, error) {
	switch m {
	case ModelBinomial:
		return BinomialPricer{}, nil
	case ModelTrinomial:
		return TrinomialPricer{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownModel, string(m))
}

// finiteRoot 波动率极小时概率公式的分母趋于 0，倒推结果会变成 NaN 或 Inf
func finiteRoot(l *Lattice) (*Lattice, error) {
	if r := l.Root(); math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, fmt.Errorf("%w: lattice value %v is not finite", ErrInvalidInputs, r)
	}
	return l, nil
}
