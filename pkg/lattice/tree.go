package lattice

import "fmt"

// Model 格点类型
type Model string

const (
	ModelBinomial  Model = "binomial"
	ModelTrinomial Model = "trinomial"
)

// width 第 step 步的节点数
func (m Model) width(step int) int {
	if m == ModelTrinomial {
		return 2*step + 1
	}
	return step + 1
}

// offset 第 step 步第一个节点在扁平数组中的位置
//
//	二叉: 三角形排布 step(step+1)/2
//	三叉: 正方形排布 step^2
func (m Model) offset(step int) int {
	if m == ModelTrinomial {
		return step * step
	}
	return step * (step + 1) / 2
}

// size periods 步格点 (含第 0 步) 的节点总数
func (m Model) size(periods int) int {
	return m.offset(periods + 1)
}

// Lattice 一次倒推得到的全部节点价值，存放在一块连续内存里
type Lattice struct {
	model   Model
	periods int
	values  []float64
}

func newLattice(m Model, periods int) *Lattice {
	return &Lattice{
		model:   m,
		periods: periods,
		values:  make([]float64, m.size(periods)),
	}
}

// row 第 step 步节点的可写切片，只在倒推时使用
func (l *Lattice) row(step int) []float64 {
	start := l.model.offset(step)
	return l.values[start : start+l.model.width(step)]
}

func (l *Lattice) Model() Model  { return l.model }
func (l *Lattice) Periods() int  { return l.periods }
func (l *Lattice) Root() float64 { return l.values[0] }

// Width 第 step 步的节点数
func (l *Lattice) Width(step int) int {
	return l.model.width(step)
}

// At 第 step 步第 i 个节点 (i 从最低价开始) 的期权价值
func (l *Lattice) At(step, i int) float64 {
	if step < 0 || step > l.periods || i < 0 || i >= l.model.width(step) {
		panic(fmt.Sprintf("lattice: node (%d, %d) out of range", step, i))
	}
	return l.values[l.model.offset(step)+i]
}

// Step 第 step 步所有节点价值的副本
func (l *Lattice) Step(step int) []float64 {
	row := l.row(step)
	out := make([]float64, len(row))
	copy(out, row)
	return out
}
