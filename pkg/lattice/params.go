package lattice

import "math"

// binomialParams 二叉树的步长乘数和风险中性概率
type binomialParams struct {
	up    float64
	down  float64
	pUp   float64
	pDown float64
}

// newBinomialParams 按公式原样计算，不对概率做截断: 波动率很小、步长很大时
// pUp 可以大于 1，结果仍然是该离散模型下的值。
//
//	up   = exp(vol * sqrt(tstep/365)), down = 1/up
//	pUp  = (exp(rate*tstep/365) - down) / (up - down)
func newBinomialParams(vol, rate, tstep float64) binomialParams {
	up := math.Exp(vol * math.Sqrt(tstep/daysPerYear))
	down := 1 / up
	pUp := (math.Exp(rate*tstep/daysPerYear) - down) / (up - down)
	return binomialParams{
		up:    up,
		down:  down,
		pUp:   pUp,
		pDown: 1 - pUp,
	}
}

// trinomialParams 三叉树参数，中间分支乘数为 1
type trinomialParams struct {
	up    float64
	down  float64
	pUp   float64
	pMid  float64
	pDown float64
}

// newTrinomialParams
//
//	up    = exp(vol * sqrt(2*tstep/365))
//	c     = vol * sqrt(tstep/365/2)
//	pUp   = ((exp(rate*tstep/365/2) - exp(-c)) / (exp(c) - exp(-c)))^2
//	pDown = ((exp(c) - exp(rate*tstep/365/2)) / (exp(c) - exp(-c)))^2
//	pMid  = 1 - pUp - pDown
func newTrinomialParams(vol, rate, tstep float64) trinomialParams {
	up := math.Exp(vol * math.Sqrt(2*tstep/daysPerYear))
	c := vol * math.Sqrt(tstep/daysPerYear/2)
	growth := math.Exp(rate * tstep / daysPerYear / 2)
	den := math.Exp(c) - math.Exp(-c)

	upRoot := (growth - math.Exp(-c)) / den
	downRoot := (math.Exp(c) - growth) / den
	pUp := upRoot * upRoot
	pDown := downRoot * downRoot

	return trinomialParams{
		up:    up,
		down:  1 / up,
		pUp:   pUp,
		pMid:  1 - pUp - pDown,
		pDown: pDown,
	}
}
