package lattice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinomialParams(t *testing.T) {
	vol, rate, tstep := 0.4, 0.09, 0.6
	p := newBinomialParams(vol, rate, tstep)

	up := math.Exp(vol * math.Sqrt(tstep/365))
	assert.InDelta(t, up, p.up, 1e-15)
	assert.InDelta(t, 1/up, p.down, 1e-15)
	assert.InDelta(t, (math.Exp(rate*tstep/365)-1/up)/(up-1/up), p.pUp, 1e-12)
	assert.InDelta(t, 1.0, p.pUp+p.pDown, 1e-15)

	// 折现后的期望价格等于当前价格 (风险中性)
	expected := p.pUp*p.up + p.pDown*p.down
	assert.InDelta(t, math.Exp(rate*tstep/365), expected, 1e-12)
}

func TestTrinomialParams(t *testing.T) {
	vol, rate, tstep := 0.4, 0.09, 0.6
	p := newTrinomialParams(vol, rate, tstep)

	c := vol * math.Sqrt(tstep/365/2)
	g := math.Exp(rate * tstep / 365 / 2)
	den := math.Exp(c) - math.Exp(-c)

	assert.InDelta(t, math.Exp(vol*math.Sqrt(2*tstep/365)), p.up, 1e-15)
	assert.InDelta(t, math.Pow((g-math.Exp(-c))/den, 2), p.pUp, 1e-12)
	assert.InDelta(t, math.Pow((math.Exp(c)-g)/den, 2), p.pDown, 1e-12)
	assert.InDelta(t, 1.0, p.pUp+p.pMid+p.pDown, 1e-15)
	assert.Greater(t, p.pMid, 0.0)

	expected := p.pUp*p.up + p.pMid + p.pDown*p.down
	assert.InDelta(t, math.Exp(rate*tstep/365), expected, 1e-12)
}

func TestParams_NoClamping(t *testing.T) {
	// 波动率很小、步长很大时 exp(r*dt) 超过 up，概率按公式原样保留
	b := newBinomialParams(0.01, 0.09, 120)
	assert.Greater(t, b.pUp, 1.0)
	assert.Less(t, b.pDown, 0.0)
	assert.InDelta(t, 1.0, b.pUp+b.pDown, 1e-12)

	tr := newTrinomialParams(0.01, 0.09, 120)
	assert.InDelta(t, 1.0, tr.pUp+tr.pMid+tr.pDown, 1e-12)
	assert.Less(t, tr.pMid, 0.0)
}
