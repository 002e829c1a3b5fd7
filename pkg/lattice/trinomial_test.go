package lattice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrinomial_ReferenceCase(t *testing.T) {
	v := mustValue(t, TrinomialPricer{}, referenceConfig())
	assert.InDelta(t, 4.274362036609914, v, 1e-9)

	cfg := referenceConfig()
	cfg.Type = Put
	v = mustValue(t, TrinomialPricer{}, cfg)
	assert.InDelta(t, 5.787112175568011, v, 1e-9)
}

func TestTrinomial_NoDividends(t *testing.T) {
	cfg := referenceConfig()
	cfg.Dividends = nil
	assert.InDelta(t, 5.261646369542006, mustValue(t, TrinomialPricer{}, cfg), 1e-9)
}

func TestTrinomial_SinglePeriodByHand(t *testing.T) {
	cfg := referenceConfig()
	cfg.Dividends = nil
	cfg.PeriodCount = 1

	dt := 120.0
	up := math.Exp(0.4 * math.Sqrt(2*dt/365))
	c := 0.4 * math.Sqrt(dt/365/2)
	g := math.Exp(0.09 * dt / 365 / 2)
	pUp := math.Pow((g-math.Exp(-c))/(math.Exp(c)-math.Exp(-c)), 2)
	pDown := math.Pow((math.Exp(c)-g)/(math.Exp(c)-math.Exp(-c)), 2)
	pMid := 1 - pUp - pDown

	// 三个到期节点: 50/up, 50, 50*up
	hold := Discount(pDown*0+pMid*0+pUp*(50*up-50), dt, 0.09)
	want := math.Max(hold, 0)

	got := mustValue(t, TrinomialPricer{}, cfg)
	assert.InDelta(t, want, got, 1e-12)
	assert.InDelta(t, 4.748575531392614, got, 1e-9)
}

func TestTrinomial_LatticeShape(t *testing.T) {
	cfg := referenceConfig()
	cfg.PeriodCount = 10
	l, err := TrinomialPricer{}.Lattice(mustContract(t, cfg))
	require.NoError(t, err)

	assert.Equal(t, ModelTrinomial, l.Model())
	assert.Len(t, l.values, 11*11)
	for s := 0; s <= 10; s++ {
		assert.Equal(t, 2*s+1, l.Width(s))
	}

	// 到期一步没有托管分红，中间节点价格为 adj < 行权价
	assert.Equal(t, 0.0, l.At(10, 10))
	assert.Greater(t, l.At(10, 20), 0.0)
	assert.Panics(t, func() { l.At(2, 5) })
}

func TestTrinomial_MatchesDoubledBinomial(t *testing.T) {
	// 无分红时，N 步三叉树与 2N 步二叉树的格点完全重合
	cfg := referenceConfig()
	cfg.Dividends = nil
	cfg.PeriodCount = 200
	tri := mustValue(t, TrinomialPricer{}, cfg)

	cfg.PeriodCount = 400
	bin := mustValue(t, BinomialPricer{}, cfg)

	assert.InDelta(t, bin, tri, 1e-9)
}

func TestTrinomial_LowVolatilityLongStep(t *testing.T) {
	assert.InDelta(t, 4.311106907778149, mustValue(t, TrinomialPricer{}, lowVolConfig(Call)), 1e-9)
	assert.InDelta(t, 0.04561576440818612, mustValue(t, TrinomialPricer{}, lowVolConfig(Put)), 1e-9)
}
