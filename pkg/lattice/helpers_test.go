package lattice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(isoLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// referenceConfig 2018-01-19 估值、2018-05-19 到期的平值看涨，两笔分红
func referenceConfig() Config {
	return Config{
		ValuationDate: day("2018-01-19"),
		ExpiryDate:    day("2018-05-19"),
		Type:          Call,
		SpotPrice:     50,
		Strike:        50,
		Volatility:    0.4,
		RiskFreeRate:  0.09,
		Dividends: []Dividend{
			{Date: day("2018-04-19"), Amount: 2},
			{Date: day("2018-04-21"), Amount: 2},
		},
		PeriodCount: 200,
	}
}

func mustContract(t testing.TB, cfg Config) *Contract {
	t.Helper()
	c, err := NewContract(cfg)
	require.NoError(t, err)
	return c
}

func mustValue(t testing.TB, p Pricer, cfg Config) float64 {
	t.Helper()
	v, err := p.Value(mustContract(t, cfg))
	require.NoError(t, err)
	return v
}

func pricers() map[Model]Pricer {
	return map[Model]Pricer{
		ModelBinomial:  BinomialPricer{},
		ModelTrinomial: TrinomialPricer{},
	}
}

// lowVolConfig 2018-01-19 到 2019-01-19 的平值期权，σ=0.05，r=0.09，默认 3 步，无分红
func lowVolConfig(typ ContractType) Config {
	return Config{
		ValuationDate: day("2018-01-19"),
		ExpiryDate:    day("2019-01-19"),
		Type:          typ,
		SpotPrice:     50,
		Strike:        50,
		Volatility:    0.05,
		RiskFreeRate:  0.09,
		PeriodCount:   DefaultPeriodCount,
	}
}
