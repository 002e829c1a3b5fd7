package lattice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscount(t *testing.T) {
	// 一整年，5% 连续复利
	assert.InDelta(t, 100*math.Exp(-0.05), Discount(100, 365, 0.05), 1e-12)

	// 0 天、0 利率都不打折
	assert.Equal(t, 42.0, Discount(42, 0, 0.09))
	assert.Equal(t, 42.0, Discount(42, 120, 0))

	// 未来越远现值越小
	assert.Less(t, Discount(10, 200, 0.03), Discount(10, 100, 0.03))
}

func TestExercise(t *testing.T) {
	call, err := Call.exercise()
	assert.NoError(t, err)
	assert.Equal(t, 5.0, call(55, 50))
	assert.Equal(t, -5.0, call(45, 50))

	put, err := Put.exercise()
	assert.NoError(t, err)
	assert.Equal(t, 5.0, put(45, 50))

	_, err = ContractType("straddle").exercise()
	assert.ErrorIs(t, err, ErrInvalidContractType)

	// 类型区分大小写
	_, err = ContractType("CALL").exercise()
	assert.ErrorIs(t, err, ErrInvalidContractType)
}
