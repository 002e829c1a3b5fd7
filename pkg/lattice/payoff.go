package lattice

import "fmt"

// ContractType 期权类型
type ContractType string

const (
	Call ContractType = "call" // 看涨
	Put  ContractType = "put"  // 看跌
)

// ExerciseFunc 立即行权价值 (可以为负，由节点上的 0 下限兜底)
type ExerciseFunc func(underlying, strike float64) float64

func exerciseCall(underlying, strike float64) float64 {
	return underlying - strike
}

func exercisePut(underlying, strike float64) float64 {
	return strike - underlying
}

// Valid 是否为已知的期权类型
func (t ContractType) Valid() bool {
	return t == Call || t == Put
}

// exercise 按类型解析行权函数，没有默认值
func (t ContractType) exercise() (ExerciseFunc, error) {
	switch t {
	case Call:
		return exerciseCall, nil
	case Put:
		return exercisePut, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidContractType, string(t))
}
