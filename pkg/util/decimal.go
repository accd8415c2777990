package util

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrUnsupportedAmount is returned for amount types the converters do not handle.
var ErrUnsupportedAmount = errors.New("unsupported amount type")

// ApplyDecimal renders a base-unit integer with the given number of decimal
// places, dropping trailing zeros of the fractional part.
//
// Supported input types for value: string, *big.Int, int64, int, uint64.
func ApplyDecimal(value any, decimals int32) (string, error) {
	num, err := toBigInt(value)
	if err != nil {
		return "", err
	}
	return decimal.NewFromBigInt(num, -decimals).String(), nil
}

// ToBaseUnits converts a display amount into base units (amount * 10^decimals).
// Fractions below one base unit are truncated.
//
// Supported input types for amount: string, float64, int64, int,
// decimal.Decimal, *decimal.Decimal.
func ToBaseUnits(amount any, decimals int32) (*big.Int, error) {
	var d decimal.Decimal
	switch v := amount.(type) {
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			zap.L().Error("Failed to convert string to decimal", zap.Error(err))
			return nil, err
		}
		d = parsed
	case float64:
		d = decimal.NewFromFloat(v)
	case int64:
		d = decimal.NewFromInt(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil, ErrUnsupportedAmount
		}
		d = *v
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedAmount, amount)
	}
	return d.Shift(decimals).Truncate(0).BigInt(), nil
}

func toBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case string:
		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, fmt.Errorf("invalid integer amount %q", v)
		}
		return n, nil
	case *big.Int:
		if v == nil {
			return nil, ErrUnsupportedAmount
		}
		return v, nil
	case int64:
		return big.NewInt(v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedAmount, value)
	}
}
