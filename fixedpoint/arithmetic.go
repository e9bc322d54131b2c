package fixedpoint

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/ferum-labs/ferumstd/errors"
	"github.com/ferum-labs/ferumstd/internal/obtrace"
	"github.com/ferum-labs/ferumstd/uint128"
)

// Add returns a+b. It fails with ErrExceedMax if the 128-bit raw sum
// overflows or exceeds MaxValue.
func Add(a, b FixedPoint64) (FixedPoint64, error) {
	raw, ok := a.raw.Add(b.raw)
	if !ok {
		obtrace.Rejected("add", errors.ErrExceedMax)

		return FixedPoint64{}, errors.ErrExceedMax
	}

	if err := checkDomain(raw); err != nil {
		obtrace.Rejected("add", err)

		return FixedPoint64{}, err
	}

	return FixedPoint64{raw: raw}, nil
}

// Sub returns a-b. It fails with ErrExceedMax if b > a (raw
// subtraction would underflow).
func Sub(a, b FixedPoint64) (FixedPoint64, error) {
	raw, ok := a.raw.Sub(b.raw)
	if !ok {
		obtrace.Rejected("sub", errors.ErrExceedMax)

		return FixedPoint64{}, errors.ErrExceedMax
	}

	if err := checkDomain(raw); err != nil {
		obtrace.Rejected("sub", err)

		return FixedPoint64{}, err
	}

	return FixedPoint64{raw: raw}, nil
}

// toWide promotes a 128-bit raw scalar to a 256-bit uint256.Int by
// composing its high and low 64-bit words with SetUint64/Lsh/Or —
// intermediate products of two such values can reach 256 bits, which
// is exactly the width multiply/divide need to stay exact before
// narrowing back and domain-checking the result.
func toWide(x uint128.Uint128) *uint256.Int {
	hi := new(uint256.Int).SetUint64(x.Hi)
	hi.Lsh(hi, 64) //nolint:mnd

	lo := new(uint256.Int).SetUint64(x.Lo)

	return hi.Or(hi, lo)
}

// fromWide narrows a uint256.Int back to a Uint128, reporting false if
// the value's top 128 bits are nonzero (it does not fit).
func fromWide(z *uint256.Int) (uint128.Uint128, bool) {
	b := z.Bytes32()

	for _, c := range b[:16] {
		if c != 0 {
			return uint128.Uint128{}, false
		}
	}

	hi := binary.BigEndian.Uint64(b[16:24])
	lo := binary.BigEndian.Uint64(b[24:32])

	return uint128.New(hi, lo), true
}

func wideTen10() *uint256.Int {
	return new(uint256.Int).SetUint64(pow10[DecimalPlaces].Lo)
}

func multiply(a, b FixedPoint64, mode RoundMode) (FixedPoint64, error) {
	product := new(uint256.Int).Mul(toWide(a.raw), toWide(b.raw))
	base := wideTen10()
	quotient := new(uint256.Int).Div(product, base)

	if mode == RoundUp {
		check := new(uint256.Int).Mul(quotient, base)
		if check.Lt(product) {
			quotient = new(uint256.Int).AddUint64(quotient, 1)
		}
	}

	raw, ok := fromWide(quotient)
	if !ok {
		obtrace.Rejected("multiply", errors.ErrExceedMax)

		return FixedPoint64{}, errors.ErrExceedMax
	}

	if err := checkDomain(raw); err != nil {
		obtrace.Rejected("multiply", err)

		return FixedPoint64{}, err
	}

	return FixedPoint64{raw: raw}, nil
}

// MultiplyTrunc returns a*b, truncating any sub-10^-10 remainder.
func MultiplyTrunc(a, b FixedPoint64) (FixedPoint64, error) {
	return multiply(a, b, Truncate)
}

// MultiplyRoundUp returns a*b, rounding up on any sub-10^-10 remainder.
func MultiplyRoundUp(a, b FixedPoint64) (FixedPoint64, error) {
	return multiply(a, b, RoundUp)
}

func divide(a, b FixedPoint64, mode RoundMode) (FixedPoint64, error) {
	if b.raw.IsZero() {
		obtrace.Rejected("divide", errors.ErrDivideByZero)

		return FixedPoint64{}, errors.ErrDivideByZero
	}

	numerator := new(uint256.Int).Mul(toWide(a.raw), wideTen10())
	divisor := toWide(b.raw)
	quotient := new(uint256.Int).Div(numerator, divisor)

	if mode == RoundUp {
		check := new(uint256.Int).Mul(quotient, divisor)
		if check.Lt(numerator) {
			quotient = new(uint256.Int).AddUint64(quotient, 1)
		}
	}

	raw, ok := fromWide(quotient)
	if !ok {
		obtrace.Rejected("divide", errors.ErrExceedMax)

		return FixedPoint64{}, errors.ErrExceedMax
	}

	if err := checkDomain(raw); err != nil {
		obtrace.Rejected("divide", err)

		return FixedPoint64{}, err
	}

	return FixedPoint64{raw: raw}, nil
}

// DivideTrunc returns a/b, truncating any sub-10^-10 remainder. It
// fails with ErrDivideByZero if b is zero.
func DivideTrunc(a, b FixedPoint64) (FixedPoint64, error) {
	return divide(a, b, Truncate)
}

// DivideRoundUp returns a/b, rounding up on any sub-10^-10 remainder.
// It fails with ErrDivideByZero if b is zero.
func DivideRoundUp(a, b FixedPoint64) (FixedPoint64, error) {
	return divide(a, b, RoundUp)
}
