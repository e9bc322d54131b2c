// Package fixedpoint provides FixedPoint64, a 128-bit-backed
// fixed-point decimal with exactly 10 fractional digits and a
// whole-number domain matching an unsigned 64-bit integer.
//
// FixedPoint64's raw scalar is a uint128.Uint128 interpreted as
// v * 10^-10. Most operations enforce a domain ceiling of 2^64-1 on
// that raw scalar (MaxValue); wide intermediate products and
// quotients that could overflow 128 bits are computed at 256-bit
// width via github.com/holiman/uint256, following the domain-ceiling-
// checked arithmetic idiom (check before you wrap, fail with a typed
// error rather than silently truncating) used throughout this module.
package fixedpoint

import (
	"github.com/ferum-labs/ferumstd/errors"
	"github.com/ferum-labs/ferumstd/uint128"
)

// DecimalPlaces is the number of fractional decimal digits a
// FixedPoint64's raw scalar always represents.
const DecimalPlaces = 10

// MaxValue is the domain ceiling for a FixedPoint64's raw scalar: most
// operations fail with ErrExceedMax if their mathematically correct
// result would exceed this.
var MaxValue = uint128.New(0, ^uint64(0)) //nolint:gochecknoglobals // 2^64 - 1

// FixedPoint64 is an opaque non-negative fixed-point scalar. Its raw
// representation ranges over [0, 2^128-1], though MaxValue (2^64-1)
// bounds the result of ordinary arithmetic. The zero value represents
// 0.
type FixedPoint64 struct {
	raw uint128.Uint128
}

// Raw returns x's underlying 128-bit scalar (v such that x represents
// v * 10^-10).
func (x FixedPoint64) Raw() uint128.Uint128 {
	return x.raw
}

// Zero returns the FixedPoint64 representing 0.
func Zero() FixedPoint64 {
	return FixedPoint64{raw: uint128.FromUint64(0)}
}

// One returns the FixedPoint64 representing 1 (raw 10^10).
func One() FixedPoint64 {
	return FixedPoint64{raw: pow10[DecimalPlaces]}
}

// Half returns the FixedPoint64 representing 0.5 (raw 5*10^9).
func Half() FixedPoint64 {
	return FixedPoint64{raw: uint128.FromUint64(5_000_000_000)}
}

// MinFP returns the smallest representable FixedPoint64 (0).
func MinFP() FixedPoint64 {
	return Zero()
}

// MaxFP returns the FixedPoint64 whose raw scalar is 2^128-1. This
// value is a sentinel only: it exceeds MaxValue, so arithmetic on it
// fails with ErrExceedMax unless the result falls back to MaxValue or
// below (Sub(MaxFP(), MaxFP()) or a product with Zero() succeeds).
func MaxFP() FixedPoint64 {
	return FixedPoint64{raw: uint128.Max}
}

// NewU64 wraps a raw scalar without any unit conversion: NewU64(12345)
// represents 0.0000012345.
func NewU64(raw uint64) FixedPoint64 {
	return FixedPoint64{raw: uint128.FromUint64(raw)}
}

// NewU128 wraps a raw 128-bit scalar without any unit conversion.
func NewU128(raw uint128.Uint128) FixedPoint64 {
	return FixedPoint64{raw: raw}
}

func checkDomain(raw uint128.Uint128) error {
	if raw.GreaterThan(MaxValue) {
		return errors.ErrExceedMax
	}

	return nil
}

// LessThan reports whether x's raw scalar is strictly less than y's.
func (x FixedPoint64) LessThan(y FixedPoint64) bool {
	return x.raw.LessThan(y.raw)
}

// LessThanOrEqual reports whether x's raw scalar is at most y's.
func (x FixedPoint64) LessThanOrEqual(y FixedPoint64) bool {
	return x.raw.LessThanOrEqual(y.raw)
}

// GreaterThan reports whether x's raw scalar is strictly greater than y's.
func (x FixedPoint64) GreaterThan(y FixedPoint64) bool {
	return x.raw.GreaterThan(y.raw)
}

// GreaterThanOrEqual reports whether x's raw scalar is at least y's.
func (x FixedPoint64) GreaterThanOrEqual(y FixedPoint64) bool {
	return y.raw.LessThanOrEqual(x.raw)
}

// Equal reports whether x and y have the same raw scalar.
func (x FixedPoint64) Equal(y FixedPoint64) bool {
	return x.raw.Equals(y.raw)
}

// Min returns whichever of a, b has the smaller raw scalar.
func Min(a, b FixedPoint64) FixedPoint64 {
	if a.LessThanOrEqual(b) {
		return a
	}

	return b
}

// Max returns whichever of a, b has the larger raw scalar.
func Max(a, b FixedPoint64) FixedPoint64 {
	if a.GreaterThanOrEqual(b) {
		return a
	}

	return b
}
