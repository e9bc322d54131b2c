package fixedpoint

import (
	"github.com/ferum-labs/ferumstd/errors"
	"github.com/ferum-labs/ferumstd/internal/obtrace"
	"github.com/ferum-labs/ferumstd/uint128"
)

// RoundMode selects how ToU128Internal handles a fractional remainder
// that doesn't divide evenly into the requested number of decimal
// places.
type RoundMode int

const (
	// Truncate discards any precision-losing remainder silently.
	Truncate RoundMode = iota
	// RoundUp adds one unit in the last place whenever truncation would
	// have discarded a nonzero remainder.
	RoundUp
	// NoPrecisionLoss fails with ErrPrecisionLoss whenever truncation
	// would discard a nonzero remainder.
	NoPrecisionLoss
)

func checkDecimals(d int) error {
	if d < 0 || d > DecimalPlaces {
		return errors.ErrExceedMaxDecimals
	}

	return nil
}

// FromU128 produces the FixedPoint64 whose rendered value equals
// v * 10^-d, for d <= 10. It fails with ErrExceedMaxDecimals if d is
// out of range, or ErrExceedMax if the resulting raw scalar would
// exceed MaxValue or overflow 128 bits.
func FromU128(v uint128.Uint128, d int) (FixedPoint64, error) {
	if err := checkDecimals(d); err != nil {
		return FixedPoint64{}, err
	}

	base, err := pow10At(d)
	if err != nil {
		return FixedPoint64{}, err
	}

	step, err := pow10At(DecimalPlaces - d)
	if err != nil {
		return FixedPoint64{}, err
	}

	intPart, fracPart := uint128.DivModUint64(v, base.Lo)

	ten10, err := pow10At(DecimalPlaces)
	if err != nil {
		return FixedPoint64{}, err
	}

	rawInt, ok := intPart.MulUint64(ten10.Lo)
	if !ok {
		return FixedPoint64{}, errors.ErrExceedMax
	}

	rawFrac, ok := uint128.FromUint64(fracPart).MulUint64(step.Lo)
	if !ok {
		return FixedPoint64{}, errors.ErrExceedMax
	}

	raw, ok := rawInt.Add(rawFrac)
	if !ok {
		return FixedPoint64{}, errors.ErrExceedMax
	}

	if err := checkDomain(raw); err != nil {
		return FixedPoint64{}, err
	}

	return FixedPoint64{raw: raw}, nil
}

// ToU128Internal renders x to an integer scaled by 10^d (d <= 10),
// applying mode to the fractional remainder below that precision.
func ToU128Internal(x FixedPoint64, d int, mode RoundMode) (uint128.Uint128, error) {
	if err := checkDecimals(d); err != nil {
		return uint128.Uint128{}, err
	}

	base, err := pow10At(DecimalPlaces)
	if err != nil {
		return uint128.Uint128{}, err
	}

	step, err := pow10At(DecimalPlaces - d)
	if err != nil {
		return uint128.Uint128{}, err
	}

	baseOfD, err := pow10At(d)
	if err != nil {
		return uint128.Uint128{}, err
	}

	intPart, remainder := uint128.DivModUint64(x.raw, base.Lo)
	frac := remainder / step.Lo
	precisionLoss := frac*step.Lo < remainder

	rawOut, ok := intPart.MulUint64(baseOfD.Lo)
	if !ok {
		return uint128.Uint128{}, errors.ErrExceedMax
	}

	rawOut, ok = rawOut.Add(uint128.FromUint64(frac))
	if !ok {
		return uint128.Uint128{}, errors.ErrExceedMax
	}

	switch mode {
	case NoPrecisionLoss:
		if precisionLoss {
			obtrace.Rejected("to_u128_internal", errors.ErrPrecisionLoss)

			return uint128.Uint128{}, errors.ErrPrecisionLoss
		}

		return rawOut, nil
	case RoundUp:
		if !precisionLoss {
			return rawOut, nil
		}

		rawOut, ok = rawOut.Add(uint128.FromUint64(1))
		if !ok {
			return uint128.Uint128{}, errors.ErrExceedMax
		}

		return rawOut, nil
	case Truncate:
		return rawOut, nil
	default:
		return rawOut, nil
	}
}

// ToU64 narrows ToU128Internal's result to a uint64, failing with
// ErrExceedMax if it does not fit.
func ToU64(x FixedPoint64, d int, mode RoundMode) (uint64, error) {
	raw, err := ToU128Internal(x, d, mode)
	if err != nil {
		return 0, err
	}

	if raw.Hi != 0 {
		return 0, errors.ErrExceedMax
	}

	return raw.Lo, nil
}

// TruncToDecimals returns x rounded down to d decimal places,
// re-represented as a FixedPoint64.
func TruncToDecimals(x FixedPoint64, d int) (FixedPoint64, error) {
	raw, err := ToU128Internal(x, d, Truncate)
	if err != nil {
		return FixedPoint64{}, err
	}

	return FromU128(raw, d)
}

// RoundUpToDecimals returns x rounded up to d decimal places,
// re-represented as a FixedPoint64.
func RoundUpToDecimals(x FixedPoint64, d int) (FixedPoint64, error) {
	raw, err := ToU128Internal(x, d, RoundUp)
	if err != nil {
		return FixedPoint64{}, err
	}

	return FromU128(raw, d)
}
