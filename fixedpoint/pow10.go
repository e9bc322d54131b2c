package fixedpoint

import (
	"fmt"

	"github.com/ferum-labs/ferumstd/errors"
	"github.com/ferum-labs/ferumstd/uint128"
)

// pow10 holds 10^0 .. 10^20, computed once at package init: a flat
// table lookup with no branches to keep in sync by hand.
var pow10 [21]uint128.Uint128 //nolint:gochecknoglobals

func init() { //nolint:gochecknoinits
	pow10[0] = uint128.FromUint64(1)

	for i := 1; i < len(pow10); i++ {
		v, ok := pow10[i-1].MulUint64(10) //nolint:mnd
		if !ok {
			panic(fmt.Sprintf("fixedpoint: pow10 table overflowed computing 10^%d", i))
		}

		pow10[i] = v
	}
}

// pow10At returns 10^n for n in [0, 20], or ErrExceedMaxExp outside
// that range.
func pow10At(n int) (uint128.Uint128, error) {
	if n < 0 || n >= len(pow10) {
		return uint128.Uint128{}, errors.ErrExceedMaxExp
	}

	return pow10[n], nil
}
