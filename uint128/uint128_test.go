package uint128_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferum-labs/ferumstd/uint128"
)

func TestAddOverflow(t *testing.T) {
	t.Parallel()

	sum, ok := uint128.Max.Add(uint128.FromUint64(1))
	require.False(t, ok)
	require.True(t, sum.IsZero())

	sum, ok = uint128.FromUint64(1).Add(uint128.FromUint64(2))
	require.True(t, ok)
	require.Equal(t, uint128.FromUint64(3), sum)
}

func TestSubUnderflow(t *testing.T) {
	t.Parallel()

	_, ok := uint128.FromUint64(1).Sub(uint128.FromUint64(2))
	require.False(t, ok)

	diff, ok := uint128.FromUint64(5).Sub(uint128.FromUint64(2))
	require.True(t, ok)
	require.Equal(t, uint128.FromUint64(3), diff)
}

func TestMulUint64(t *testing.T) {
	t.Parallel()

	product, ok := uint128.FromUint64(1_000_000_000).MulUint64(1_000_000_000)
	require.True(t, ok)
	require.Equal(t, uint128.New(0, 1_000_000_000_000_000_000), product)

	_, ok = uint128.Max.MulUint64(2)
	require.False(t, ok)
}

func TestDivModUint64(t *testing.T) {
	t.Parallel()

	q, r := uint128.DivModUint64(uint128.FromUint64(2056), 1056)
	require.Equal(t, uint128.FromUint64(1), q)
	require.Equal(t, uint64(1000), r)
}

func TestCmpAndOrdering(t *testing.T) {
	t.Parallel()

	require.True(t, uint128.FromUint64(1).LessThan(uint128.FromUint64(2)))
	require.True(t, uint128.New(1, 0).GreaterThan(uint128.FromUint64(^uint64(0))))
	require.Equal(t, 0, uint128.FromUint64(7).Cmp(uint128.FromUint64(7)))
}

func TestString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0", uint128.Uint128{}.String())
	require.Equal(t, "12345", uint128.FromUint64(12345).String())
	require.Equal(t, "340282366920938463463374607431768211455", uint128.Max.String())
}
