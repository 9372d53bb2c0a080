package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressBech32RoundTrip(t *testing.T) {
	addr := MustAddressFromBytes([]byte{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		11, 12, 13, 14, 15, 16, 17, 18, 19, 20,
	})
	encoded := addr.String()
	require.Contains(t, encoded, StakerPrefix)

	decoded, err := Parse(encoded)
	require.NoError(t, err)
	require.True(t, addr.Equal(decoded))
}

func TestAddressFromBytesRejectsWrongLength(t *testing.T) {
	_, err := AddressFromBytes([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestParseRejectsForeignPrefix(t *testing.T) {
	_, err := Parse("nhb1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq5ganjq")
	require.Error(t, err)
}

func TestAddressLessOrdering(t *testing.T) {
	var low, high Address
	high[0] = 1
	require.True(t, low.Less(high))
	require.False(t, high.Less(low))
	require.False(t, low.Less(low))
}

func TestAddressIsZero(t *testing.T) {
	var a Address
	require.True(t, a.IsZero())
	a[19] = 1
	require.False(t, a.IsZero())
}

func TestRandomAddressDistinct(t *testing.T) {
	require.False(t, RandomAddress().Equal(RandomAddress()))
}
