package color

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRGB255RoundTrip(t *testing.T) {
	c := RGB255(16, 32, 200)
	r, g, b := c.RGB255Values()
	require.Equal(t, uint8(16), r)
	require.Equal(t, uint8(32), g)
	require.Equal(t, uint8(200), b)
}

func TestFromHex(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Color
	}{
		{"six digit", "#112233", RGB255(0x11, 0x22, 0x33)},
		{"three digit expands per nibble", "#123", RGB255(0x11, 0x22, 0x33)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromHex(tc.in)
			require.NoError(t, err)
			require.True(t, got.Equal(tc.want), "got %s want %s", got.Hex(), tc.want.Hex())
		})
	}
}

func TestFromHexRejectsBadInput(t *testing.T) {
	for _, in := range []string{"112233", "#12", "#1234567"} {
		_, err := FromHex(in)
		require.Error(t, err, in)
	}
}

func TestRGB01Clamps(t *testing.T) {
	c := RGB01(-0.5, 0.5, 1.5)
	r, g, b := c.RGB01Values()
	require.Equal(t, 0.0, r)
	require.Equal(t, 0.5, g)
	require.Equal(t, 1.0, b)
}

func TestCMYKRoundTrip(t *testing.T) {
	want := RGB255(200, 50, 50)
	cy, m, y, k := want.CMYK()
	got := CMYKColor(cy, m, y, k)
	require.True(t, got.Equal(want), "got %s want %s", got.Hex(), want.Hex())
}

func TestCMYKBlack(t *testing.T) {
	black := RGB255(0, 0, 0)
	_, _, _, k := black.CMYK()
	require.Equal(t, 1.0, k)
}

func TestHSLRoundTrip(t *testing.T) {
	want := RGB255(10, 200, 30)
	h, s, l := want.HSL()
	got := HSLColor(h, s, l)
	require.True(t, got.Equal(want), "got %s want %s", got.Hex(), want.Hex())
}

func TestHexFormat(t *testing.T) {
	c := RGB255(0, 255, 128)
	require.Equal(t, "#00ff80", c.Hex())
}

func TestSpaceString(t *testing.T) {
	require.Equal(t, "rgb", RGB.String())
	require.Equal(t, "cmyk", CMYK.String())
}
