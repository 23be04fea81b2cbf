package normalize

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRawHex(t *testing.T) {
	tests := []struct {
		input any
		want  bool
	}{
		{"ff", true},
		{"FF", true},
		{"0xAB", true},
		{"0XAB", true},
		{"0x_ff", true},
		{"dead_beef", true},
		{"-0x5", true},
		{"+a", true},
		{"  ab  ", true},
		{"0b1", true},
		{"0", true},
		{"", false},
		{"0x", false},
		{"0x_", false},
		{"_ff", false},
		{"ff_", false},
		{"f__f", false},
		{"hello", false},
		{"0xzz", false},
		{"12 34", false},
		{"--1", false},
		{255, false},
		{[]byte("ff"), false},
		{nil, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsRawHex(tt.input), "IsRawHex(%#v)", tt.input)
	}
}

func TestIsRawHex_NamedString(t *testing.T) {
	type topic string
	assert.True(t, IsRawHex(topic("0xdead")))
}

func TestNormalizeHexString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"ab", "ab"},
		{"AB", "ab"},
		{"abc", "0abc"},
		{"0xAB", "ab"},
		{"0xabc", "0abc"},
		{"0x0", "00"},
		// Textual replace, not a prefix strip.
		{"ab0xcd", "abcd"},
		{"0x0x12", "12"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHexString(tt.input))
		})
	}
}

func TestNormalizeHexString_EvenLowercaseIsFixedPoint(t *testing.T) {
	for _, s := range []string{"00", "ff", "0123456789abcdef", "deadbeef"} {
		assert.Equal(t, s, NormalizeHexString(s))
	}
}

func TestNormalizeHexString_OddGetsOnePad(t *testing.T) {
	for _, s := range []string{"f", "ABC", "12345"} {
		got := NormalizeHexString(s)
		assert.Len(t, got, len(s)+1)
		assert.Equal(t, byte('0'), got[0])
	}
}

func TestToHexString(t *testing.T) {
	type address [4]byte
	type wei uint64

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"int", 255, "ff"},
		{"zero", 0, "00"},
		{"odd digits", 4095, "0fff"},
		{"uint64 max", uint64(1<<64 - 1), "ffffffffffffffff"},
		{"uint8", uint8(10), "0a"},
		{"named int", wei(16), "10"},
		{"big int", new(big.Int).Lsh(big.NewInt(1), 80), "0100000000000000000000"},
		{"json number", json.Number("255"), "ff"},
		{"hex text", "0xAB", "ab"},
		{"hex text odd", "abc", "0abc"},
		{"plain text", "hi", "6869"},
		{"empty text", "", ""},
		{"bytes", []byte{0x01, 0xfe}, "01fe"},
		{"empty bytes", []byte{}, ""},
		{"byte array", address{0xde, 0xad, 0xbe, 0xef}, "deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHexString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToHexString_Negative(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{-5, "-5"},
		{int64(-0x123), "-123"},
		{big.NewInt(-1), "-1"},
		// Odd length after the sign is padded in front of it.
		{-255, "0-ff"},
	}

	for _, tt := range tests {
		got, err := ToHexString(tt.input)
		require.NoError(t, err, "ToHexString(%#v)", tt.input)
		assert.Equal(t, tt.want, got, "ToHexString(%#v)", tt.input)
	}
}

func TestNegativeIntegerCoercions(t *testing.T) {
	for _, n := range []int64{-5, -0x123, -1} {
		got, err := ToInt(n)
		require.NoError(t, err, "ToInt(%d)", n)
		assert.Equal(t, n, got.Int64())

		_, err = ToBytes(n)
		assert.ErrorIs(t, err, ErrInvalidHex, "ToBytes(%d)", n)
	}

	// "0-ff" is not a base-16 literal.
	_, err := ToInt(-255)
	assert.ErrorIs(t, err, ErrInvalidHex)
}

func TestToHexString_Errors(t *testing.T) {
	for _, v := range []any{nil, 1.5, true, struct{}{}, []int{1}, json.Number("1.5"), (*big.Int)(nil)} {
		_, err := ToHexString(v)
		assert.ErrorIs(t, err, ErrUnsupportedType, "ToHexString(%#v)", v)
	}
}

func TestToBytes(t *testing.T) {
	got, err := ToBytes(255)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff}, got)

	got, err = ToBytes("0x0102")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, got)

	got, err = ToBytes("A")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a}, got)
}

func TestToBytes_RoundTrip(t *testing.T) {
	for _, b := range [][]byte{{}, {0}, {0x00, 0x01}, []byte("hello"), {0xff, 0xee, 0xdd}} {
		h, err := ToHexString(b)
		require.NoError(t, err)
		got, err := ToBytes(h)
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
}

func TestToBytes_MalformedRawHex(t *testing.T) {
	// Raw hex text may carry a sign or separators that survive normalization.
	for _, s := range []string{"dead_beef", "-0x10", " ab"} {
		_, err := ToBytes(s)
		assert.ErrorIs(t, err, ErrInvalidHex, "ToBytes(%q)", s)
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		input any
		want  int64
	}{
		{255, 255},
		{"ff", 255},
		{"0xFF", 255},
		{[]byte{0x01, 0x00}, 256},
		{"-0x5", -5},
		{"a_b", 171},
		{"0x_ff", 255},
		{"dead_beef", 0xdeadbeef},
		{" ab ", 171},
		{"+0x100", 256},
	}

	for _, tt := range tests {
		got, err := ToInt(tt.input)
		require.NoError(t, err, "ToInt(%#v)", tt.input)
		assert.Equal(t, tt.want, got.Int64(), "ToInt(%#v)", tt.input)
	}
}

func TestToInt_RoundTrip(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	for _, n := range []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(255), big.NewInt(65536), huge} {
		h, err := ToHexString(n)
		require.NoError(t, err)
		got, err := ToInt(h)
		require.NoError(t, err)
		assert.Zero(t, n.Cmp(got), "round trip of %s gave %s", n, got)
	}
}

func TestToInt_Errors(t *testing.T) {
	_, err := ToInt([]byte{})
	assert.ErrorIs(t, err, ErrInvalidHex)

	// Normalization pads to "0 ab" and "0-ff", which are not literals.
	_, err = ToInt(" ab")
	assert.ErrorIs(t, err, ErrInvalidHex)
	_, err = ToInt("-ff")
	assert.ErrorIs(t, err, ErrInvalidHex)

	_, err = ToInt(3.14)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestToUint64(t *testing.T) {
	got, err := ToUint64("0x10")
	require.NoError(t, err)
	assert.Equal(t, uint64(16), got)

	_, err = ToUint64(new(big.Int).Lsh(big.NewInt(1), 64))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestRoundTripScenarios(t *testing.T) {
	h, err := ToHexString(255)
	require.NoError(t, err)
	assert.Equal(t, "ff", h)
	n, err := ToInt(h)
	require.NoError(t, err)
	assert.Equal(t, int64(255), n.Int64())

	h, err = ToHexString("0xAB")
	require.NoError(t, err)
	assert.Equal(t, "ab", h)
}
