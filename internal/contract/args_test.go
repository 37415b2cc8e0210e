package contract

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustType(t *testing.T, s string) abi.Type {
	t.Helper()
	typ, err := abi.NewType(s, "", nil)
	require.NoError(t, err)
	return typ
}

func args(t *testing.T, types ...string) abi.Arguments {
	t.Helper()
	out := make(abi.Arguments, len(types))
	for i, s := range types {
		out[i] = abi.Argument{Type: mustType(t, s)}
	}
	return out
}

// ---------------------------------------------------------------------------
// SplitParams
// ---------------------------------------------------------------------------

func TestSplitParams(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"a", []string{"a"}},
		{"a, b ,c", []string{"a", "b", "c"}},
		{"[1,2,3],x", []string{"[1,2,3]", "x"}},
		{"x,[[1,2],[3]],y", []string{"x", "[[1,2],[3]]", "y"}},
		{"a,,b", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitParams(tt.in))
		})
	}
}

// ---------------------------------------------------------------------------
// ParseArgs
// ---------------------------------------------------------------------------

func TestParseArgsScalars(t *testing.T) {
	addr := "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	got, err := ParseArgs(
		args(t, "uint256", "int256", "uint8", "int64", "bool", "string", "address", "bytes", "bytes4", "uint24"),
		[]string{"1000", "-5", "255", "-9", "true", "hello, world", addr, "0xdeadbeef", "0x0102", "0x10"},
	)
	require.NoError(t, err)

	assert.Equal(t, big.NewInt(1000), got[0])
	assert.Equal(t, big.NewInt(-5), got[1])
	assert.Equal(t, uint8(255), got[2])
	assert.Equal(t, int64(-9), got[3])
	assert.Equal(t, true, got[4])
	assert.Equal(t, "hello, world", got[5])
	assert.Equal(t, common.HexToAddress(addr), got[6])
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, got[7])
	assert.Equal(t, [4]byte{0x01, 0x02, 0x00, 0x00}, got[8])
	assert.Equal(t, big.NewInt(16), got[9])
}

func TestParseArgsLists(t *testing.T) {
	got, err := ParseArgs(
		args(t, "uint256[]", "address[2]", "string[]"),
		[]string{
			"[1, 2, 3]",
			`["0x0000000000000000000000000000000000000001","0x0000000000000000000000000000000000000002"]`,
			`["a","b"]`,
		},
	)
	require.NoError(t, err)

	assert.Equal(t, []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}, got[0])
	assert.Equal(t, [2]common.Address{common.HexToAddress("0x1"), common.HexToAddress("0x2")}, got[1])
	assert.Equal(t, []string{"a", "b"}, got[2])
}

func TestParseArgsRejects(t *testing.T) {
	tests := []struct {
		typ string
		val string
	}{
		{"uint256", "abc"},
		{"uint256", "-1"},
		{"uint8", "256"},
		{"int8", "128"},
		{"int8", "-129"},
		{"bool", "maybe"},
		{"address", "0x1234"},
		{"bytes", "0xzz"},
		{"bytes2", "0x010203"},
		{"uint256[]", "1,2"},
		{"uint256[2]", "[1]"},
		{"uint256[]", `["x"]`},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"="+tt.val, func(t *testing.T) {
			_, err := ParseArgs(args(t, tt.typ), []string{tt.val})
			assert.ErrorIs(t, err, ErrInvalidArgs)
		})
	}
}

func TestParseArgsIntegerNotation(t *testing.T) {
	got, err := ParseArgs(
		args(t, "uint256", "uint256", "uint256", "int256", "uint8"),
		[]string{"010", "09", "0XfF", "-0x10", "007"},
	)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10), got[0])
	assert.Equal(t, big.NewInt(9), got[1])
	assert.Equal(t, big.NewInt(255), got[2])
	assert.Equal(t, big.NewInt(-16), got[3])
	assert.Equal(t, uint8(7), got[4])

	for _, bad := range []string{"1_000", "0x", "0b101", "0o17", "0x-5", "--1", ""} {
		_, err := ParseArgs(args(t, "int256"), []string{bad})
		assert.ErrorIs(t, err, ErrInvalidArgs, bad)
	}
}

func TestParseArgsCountMismatch(t *testing.T) {
	_, err := ParseArgs(args(t, "uint256", "bool"), []string{"1"})
	assert.ErrorIs(t, err, ErrInvalidArgs)
	assert.Contains(t, err.Error(), "expected 2, got 1")
}

func TestParseArgsRangeBoundaries(t *testing.T) {
	got, err := ParseArgs(args(t, "int8", "int8", "uint64"), []string{"127", "-128", "18446744073709551615"})
	require.NoError(t, err)
	assert.Equal(t, int8(127), got[0])
	assert.Equal(t, int8(-128), got[1])
	assert.Equal(t, uint64(18446744073709551615), got[2])
}

// ---------------------------------------------------------------------------
// PackMethod / PackConstructor
// ---------------------------------------------------------------------------

func TestPackMethodSelectors(t *testing.T) {
	b := tokenBinding(t)

	tests := []struct {
		method   string
		params   []string
		selector string
	}{
		{"balanceOf", []string{"0x0000000000000000000000000000000000000001"}, "70a08231"},
		{"transfer", []string{"0x0000000000000000000000000000000000000001", "10"}, "a9059cbb"},
		{"approve", []string{"0x0000000000000000000000000000000000000001", "10"}, "095ea7b3"},
		{"name", nil, "06fdde03"},
		{"totalSupply", nil, "18160ddd"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			m, err := b.Method(tt.method)
			require.NoError(t, err)
			data, err := PackMethod(m, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.selector, hex.EncodeToString(data[:4]))
			assert.Len(t, data, 4+32*len(tt.params))
		})
	}
}

func TestPackMethodEncodesArguments(t *testing.T) {
	b := tokenBinding(t)
	m, err := b.Method("transfer")
	require.NoError(t, err)

	data, err := PackMethod(m, []string{"0x00000000000000000000000000000000000000ff", "0x10"})
	require.NoError(t, err)

	encoded := hex.EncodeToString(data[4:])
	assert.Equal(t, strings.Repeat("0", 62)+"ff", encoded[:64])
	assert.Equal(t, strings.Repeat("0", 62)+"10", encoded[64:])
}

func TestPackConstructor(t *testing.T) {
	b := tokenBinding(t)

	data, err := PackConstructor(b, []string{"TKN", "1000000"})
	require.NoError(t, err)

	unpacked, err := b.ABI.Constructor.Inputs.Unpack(data)
	require.NoError(t, err)
	assert.Equal(t, "TKN", unpacked[0])
	assert.Equal(t, big.NewInt(1_000_000), unpacked[1])

	_, err = PackConstructor(b, []string{"TKN"})
	assert.ErrorIs(t, err, ErrInvalidArgs)
}

// ---------------------------------------------------------------------------
// FormatValue
// ---------------------------------------------------------------------------

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"big", big.NewInt(42), "42"},
		{"address", common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), "0x5FbDB2315678afecb367f032d93F642f64180aa3"},
		{"bytes", []byte{0xca, 0xfe}, "0xcafe"},
		{"fixed bytes", [2]byte{0xca, 0xfe}, "0xcafe"},
		{"bool", true, "true"},
		{"uint8", uint8(7), "7"},
		{"string", "hi", "hi"},
		{"tuple", []any{big.NewInt(1), "x"}, "[1, x]"},
		{"slice", []*big.Int{big.NewInt(1), big.NewInt(2)}, "[1, 2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}
