package contract

import (
	"strings"

	"golang.org/x/crypto/sha3"
)

// Selector returns the 4-byte function selector of a signature. Parameter
// names are dropped first, so "transfer(address to, uint256 amount)" and
// "transfer(address,uint256)" agree.
func Selector(signature string) []byte {
	return Keccak([]byte(NormalizeSignature(signature)))[:4]
}

// Keccak returns the legacy Keccak-256 digest of data.
func Keccak(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// NormalizeSignature removes parameter names, keeping only types.
func NormalizeSignature(sig string) string {
	sig = strings.TrimSpace(sig)
	open := strings.Index(sig, "(")
	if open < 0 || !strings.HasSuffix(sig, ")") {
		return sig
	}

	name := strings.TrimSpace(sig[:open])
	params := SplitParams(sig[open+1 : len(sig)-1])
	types := make([]string, 0, len(params))
	for _, p := range params {
		if fields := strings.Fields(p); len(fields) > 0 {
			types = append(types, fields[0])
		}
	}
	return name + "(" + strings.Join(types, ",") + ")"
}
