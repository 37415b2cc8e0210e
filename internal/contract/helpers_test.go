package contract

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/require"
)

const tokenABI = `[
	{"type":"constructor","inputs":[{"name":"symbol","type":"string"},{"name":"supply","type":"uint256"}],"stateMutability":"nonpayable"},
	{"type":"function","name":"balanceOf","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
	{"type":"function","name":"approve","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
	{"type":"function","name":"name","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"pure"},
	{"type":"function","name":"totalSupply","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"store","inputs":[{"name":"v","type":"uint8"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"store","inputs":[{"name":"v","type":"bytes32"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"deposit","inputs":[],"outputs":[],"stateMutability":"payable"},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]},
	{"type":"event","name":"Memo","anonymous":false,"inputs":[{"name":"text","type":"string","indexed":false}]}
]`

func parsedTokenABI(t *testing.T) abi.ABI {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(tokenABI))
	require.NoError(t, err)
	return parsed
}

func tokenBinding(t *testing.T) *Binding {
	t.Helper()
	return &Binding{Name: "Token", ABI: parsedTokenABI(t), Bytecode: []byte{0x60, 0x80}}
}

// writeArtifact writes an artifact JSON document at root/rel.
func writeArtifact(t *testing.T, root, rel string, bytecode any) string {
	t.Helper()
	doc := map[string]any{
		"abi":      json.RawMessage(tokenABI),
		"bytecode": bytecode,
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
