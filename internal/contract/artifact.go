package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrArtifactNotFound is returned when no compiled artifact matches a name.
var ErrArtifactNotFound = errors.New("artifact not found")

// Load finds the artifact for name under dirs and parses it into a Binding.
// name is either a bare contract name ("Token") or a fully qualified one
// ("contracts/Token.sol:Token").
func Load(dirs []string, name string) (*Binding, error) {
	path, err := FindArtifact(dirs, name)
	if err != nil {
		return nil, err
	}
	b, err := LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	b.Name = name
	return b, nil
}

// ArtifactExists reports whether exactly one artifact matches name.
func ArtifactExists(dirs []string, name string) bool {
	_, err := FindArtifact(dirs, name)
	return err == nil
}

// FindArtifact returns the artifact path for name. Hardhat lays artifacts out
// as artifacts/<source>/<Name>.json and Foundry as out/<Name>.sol/<Name>.json;
// both are found by walking each directory. Debug and build-info files are
// skipped.
func FindArtifact(dirs []string, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty contract name", ErrArtifactNotFound)
	}

	if source, contractName, ok := strings.Cut(name, ":"); ok {
		// Hardhat keeps the source path, Foundry only the file name.
		source = filepath.FromSlash(source)
		for _, dir := range dirs {
			for _, sub := range []string{source, filepath.Base(source)} {
				p := filepath.Join(dir, sub, contractName+".json")
				if fileExists(p) {
					return p, nil
				}
			}
		}
		return "", fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
	}

	var matches []string
	for _, dir := range dirs {
		found, err := walkArtifacts(dir, name+".json")
		if err != nil {
			return "", err
		}
		matches = append(matches, found...)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("multiple artifacts named %s, use the fully qualified name: %s",
			name, strings.Join(matches, ", "))
	}
}

func walkArtifacts(dir, file string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == file {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return out, nil
}

// LoadArtifact parses a Hardhat or Foundry artifact file. Bytecode is
// optional: interfaces and abstract contracts yield a Binding that cannot be
// deployed.
func LoadArtifact(path string) (*Binding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read artifact file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("artifact file is empty: %s", path)
	}

	var raw struct {
		ContractName string          `json:"contractName"`
		ABI          json.RawMessage `json:"abi"`
		Bytecode     json.RawMessage `json:"bytecode"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid artifact JSON: %w", err)
	}
	if len(raw.ABI) < 2 || raw.ABI[0] != '[' {
		return nil, fmt.Errorf("artifact has no \"abi\" array: %s", path)
	}

	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("parsing artifact ABI: %w", err)
	}

	b := &Binding{Name: raw.ContractName, ABI: parsed}
	if b.Name == "" {
		b.Name = strings.TrimSuffix(filepath.Base(path), ".json")
	}

	if len(raw.Bytecode) == 0 || string(raw.Bytecode) == "null" {
		return b, nil
	}
	bcHex, err := extractBytecodeHex(raw.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("extracting bytecode from artifact: %w", err)
	}
	if bcHex == "" || bcHex == "0x" {
		return b, nil
	}
	if !strings.HasPrefix(bcHex, "0x") {
		bcHex = "0x" + bcHex
	}
	code, err := hexutil.Decode(bcHex)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode hex in artifact (unlinked library?): %w", err)
	}
	b.Bytecode = code
	return b, nil
}

// extractBytecodeHex accepts Hardhat's "bytecode": "0x..." and Foundry's
// "bytecode": {"object": "0x..."}.
func extractBytecodeHex(raw json.RawMessage) (string, error) {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.TrimSpace(str), nil
	}

	var obj struct {
		Object *string `json:"object"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Object != nil {
		return strings.TrimSpace(*obj.Object), nil
	}

	return "", fmt.Errorf("bytecode field is neither a hex string nor a {\"object\":\"0x...\"} object")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
