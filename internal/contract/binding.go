// Package contract binds contract names to their interface, bytecode and
// address, and converts between CLI strings and ABI values.
package contract

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Binding associates a contract name with its interface and, once deployed,
// its address.
type Binding struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte // deployment bytecode, nil for interfaces
	Address  *common.Address
}

// Deployable reports whether the binding carries deployment bytecode.
func (b *Binding) Deployable() bool {
	return len(b.Bytecode) > 0
}

// Deployed reports whether the binding is attached to an address.
func (b *Binding) Deployed() bool {
	return b.Address != nil
}

// Attach returns a copy of b bound to addr.
func (b *Binding) Attach(addr common.Address) *Binding {
	cp := *b
	cp.Address = &addr
	return &cp
}

// Method resolves name to a method of the interface. name may be the Go-side
// key ("set", "set0"), the canonical signature ("set(string)") or, when it is
// not overloaded, the raw Solidity name.
func (b *Binding) Method(name string) (abi.Method, error) {
	if m, ok := b.ABI.Methods[name]; ok {
		return m, nil
	}

	var byRaw []abi.Method
	for _, m := range b.ABI.Methods {
		if m.Sig == name {
			return m, nil
		}
		if m.RawName == name {
			byRaw = append(byRaw, m)
		}
	}
	switch len(byRaw) {
	case 1:
		return byRaw[0], nil
	case 0:
		return abi.Method{}, fmt.Errorf("method %q not found on %s", name, b.Name)
	default:
		sigs := make([]string, len(byRaw))
		for i, m := range byRaw {
			sigs[i] = m.Sig
		}
		sort.Strings(sigs)
		return abi.Method{}, fmt.Errorf("method %q is overloaded on %s, use one of %v", name, b.Name, sigs)
	}
}

// ReadOnly reports whether m is declared view, pure or constant. An interface
// with no mutability information yields false.
func ReadOnly(m abi.Method) bool {
	return m.IsConstant()
}
