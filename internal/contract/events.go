package contract

import (
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"
)

// Events maps an event name to its occurrences in emission order. An
// occurrence is the bare value for single-argument events and the ordered
// argument list otherwise.
type Events map[string][]any

// Names returns the event names in sorted order.
func (e Events) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the total number of decoded occurrences.
func (e Events) Count() int {
	n := 0
	for _, occ := range e {
		n += len(occ)
	}
	return n
}

// DecodeEvents decodes the logs that belong to parsed. Logs whose first topic
// is not an event of the interface, anonymous logs and logs that fail to
// decode are skipped. The result is never nil.
func DecodeEvents(parsed abi.ABI, logs []*types.Log) Events {
	out := Events{}
	for _, lg := range logs {
		if lg == nil || len(lg.Topics) == 0 {
			continue
		}
		ev, err := parsed.EventByID(lg.Topics[0])
		if err != nil {
			continue
		}
		args, err := decodeEvent(ev, lg)
		if err != nil {
			continue
		}
		if len(args) == 1 {
			out[ev.Name] = append(out[ev.Name], args[0])
		} else {
			out[ev.Name] = append(out[ev.Name], args)
		}
	}
	return out
}

func decodeEvent(ev *abi.Event, lg *types.Log) ([]any, error) {
	values := make(map[string]any, len(ev.Inputs))
	if err := ev.Inputs.NonIndexed().UnpackIntoMap(values, lg.Data); err != nil {
		return nil, err
	}

	var indexed abi.Arguments
	for _, in := range ev.Inputs {
		if in.Indexed {
			indexed = append(indexed, in)
		}
	}
	if err := abi.ParseTopicsIntoMap(values, indexed, lg.Topics[1:]); err != nil {
		return nil, err
	}

	args := make([]any, len(ev.Inputs))
	for i, in := range ev.Inputs {
		args[i] = values[in.Name]
	}
	return args, nil
}
