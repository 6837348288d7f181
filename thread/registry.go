package thread

import (
	"github.com/wnxd/machoinspect/cpu"
	"github.com/wnxd/machoinspect/encoding"
)

type decodeFunc func(cpu.Type, encoding.Stream) (State, error)

type entry struct {
	size    int
	unified bool
	decode  decodeFunc
}

type registryKey struct {
	cpu    cpu.Type
	flavor Flavor
}

var registry = make(map[registryKey]entry)

func register(flavor Flavor, e entry, cpus ...cpu.Type) bool {
	for _, typ := range cpus {
		key := registryKey{typ, flavor}
		if _, ok := registry[key]; ok {
			return false
		}
		registry[key] = e
	}
	return true
}

func lookup(typ cpu.Type, flavor Flavor) (entry, bool) {
	e, ok := registry[registryKey{typ, flavor}]
	return e, ok
}

// fixed builds the entry for a state whose payload is exactly its struct layout.
func fixed[S any, P interface {
	*S
	State
}]() entry {
	return entry{
		size: encoding.DecodeSize((*S)(nil)),
		decode: func(_ cpu.Type, stream encoding.Stream) (State, error) {
			p := P(new(S))
			if err := encoding.Decode(stream, p); err != nil {
				return nil, err
			}
			return p, nil
		},
	}
}

// StateSize reports the payload width of the decoder registered for
// (typ, flavor).
func StateSize(typ cpu.Type, flavor Flavor) (int, bool) {
	e, ok := lookup(typ, flavor)
	return e.size, ok
}

// DecodeState decodes the payload at the stream position. Unregistered pairs
// yield Unknown and consume nothing.
func DecodeState(typ cpu.Type, flavor Flavor, stream encoding.Stream) (State, error) {
	e, ok := lookup(typ, flavor)
	if !ok {
		return Unknown{}, nil
	}
	return e.decode(typ, stream)
}

// decodeUnified reads the nested header of a unified state, dispatches the
// inner flavor and skips the rest of the union.
func decodeUnified(typ cpu.Type, stream encoding.Stream, union int) (StateHeader, State, error) {
	var hdr StateHeader
	if err := encoding.Decode(stream, &hdr); err != nil {
		return hdr, nil, err
	}
	e, ok := lookup(typ, hdr.Flavor)
	if !ok || e.unified || e.size > union {
		return hdr, Unknown{}, stream.Skip(union)
	}
	inner, err := e.decode(typ, stream)
	if err != nil {
		return hdr, nil, err
	}
	if pad := union - e.size; pad > 0 {
		if err := stream.Skip(pad); err != nil {
			return hdr, nil, err
		}
	}
	return hdr, inner, nil
}
