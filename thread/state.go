package thread

import (
	"github.com/wnxd/machoinspect/describe"
)

// State is one decoded register capture. The set of implementations is closed:
// new variants are added in this package.
type State interface {
	describe.Describer
	Name() string
	state()
}

// StateHeader is the flavor/count pair that precedes every payload, and that
// unified states repeat in front of their union.
type StateHeader struct {
	Flavor Flavor
	Count  uint32
}

const stateHeaderSize = 8

// Unknown stands for any (cpu, flavor) pair without a decoder.
type Unknown struct{}

func (Unknown) state() {}

func (Unknown) Name() string {
	return "UNKNOWN"
}

func (Unknown) Fields() []describe.Field {
	return nil
}

func (h StateHeader) Fields() []describe.Field {
	return []describe.Field{
		describe.Dec("flavor", uint32(h.Flavor)),
		describe.Dec("count", h.Count),
	}
}
