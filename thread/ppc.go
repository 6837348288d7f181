package thread

import (
	"github.com/wnxd/machoinspect/cpu"
	"github.com/wnxd/machoinspect/describe"
)

var _ = register(PPC_THREAD_STATE, fixed[PPCThreadState](), cpu.CPU_TYPE_POWERPC)

// PPCThreadState is ppc_thread_state_t.
type PPCThreadState struct {
	SRR0   uint32
	SRR1   uint32
	R      [32]uint32
	CR     uint32
	XER    uint32
	LR     uint32
	CTR    uint32
	MQ     uint32
	VRSave uint32
}

func (*PPCThreadState) state() {}

func (*PPCThreadState) Name() string { return "PPC_THREAD_STATE" }

func (s *PPCThreadState) Fields() []describe.Field {
	fields := []describe.Field{
		describe.Hex("srr0", s.SRR0),
		describe.Hex("srr1", s.SRR1),
	}
	fields = append(fields, describe.Indexed("r", s.R[:])...)
	return append(fields,
		describe.Hex("cr", s.CR),
		describe.Hex("xer", s.XER),
		describe.Hex("lr", s.LR),
		describe.Hex("ctr", s.CTR),
		describe.Hex("mq", s.MQ),
		describe.Hex("vrsave", s.VRSave),
	)
}
