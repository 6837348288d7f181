package thread

import (
	"fmt"

	"github.com/wnxd/machoinspect/cpu"
	"github.com/wnxd/machoinspect/describe"
	"github.com/wnxd/machoinspect/encoding"
)

const armUnionSize = 272 // sizeof(arm_thread_state64_t)

var arm64Family = []cpu.Type{cpu.CPU_TYPE_ARM64, cpu.CPU_TYPE_ARM64_32}

var (
	_ = register(ARM_THREAD_STATE, fixed[ArmThreadState32](), cpu.CPU_TYPE_ARM)
	_ = register(ARM_VFP_STATE, fixed[ArmVFPState](), cpu.CPU_TYPE_ARM)
	_ = register(ARM_EXCEPTION_STATE, fixed[ArmExceptionState32](), cpu.CPU_TYPE_ARM)
	_ = register(ARM_THREAD_STATE32, fixed[ArmThreadState32](), cpu.CPU_TYPE_ARM, cpu.CPU_TYPE_ARM64, cpu.CPU_TYPE_ARM64_32)

	_ = register(ARM_THREAD_STATE, entry{
		size:    stateHeaderSize + armUnionSize,
		unified: true,
		decode:  decodeArmUnified,
	}, arm64Family...)
	_ = register(ARM_THREAD_STATE64, fixed[ArmThreadState64](), arm64Family...)
	_ = register(ARM_EXCEPTION_STATE64, fixed[ArmExceptionState64](), arm64Family...)
	_ = register(ARM_DEBUG_STATE64, fixed[ArmDebugState64](), arm64Family...)
	_ = register(ARM_NEON_STATE64, fixed[ArmNeonState64](), arm64Family...)
)

// ArmThreadState64 is arm_thread_state64_t.
type ArmThreadState64 struct {
	X     [29]uint64
	FP    uint64
	LR    uint64
	SP    uint64
	PC    uint64
	CPSR  uint32
	Flags uint32
}

// ArmExceptionState64 is arm_exception_state64_t.
type ArmExceptionState64 struct {
	FAR       uint64
	ESR       uint32
	Exception uint32
}

// ArmDebugState64 is arm_debug_state64_t.
type ArmDebugState64 struct {
	BVR   [16]uint64
	BCR   [16]uint64
	WVR   [16]uint64
	WCR   [16]uint64
	MDSCR uint64
}

// ArmNeonState64 is arm_neon_state64_t. Each V register is stored as its low
// and high 64-bit halves. The C struct is 16-byte aligned, so it ends in 8
// bytes of padding.
type ArmNeonState64 struct {
	V    [32][2]uint64
	FPSR uint32
	FPCR uint32
	_    [8]byte
}

// ArmThreadState32 is arm_thread_state_t.
type ArmThreadState32 struct {
	R    [13]uint32
	SP   uint32
	LR   uint32
	PC   uint32
	CPSR uint32
}

// ArmVFPState is arm_vfp_state_t.
type ArmVFPState struct {
	R     [64]uint32
	FPSCR uint32
}

// ArmExceptionState32 is arm_exception_state_t.
type ArmExceptionState32 struct {
	Exception uint32
	FSR       uint32
	FAR       uint32
}

// ArmUnifiedThreadState is arm_unified_thread_state_t: a nested header that
// selects the 32- or 64-bit thread state held in the union.
type ArmUnifiedThreadState struct {
	Header StateHeader
	State  State
}

func decodeArmUnified(typ cpu.Type, stream encoding.Stream) (State, error) {
	hdr, inner, err := decodeUnified(typ, stream, armUnionSize)
	if err != nil {
		return nil, err
	}
	return &ArmUnifiedThreadState{Header: hdr, State: inner}, nil
}

func (*ArmThreadState64) state()      {}
func (*ArmExceptionState64) state()   {}
func (*ArmDebugState64) state()       {}
func (*ArmNeonState64) state()        {}
func (*ArmThreadState32) state()      {}
func (*ArmVFPState) state()           {}
func (*ArmExceptionState32) state()   {}
func (*ArmUnifiedThreadState) state() {}

func (*ArmThreadState64) Name() string      { return "ARM_THREAD_STATE64" }
func (*ArmExceptionState64) Name() string   { return "ARM_EXCEPTION_STATE64" }
func (*ArmDebugState64) Name() string       { return "ARM_DEBUG_STATE64" }
func (*ArmNeonState64) Name() string        { return "ARM_NEON_STATE64" }
func (*ArmThreadState32) Name() string      { return "ARM_THREAD_STATE32" }
func (*ArmVFPState) Name() string           { return "ARM_VFP_STATE" }
func (*ArmExceptionState32) Name() string   { return "ARM_EXCEPTION_STATE" }
func (*ArmUnifiedThreadState) Name() string { return "ARM_THREAD_STATE" }

func (s *ArmThreadState64) Fields() []describe.Field {
	return append(describe.Indexed("x", s.X[:]),
		describe.Hex("fp", s.FP),
		describe.Hex("lr", s.LR),
		describe.Hex("sp", s.SP),
		describe.Hex("pc", s.PC),
		describe.Hex("cpsr", s.CPSR),
		describe.Hex("flags", s.Flags),
	)
}

func (s *ArmExceptionState64) Fields() []describe.Field {
	return []describe.Field{
		describe.Hex("far", s.FAR),
		describe.Hex("esr", s.ESR),
		describe.Hex("exception", s.Exception),
	}
}

func (s *ArmDebugState64) Fields() []describe.Field {
	fields := make([]describe.Field, 0, 4*16+1)
	fields = append(fields, describe.Indexed("bvr", s.BVR[:])...)
	fields = append(fields, describe.Indexed("bcr", s.BCR[:])...)
	fields = append(fields, describe.Indexed("wvr", s.WVR[:])...)
	fields = append(fields, describe.Indexed("wcr", s.WCR[:])...)
	return append(fields, describe.Hex("mdscr_el1", s.MDSCR))
}

func (s *ArmNeonState64) Fields() []describe.Field {
	fields := make([]describe.Field, 0, len(s.V)+2)
	for i, v := range s.V {
		fields = append(fields, describe.String(fmt.Sprintf("v%d", i), fmt.Sprintf("0x%016x%016x", v[1], v[0])))
	}
	return append(fields, describe.Hex("fpsr", s.FPSR), describe.Hex("fpcr", s.FPCR))
}

func (s *ArmThreadState32) Fields() []describe.Field {
	return append(describe.Indexed("r", s.R[:]),
		describe.Hex("sp", s.SP),
		describe.Hex("lr", s.LR),
		describe.Hex("pc", s.PC),
		describe.Hex("cpsr", s.CPSR),
	)
}

func (s *ArmVFPState) Fields() []describe.Field {
	return append(describe.Indexed("r", s.R[:]), describe.Hex("fpscr", s.FPSCR))
}

func (s *ArmExceptionState32) Fields() []describe.Field {
	return []describe.Field{
		describe.Hex("exception", s.Exception),
		describe.Hex("fsr", s.FSR),
		describe.Hex("far", s.FAR),
	}
}

func (s *ArmUnifiedThreadState) Fields() []describe.Field {
	return append(s.Header.Fields(), s.State.Fields()...)
}
