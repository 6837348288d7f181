package thread

import (
	"github.com/wnxd/machoinspect/cpu"
	"github.com/wnxd/machoinspect/describe"
	"github.com/wnxd/machoinspect/encoding"
)

const x86UnionSize = 168 // sizeof(x86_thread_state64_t)

var x86Family = []cpu.Type{cpu.CPU_TYPE_X86, cpu.CPU_TYPE_X86_64}

var (
	_ = register(X86_THREAD_STATE32, fixed[X86ThreadState32](), x86Family...)
	_ = register(X86_EXCEPTION_STATE32, fixed[X86ExceptionState32](), x86Family...)
	_ = register(X86_THREAD_STATE64, fixed[X86ThreadState64](), x86Family...)
	_ = register(X86_EXCEPTION_STATE64, fixed[X86ExceptionState64](), x86Family...)
	_ = register(X86_DEBUG_STATE32, fixed[X86DebugState32](), x86Family...)
	_ = register(X86_DEBUG_STATE64, fixed[X86DebugState64](), x86Family...)
	_ = register(X86_THREAD_STATE, entry{
		size:    stateHeaderSize + x86UnionSize,
		unified: true,
		decode:  decodeX86Unified,
	}, x86Family...)
)

// X86ThreadState32 is x86_thread_state32_t.
type X86ThreadState32 struct {
	EAX    uint32
	EBX    uint32
	ECX    uint32
	EDX    uint32
	EDI    uint32
	ESI    uint32
	EBP    uint32
	ESP    uint32
	SS     uint32
	EFLAGS uint32
	EIP    uint32
	CS     uint32
	DS     uint32
	ES     uint32
	FS     uint32
	GS     uint32
}

// X86ThreadState64 is x86_thread_state64_t.
type X86ThreadState64 struct {
	RAX    uint64
	RBX    uint64
	RCX    uint64
	RDX    uint64
	RDI    uint64
	RSI    uint64
	RBP    uint64
	RSP    uint64
	R8     uint64
	R9     uint64
	R10    uint64
	R11    uint64
	R12    uint64
	R13    uint64
	R14    uint64
	R15    uint64
	RIP    uint64
	RFLAGS uint64
	CS     uint64
	FS     uint64
	GS     uint64
}

// X86ExceptionState32 is x86_exception_state32_t.
type X86ExceptionState32 struct {
	Trapno     uint16
	CPU        uint16
	Err        uint32
	FaultVAddr uint32
}

// X86ExceptionState64 is x86_exception_state64_t.
type X86ExceptionState64 struct {
	Trapno     uint16
	CPU        uint16
	Err        uint32
	FaultVAddr uint64
}

// X86DebugState32 is x86_debug_state32_t.
type X86DebugState32 struct {
	DR [8]uint32
}

// X86DebugState64 is x86_debug_state64_t.
type X86DebugState64 struct {
	DR [8]uint64
}

// X86UnifiedThreadState is x86_thread_state_t.
type X86UnifiedThreadState struct {
	Header StateHeader
	State  State
}

func decodeX86Unified(typ cpu.Type, stream encoding.Stream) (State, error) {
	hdr, inner, err := decodeUnified(typ, stream, x86UnionSize)
	if err != nil {
		return nil, err
	}
	return &X86UnifiedThreadState{Header: hdr, State: inner}, nil
}

func (*X86ThreadState32) state()      {}
func (*X86ThreadState64) state()      {}
func (*X86ExceptionState32) state()   {}
func (*X86ExceptionState64) state()   {}
func (*X86DebugState32) state()       {}
func (*X86DebugState64) state()       {}
func (*X86UnifiedThreadState) state() {}

func (*X86ThreadState32) Name() string      { return "x86_THREAD_STATE32" }
func (*X86ThreadState64) Name() string      { return "x86_THREAD_STATE64" }
func (*X86ExceptionState32) Name() string   { return "x86_EXCEPTION_STATE32" }
func (*X86ExceptionState64) Name() string   { return "x86_EXCEPTION_STATE64" }
func (*X86DebugState32) Name() string       { return "x86_DEBUG_STATE32" }
func (*X86DebugState64) Name() string       { return "x86_DEBUG_STATE64" }
func (*X86UnifiedThreadState) Name() string { return "x86_THREAD_STATE" }

func (s *X86ThreadState32) Fields() []describe.Field {
	return []describe.Field{
		describe.Hex("eax", s.EAX),
		describe.Hex("ebx", s.EBX),
		describe.Hex("ecx", s.ECX),
		describe.Hex("edx", s.EDX),
		describe.Hex("edi", s.EDI),
		describe.Hex("esi", s.ESI),
		describe.Hex("ebp", s.EBP),
		describe.Hex("esp", s.ESP),
		describe.Hex("ss", s.SS),
		describe.Hex("eflags", s.EFLAGS),
		describe.Hex("eip", s.EIP),
		describe.Hex("cs", s.CS),
		describe.Hex("ds", s.DS),
		describe.Hex("es", s.ES),
		describe.Hex("fs", s.FS),
		describe.Hex("gs", s.GS),
	}
}

func (s *X86ThreadState64) Fields() []describe.Field {
	return []describe.Field{
		describe.Hex("rax", s.RAX),
		describe.Hex("rbx", s.RBX),
		describe.Hex("rcx", s.RCX),
		describe.Hex("rdx", s.RDX),
		describe.Hex("rdi", s.RDI),
		describe.Hex("rsi", s.RSI),
		describe.Hex("rbp", s.RBP),
		describe.Hex("rsp", s.RSP),
		describe.Hex("r8", s.R8),
		describe.Hex("r9", s.R9),
		describe.Hex("r10", s.R10),
		describe.Hex("r11", s.R11),
		describe.Hex("r12", s.R12),
		describe.Hex("r13", s.R13),
		describe.Hex("r14", s.R14),
		describe.Hex("r15", s.R15),
		describe.Hex("rip", s.RIP),
		describe.Hex("rflags", s.RFLAGS),
		describe.Hex("cs", s.CS),
		describe.Hex("fs", s.FS),
		describe.Hex("gs", s.GS),
	}
}

func (s *X86ExceptionState32) Fields() []describe.Field {
	return []describe.Field{
		describe.Dec("trapno", s.Trapno),
		describe.Dec("cpu", s.CPU),
		describe.Hex("err", s.Err),
		describe.Hex("faultvaddr", s.FaultVAddr),
	}
}

func (s *X86ExceptionState64) Fields() []describe.Field {
	return []describe.Field{
		describe.Dec("trapno", s.Trapno),
		describe.Dec("cpu", s.CPU),
		describe.Hex("err", s.Err),
		describe.Hex("faultvaddr", s.FaultVAddr),
	}
}

func (s *X86DebugState32) Fields() []describe.Field {
	return describe.Indexed("dr", s.DR[:])
}

func (s *X86DebugState64) Fields() []describe.Field {
	return describe.Indexed("dr", s.DR[:])
}

func (s *X86UnifiedThreadState) Fields() []describe.Field {
	return append(s.Header.Fields(), s.State.Fields()...)
}
