package thread

type programCounter interface {
	programCounter() uint64
}

func (s *ArmThreadState64) programCounter() uint64 { return s.PC }
func (s *ArmThreadState32) programCounter() uint64 { return uint64(s.PC) }
func (s *X86ThreadState32) programCounter() uint64 { return uint64(s.EIP) }
func (s *X86ThreadState64) programCounter() uint64 { return s.RIP }
func (s *PPCThreadState) programCounter() uint64   { return uint64(s.SRR0) }

// ProgramCounter extracts the instruction pointer from a general purpose
// register state, looking through unified wrappers.
func ProgramCounter(s State) (uint64, bool) {
	switch s := s.(type) {
	case *ArmUnifiedThreadState:
		return ProgramCounter(s.State)
	case *X86UnifiedThreadState:
		return ProgramCounter(s.State)
	case programCounter:
		return s.programCounter(), true
	}
	return 0, false
}

// EntryPoint returns the program counter of the first record that carries
// one. For LC_UNIXTHREAD this is the image's entry address.
func (c *Command) EntryPoint() (uint64, bool) {
	for rec := range c.Flavors() {
		if pc, ok := ProgramCounter(rec.State); ok {
			return pc, true
		}
	}
	return 0, false
}
