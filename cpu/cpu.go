package cpu

import "fmt"

// Type is a Mach-O cpu_type_t.
type Type uint32

const (
	CPU_ARCH_MASK     Type = 0xff000000
	CPU_ARCH_ABI64    Type = 0x01000000
	CPU_ARCH_ABI64_32 Type = 0x02000000
)

const (
	CPU_TYPE_UNKNOWN   Type = 0
	CPU_TYPE_X86       Type = 7
	CPU_TYPE_X86_64    Type = CPU_TYPE_X86 | CPU_ARCH_ABI64
	CPU_TYPE_ARM       Type = 12
	CPU_TYPE_ARM64     Type = CPU_TYPE_ARM | CPU_ARCH_ABI64
	CPU_TYPE_ARM64_32  Type = CPU_TYPE_ARM | CPU_ARCH_ABI64_32
	CPU_TYPE_POWERPC   Type = 18
	CPU_TYPE_POWERPC64 Type = CPU_TYPE_POWERPC | CPU_ARCH_ABI64
)

var typeNames = map[Type]string{
	CPU_TYPE_X86:       "x86",
	CPU_TYPE_X86_64:    "x86_64",
	CPU_TYPE_ARM:       "arm",
	CPU_TYPE_ARM64:     "arm64",
	CPU_TYPE_ARM64_32:  "arm64_32",
	CPU_TYPE_POWERPC:   "ppc",
	CPU_TYPE_POWERPC64: "ppc64",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("cpu(%#x)", uint32(t))
}

// Is64 reports whether the type uses the 64-bit ABI.
func (t Type) Is64() bool {
	return t&CPU_ARCH_ABI64 != 0
}

// Family strips the ABI bits, so CPU_TYPE_ARM64 and CPU_TYPE_ARM64_32 both
// map to CPU_TYPE_ARM.
func (t Type) Family() Type {
	return t &^ CPU_ARCH_MASK
}
