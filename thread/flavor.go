package thread

// Flavor is the numeric tag of a thread state record. Its meaning depends on
// the CPU type of the image.
type Flavor uint32

// ARM and ARM64 share one flavor namespace (mach/arm/thread_status.h).
const (
	ARM_THREAD_STATE      Flavor = 1
	ARM_VFP_STATE         Flavor = 2
	ARM_EXCEPTION_STATE   Flavor = 3
	ARM_DEBUG_STATE       Flavor = 4
	ARM_THREAD_STATE64    Flavor = 6
	ARM_EXCEPTION_STATE64 Flavor = 7
	ARM_THREAD_STATE32    Flavor = 9
	ARM_DEBUG_STATE32     Flavor = 14
	ARM_DEBUG_STATE64     Flavor = 15
	ARM_NEON_STATE        Flavor = 16
	ARM_NEON_STATE64      Flavor = 17
)

// x86 and x86_64 share one flavor namespace (mach/i386/thread_status.h).
const (
	X86_THREAD_STATE32    Flavor = 1
	X86_FLOAT_STATE32     Flavor = 2
	X86_EXCEPTION_STATE32 Flavor = 3
	X86_THREAD_STATE64    Flavor = 4
	X86_FLOAT_STATE64     Flavor = 5
	X86_EXCEPTION_STATE64 Flavor = 6
	X86_THREAD_STATE      Flavor = 7
	X86_FLOAT_STATE       Flavor = 8
	X86_EXCEPTION_STATE   Flavor = 9
	X86_DEBUG_STATE32     Flavor = 10
	X86_DEBUG_STATE64     Flavor = 11
	X86_DEBUG_STATE       Flavor = 12
)

const (
	PPC_THREAD_STATE Flavor = 1
)
