package symbol

import "github.com/blacktop/go-macho/types"

// Mach-O nlist n_type masks (mach-o/nlist.h).
const (
	N_STAB types.NLType = 0xe0
	N_PEXT types.NLType = 0x10
	N_TYPE types.NLType = 0x0e
	N_EXT  types.NLType = 0x01
)

// Values of the N_TYPE bits.
const (
	N_UNDF types.NLType = 0x0
	N_ABS  types.NLType = 0x2
	N_SECT types.NLType = 0xe
	N_PBUD types.NLType = 0xc
	N_INDR types.NLType = 0xa
)

const NO_SECT uint8 = 0
