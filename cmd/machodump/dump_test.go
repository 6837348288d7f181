package main

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/wnxd/machoinspect/macho"
)

// image is an arm64 executable with one LC_UNIXTHREAD and an LC_SYMTAB
// holding two symbols.
func image() []byte {
	le := binary.LittleEndian
	var state []byte
	for i := 0; i < 33; i++ {
		state = le.AppendUint64(state, 0)
	}
	le.PutUint64(state[32*8:], 0x100003f50)
	state = le.AppendUint32(state, 0x60000000)
	state = le.AppendUint32(state, 0)

	strtab := []byte("\x00_main\x00__ZN3foo3barEv\x00")
	threadSize := 8 + 8 + len(state)
	sizeofcmds := threadSize + 24
	symoff := 32 + sizeofcmds
	stroff := symoff + 2*16

	buf := le.AppendUint32(nil, 0xfeedfacf)
	for _, v := range []uint32{0x0100000c, 0, 2, 2, uint32(sizeofcmds), 0, 0} {
		buf = le.AppendUint32(buf, v)
	}
	for _, v := range []uint32{0x5, uint32(threadSize), 6, uint32(len(state) / 4)} {
		buf = le.AppendUint32(buf, v)
	}
	buf = append(buf, state...)
	for _, v := range []uint32{0x2, 24, uint32(symoff), 2, uint32(stroff), uint32(len(strtab))} {
		buf = le.AppendUint32(buf, v)
	}
	for _, sym := range []struct {
		strx  uint32
		value uint64
	}{{1, 0x100003f50}, {7, 0x100003f00}} {
		buf = le.AppendUint32(buf, sym.strx)
		buf = append(buf, 0x0f, 1)
		buf = le.AppendUint16(buf, 0)
		buf = le.AppendUint64(buf, sym.value)
	}
	return append(buf, strtab...)
}

func TestDump(t *testing.T) {
	color.NoColor = true
	f, err := macho.NewFile(image())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		name    string
		opts    options
		want    []string
		notWant []string
	}{
		{
			name: "threads",
			opts: options{threads: true},
			want: []string{"Mach-O arm64 64-bit, 2 load commands", "LC_UNIXTHREAD", "ARM_THREAD_STATE64", "pc", "0x100003f50", "cpsr"},
			notWant: []string{"Symbols", "truncated"},
		},
		{
			name: "symbols",
			opts: options{symbols: true},
			want: []string{"Symbols (2)", "0x0000000100003f50", "SECT", "extern", "_main", "__ZN3foo3barEv"},
			notWant: []string{"LC_UNIXTHREAD"},
		},
		{
			name: "demangle",
			opts: options{symbols: true, demangle: true},
			want: []string{"_main", "foo::bar()"},
			notWant: []string{"__ZN3foo3barEv"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := dump(&out, f, tt.opts); err != nil {
				t.Fatal(err)
			}
			for _, s := range tt.want {
				if !strings.Contains(out.String(), s) {
					t.Errorf("output missing %q:\n%s", s, out.String())
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out.String(), s) {
					t.Errorf("output contains %q:\n%s", s, out.String())
				}
			}
		})
	}
}

func TestDemangleName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"_main", "_main"},
		{"__ZN3foo3barEv", "foo::bar()"},
		{"_ZN3foo3barEv", "foo::bar()"},
	}
	for _, tt := range tests {
		if got := demangleName(tt.in); got != tt.want {
			t.Errorf("demangleName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
