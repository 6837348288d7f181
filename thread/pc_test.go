package thread

import (
	"encoding/binary"
	"testing"

	"github.com/wnxd/machoinspect/cpu"
)

func TestEntryPoint(t *testing.T) {
	unified := newPayload(binary.LittleEndian).u32(uint32(ARM_THREAD_STATE64), 68).bytes()
	unified = append(unified, arm64ThreadPayload(0x100003f50)...)
	x86 := newPayload(binary.LittleEndian).u64(make([]uint64, 16)...).u64(0x100001000, 0, 0, 0, 0).bytes()

	tests := []struct {
		name   string
		typ    cpu.Type
		build  func(b *listBuilder)
		want   uint64
		wantOk bool
	}{
		{"arm64", cpu.CPU_TYPE_ARM64, func(b *listBuilder) {
			b.words(ARM_EXCEPTION_STATE64, make([]byte, 16))
			b.words(ARM_THREAD_STATE64, arm64ThreadPayload(0x1000040a0))
		}, 0x1000040a0, true},
		{"arm64 unified", cpu.CPU_TYPE_ARM64, func(b *listBuilder) {
			b.words(ARM_THREAD_STATE, unified)
		}, 0x100003f50, true},
		{"x86_64", cpu.CPU_TYPE_X86_64, func(b *listBuilder) {
			b.words(X86_THREAD_STATE64, x86)
		}, 0x100001000, true},
		{"no thread state", cpu.CPU_TYPE_ARM64, func(b *listBuilder) {
			b.words(ARM_EXCEPTION_STATE64, make([]byte, 16))
		}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newListBuilder(binary.LittleEndian, 0)
			tt.build(b)
			b.sentinel()
			got, ok := b.command(t, tt.typ, b.size()).EntryPoint()
			if got != tt.want || ok != tt.wantOk {
				t.Errorf("EntryPoint() = %#x, %v, want %#x, %v", got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestProgramCounterUnknown(t *testing.T) {
	if _, ok := ProgramCounter(Unknown{}); ok {
		t.Error("Unknown has a program counter")
	}
	if _, ok := ProgramCounter(&ArmUnifiedThreadState{State: Unknown{}}); ok {
		t.Error("unified Unknown has a program counter")
	}
}
