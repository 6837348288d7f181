package encoding

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestKindOf(t *testing.T) {
	other := Wrap(fs.ErrNotExist)
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KIND_NONE},
		{"magic", NewBadMagic(0xdeadbeef), KIND_BAD_MAGIC},
		{"wrapped magic", fmt.Errorf("header: %w", NewBadMagic(1)), KIND_BAD_MAGIC},
		{"length", ErrBadBufferLength, KIND_BAD_BUFFER_LENGTH},
		{"wrapped length", fmt.Errorf("flavor: %w", ErrBadBufferLength), KIND_BAD_BUFFER_LENGTH},
		{"other", other, KIND_OTHER},
		{"plain", errors.New("boom"), KIND_OTHER},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("%s: KindOf = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Fatal("Wrap(nil) != nil")
	}
	if err := Wrap(ErrBadBufferLength); err != ErrBadBufferLength {
		t.Errorf("Wrap changed a taxonomy error: %v", err)
	}
	magic := NewBadMagic(0xcafebabe)
	if err := Wrap(magic); err != magic {
		t.Errorf("Wrap changed a bad magic error: %v", err)
	}
	err := Wrap(fs.ErrNotExist)
	var other *OtherError
	if !errors.As(err, &other) {
		t.Fatalf("Wrap(fs.ErrNotExist) = %T, want *OtherError", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("wrapped cause lost")
	}
	if again := Wrap(err); again != err {
		t.Error("Wrap is not idempotent")
	}
	var bm *BadMagicError
	if !errors.As(magic, &bm) || bm.Magic() != 0xcafebabe {
		t.Errorf("BadMagicError.Magic = %#x", bm.Magic())
	}
	if magic.Error() != "unknown magic: 0xcafebabe" {
		t.Errorf("Error() = %q", magic.Error())
	}
}
