package encoding

import (
	"iter"
	"unsafe"

	"github.com/modern-go/reflect2"
)

type structData struct {
	handler handler
	offset  uintptr
}

// decodeStruct lays fields out with natural C alignment, which is how every
// Mach-O structure this module reads is defined.
func decodeStruct(typ reflect2.StructType) (handler, structSize) {
	size := make(structSize, 0, typ.NumField())
	fields := make([]*structData, 0, typ.NumField())
	for field := range rangeField(typ) {
		if field.Tag().Get("encoding") == "ignore" {
			continue
		}
		unmarshal, fieldSize := decodeFieldAlign(field.Type(), size.Size())
		size = size.Add(fieldSize)
		fields = append(fields, &structData{unmarshal, field.Offset()})
	}
	var maxSize int
	for _, s := range size {
		maxSize = max(maxSize, s)
	}
	totalSize := size.Size()
	pad := Align(totalSize, maxSize) - totalSize
	if pad > 0 {
		size = append(size, pad)
	}
	return func(stream Stream, ptr unsafe.Pointer) error {
		for _, data := range fields {
			err := data.handler(stream, unsafe.Add(ptr, data.offset))
			if err != nil {
				return err
			}
		}
		if pad > 0 {
			return stream.Skip(pad)
		}
		return nil
	}, size
}

func decodeFieldAlign(typ reflect2.Type, offset int) (handler, structSize) {
	unmarshal, size := decode(typ)
	if len(size) == 0 {
		return unmarshal, size
	}
	addr := Align(offset, size[0])
	if addr == offset {
		return unmarshal, size
	}
	pad := addr - offset
	return func(stream Stream, ptr unsafe.Pointer) error {
		err := stream.Skip(pad)
		if err != nil {
			return err
		}
		return unmarshal(stream, ptr)
	}, append(structSize{pad}, size...)
}

func rangeField(typ reflect2.StructType) iter.Seq[reflect2.StructField] {
	return func(yield func(reflect2.StructField) bool) {
		count := typ.NumField()
		for i := 0; i < count; i++ {
			if !yield(typ.Field(i)) {
				break
			}
		}
	}
}
