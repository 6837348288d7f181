package encoding

import (
	"reflect"
	"unsafe"

	"github.com/modern-go/reflect2"
)

func decodeArray(typ reflect2.ArrayType) (handler, structSize) {
	count := typ.Len()
	elemType := typ.Elem()
	if k := elemType.Kind(); k == reflect.Uint8 || k == reflect.Int8 {
		size := make(structSize, count)
		for i := range size {
			size[i] = 1
		}
		return func(stream Stream, ptr unsafe.Pointer) error {
			return readFull(stream, unsafe.Slice((*byte)(ptr), count))
		}, size
	}
	unmarshal, elemSize := decode(elemType)
	size := make(structSize, 0, count*len(elemSize))
	for i := 0; i < count; i++ {
		size = size.Add(elemSize)
	}
	stride := elemType.Type1().Size()
	return func(stream Stream, ptr unsafe.Pointer) error {
		for i := 0; i < count; i++ {
			err := unmarshal(stream, ptr)
			if err != nil {
				return err
			}
			ptr = unsafe.Add(ptr, stride)
		}
		return nil
	}, size
}
