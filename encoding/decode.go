package encoding

import (
	"errors"
	"io"
	"reflect"
	"sync"
	"unsafe"

	"github.com/modern-go/reflect2"
)

type handler = func(Stream, unsafe.Pointer) error

type handlerData struct {
	handler handler
	size    int
}

var (
	decodeProcess sync.Map

	errNotPointer = errors.New("decode target is not a non-nil pointer")
)

// DecodeSize reports how many bytes Decode consumes for val, which must be a
// pointer to a fixed-layout value.
func DecodeSize(val any) int {
	typ := reflect2.TypeOf(val)
	if typ.Kind() != reflect.Pointer {
		return getUnmarshalData(typ).size
	}
	return getUnmarshalData(typ.(reflect2.PtrType).Elem()).size
}

// Decode fills the value val points to from stream, using the stream's byte
// order for every multi-byte field.
func Decode(stream Stream, val any) error {
	if val == nil {
		return Wrap(errNotPointer)
	}
	typ := reflect2.TypeOf(val)
	if typ.Kind() != reflect.Pointer {
		return Wrap(errNotPointer)
	}
	ptr := reflect2.PtrOf(val)
	if ptr == nil {
		return Wrap(errNotPointer)
	}
	return getUnmarshalData(typ.(reflect2.PtrType).Elem()).handler(stream, ptr)
}

func getUnmarshalData(typ reflect2.Type) *handlerData {
	key := typ.RType()
	if v, ok := decodeProcess.Load(key); ok {
		return v.(*handlerData)
	}
	unmarshal, size := decode(typ)
	data := &handlerData{unmarshal, size.Size()}
	v, _ := decodeProcess.LoadOrStore(key, data)
	return v.(*handlerData)
}

func decode(typ reflect2.Type) (handler, structSize) {
	switch typ.Kind() {
	case reflect.Bool:
		return func(stream Stream, ptr unsafe.Pointer) error {
			var b [1]byte
			if err := readFull(stream, b[:]); err != nil {
				return err
			}
			*(*bool)(ptr) = b[0] != 0
			return nil
		}, structSize{1}
	case reflect.Int8, reflect.Uint8, reflect.Int16, reflect.Uint16, reflect.Int32, reflect.Uint32, reflect.Int64, reflect.Uint64, reflect.Float32, reflect.Float64:
		size := int(typ.Type1().Size())
		return decodeScalar(size), structSize{size}
	case reflect.Array:
		return decodeArray(typ.(reflect2.ArrayType))
	case reflect.Struct:
		return decodeStruct(typ.(reflect2.StructType))
	}
	panic("Unsupported Type")
}

func decodeScalar(size int) handler {
	return func(stream Stream, ptr unsafe.Pointer) error {
		var buf [8]byte
		if err := readFull(stream, buf[:size]); err != nil {
			return err
		}
		order := stream.ByteOrder()
		switch size {
		case 1:
			*(*uint8)(ptr) = buf[0]
		case 2:
			*(*uint16)(ptr) = order.Uint16(buf[:])
		case 4:
			*(*uint32)(ptr) = order.Uint32(buf[:])
		case 8:
			*(*uint64)(ptr) = order.Uint64(buf[:])
		}
		return nil
	}
}

func readFull(stream Stream, b []byte) error {
	_, err := io.ReadFull(stream, b)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return ErrBadBufferLength
	}
	return Wrap(err)
}
