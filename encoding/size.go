package encoding

import "golang.org/x/exp/constraints"

type structSize []int

func (ss structSize) Add(size structSize) structSize {
	return append(ss, size...)
}

func (ss structSize) Size() (total int) {
	for _, size := range ss {
		total += size
	}
	return
}

func Align[I constraints.Integer](a, b I) I {
	if b <= 1 {
		return a
	}
	return (a + b - 1) &^ (b - 1)
}
