package reader

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Printable renders b as text, escaping every byte that is not part of a
// printable UTF-8 rune as \xNN.
func Printable(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if (r == utf8.RuneError && size == 1) || !unicode.IsPrint(r) {
			for _, c := range b[:size] {
				fmt.Fprintf(&sb, "\\x%02x", c)
			}
		} else {
			sb.Write(b[:size])
		}
		b = b[size:]
	}
	return sb.String()
}
