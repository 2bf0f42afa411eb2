package capi

import (
	"unicode/utf8"

	"github.com/futurepaul/zello/textinput"
)

// DecodeCString decodes a NUL-terminated UTF-8 string from buf. Without
// a NUL the whole buffer is the string. Malformed UTF-8 decodes as "",
// never reaches the engine.
func DecodeCString(buf []byte) string {
	n := len(buf)
	for i, b := range buf {
		if b == 0 {
			n = i
			break
		}
	}
	s := string(buf[:n])
	if !utf8.ValidString(s) {
		return ""
	}
	return s
}

// EncodeCString copies s into dst as a NUL-terminated UTF-8 string and
// returns the number of content bytes written (excluding the NUL). When
// s does not fit it is truncated at a code point boundary; dst is never
// overflowed and, if non-empty, always ends up NUL-terminated.
func EncodeCString(dst []byte, s string) int {
	if len(dst) == 0 {
		return 0
	}

	max := len(dst) - 1 // room for the NUL
	n := len(s)
	if n > max {
		n = textinput.ClampToBoundary(s, max)
	}

	copy(dst, s[:n])
	dst[n] = 0
	return n
}
