package core

import (
	"fmt"
	"strconv"
	"strings"
)

const DefaultCodePrefix = "HU"

// NextEmployeeCode derives the code following maxCode: non-digits are
// stripped, the number is incremented and zero-padded to at least three
// digits. An empty or digitless maxCode yields prefix+"001".
func NextEmployeeCode(prefix, maxCode string) string {
	var digits strings.Builder
	for _, r := range maxCode {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	next := uint64(1)
	if digits.Len() > 0 {
		n, err := strconv.ParseUint(digits.String(), 10, 64)
		if err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, next)
}
