package message

import (
	"fmt"
	"strconv"
	"strings"
)

// IndexToHousecode converts a base-0 light index in [0, 255] to its X10
// housecode token "<letter><unit>", letter in 'A'..'P' and unit in
// 1..16 (§4.1, §9).
func IndexToHousecode(index int) (string, error) {
	if index < 0 || index > 255 {
		return "", ErrHousecodeRange
	}
	letter := byte('A' + index/16)
	unit := index%16 + 1
	return fmt.Sprintf("%c%d", letter, unit), nil
}

// HousecodeToIndex converts an X10 housecode token back to its base-0
// index. The letter must be in 'A'..'P' (case-insensitive) and the unit
// number in 1..16; anything else is ErrBadHousecode.
func HousecodeToIndex(housecode string) (int, error) {
	hc := strings.ToUpper(strings.TrimSpace(housecode))
	if len(hc) < 2 {
		return 0, ErrBadHousecode
	}
	letter := hc[0]
	if letter < 'A' || letter > 'P' {
		return 0, ErrBadHousecode
	}
	unit, err := strconv.Atoi(hc[1:])
	if err != nil || unit < 1 || unit > 16 {
		return 0, ErrBadHousecode
	}
	return int(letter-'A')*16 + (unit - 1), nil
}
