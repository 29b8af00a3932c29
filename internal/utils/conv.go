package utils

import (
	"strconv"
)

// ParseID parses a positive database id from a path parameter.
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// FormatID is the inverse of ParseID.
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
