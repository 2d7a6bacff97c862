package utils

import "strconv"

// ParseID parses a path id; only positive integers are accepted
func ParseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
