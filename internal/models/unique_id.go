package models

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	GuardIDPrefix    = "GRD"
	ResidentIDPrefix = "RES"
)

// FormatUniqueID renders a display id such as GRD001.
func FormatUniqueID(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// UniqueIDSequence extracts the numeric suffix of a display id.
func UniqueIDSequence(prefix, uniqueID string) (int, bool) {
	rest, ok := strings.CutPrefix(uniqueID, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// MaxSequence returns the largest suffix among ids carrying prefix, 0 when none.
func MaxSequence(prefix string, uniqueIDs []string) int {
	max := 0
	for _, id := range uniqueIDs {
		if n, ok := UniqueIDSequence(prefix, id); ok && n > max {
			max = n
		}
	}
	return max
}
