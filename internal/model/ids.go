package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Record id prefixes.
const (
	PrefixInventory = "INV"
	PrefixWarehouse = "WH"
	PrefixTransfer  = "TRF"
)

// FormatID builds a human-readable id such as INV007.
func FormatID(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// ParseSequence extracts the numeric part of an id with the given prefix.
// It returns false for ids that do not follow the format.
func ParseSequence(prefix, id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
