// ABOUTME: Utility functions for converting between integers and their string forms
// ABOUTME: Used for pagination headers and comma separated id lists in query strings

package parse

import (
	"strconv"
	"strings"
)

// IntOrZero safely parses an integer from a string, returning 0 if parsing fails
func IntOrZero(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// JoinInts renders ids as a comma separated list, e.g. "1,2,3"
func JoinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
