// Package bytefmt renders byte counts using binary (1024-based) units.
package bytefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Binary multipliers for the supported units.
const (
	B  int64 = 1
	KB       = 1024 * B
	MB       = 1024 * KB
	GB       = 1024 * MB
	TB       = 1024 * GB
)

// Unit pairs a binary multiplier with its display suffix.
type Unit struct {
	Factor int64
	Suffix string
}

// ErrInvalidSize reports an attempt to format a negative byte count.
var ErrInvalidSize = errors.New("size must be a non-negative number")

// units is ordered largest to smallest; Format picks the first whose
// multiplier does not exceed the value.
var units = []Unit{
	{Factor: TB, Suffix: "TB"},
	{Factor: GB, Suffix: "GB"},
	{Factor: MB, Suffix: "MB"},
	{Factor: KB, Suffix: "KB"},
	{Factor: B, Suffix: "B"},
}

// unitsByName maps the accepted unit tokens to units.
var unitsByName = map[string]Unit{
	"b":  {Factor: B, Suffix: "B"},
	"kb": {Factor: KB, Suffix: "KB"},
	"mb": {Factor: MB, Suffix: "MB"},
	"gb": {Factor: GB, Suffix: "GB"},
	"tb": {Factor: TB, Suffix: "TB"},
}

// ParseUnit resolves a unit token such as "kb" or "MB". Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseUnit(s string) (Unit, error) {
	u, ok := unitsByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Unit{}, fmt.Errorf("invalid unit %q (valid units: b, kb, mb, gb, tb)", s)
	}
	return u, nil
}

// Format renders size using the largest unit whose multiplier does not
// exceed it. Values below 1 KB, including zero, render as plain bytes.
func Format(size int64) (string, error) {
	if size < 0 {
		return "", ErrInvalidSize
	}
	for _, u := range units {
		if size >= u.Factor {
			return render(size, u), nil
		}
	}
	return "0 B", nil
}

// FormatUnit renders size in the given unit regardless of magnitude.
func FormatUnit(size int64, u Unit) (string, error) {
	if size < 0 {
		return "", ErrInvalidSize
	}
	return render(size, u), nil
}

// Bytes render as bare integers; every larger unit carries exactly two
// decimals. The value is never promoted past the chosen unit, so one byte
// short of a megabyte stays "1024.00 KB".
func render(size int64, u Unit) string {
	if u.Factor == B {
		return strconv.FormatInt(size, 10) + " B"
	}
	return fmt.Sprintf("%.2f %s", float64(size)/float64(u.Factor), u.Suffix)
}
