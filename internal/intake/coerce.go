package intake

// coerce.go provides best-effort coercion from the untyped submission values
// to the types the record stores. Submissions arrive as whatever the request
// decoder produced: strings from urlencoded forms, and string/float64/bool
// from JSON. Wrong primitive types never cause a failure, only a lossy
// conversion.

import (
	"fmt"
	"strconv"
	"strings"
)

// TriState reports whether a submitted value counts as an affirmative answer.
//
// The accepted set is exactly: boolean true, string "1", and the number 1.
// Notably the string "true" is NOT accepted. The consent checkboxes rely on
// this exact set as a compliance gate, so every boolean-like field goes
// through this one helper to keep the fields from diverging.
func TriState(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "1"
	case int:
		return t == 1
	case int64:
		return t == 1
	case float64:
		return t == 1
	}
	return false
}

// asString renders a submitted value as text. Absent values become "".
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}

// asYear parses a submitted value as a base-10 year. Empty or absent input
// yields nil, never zero. Text input is read like parseInt: an optional sign
// followed by leading digits, ignoring any trailing junk.
func asYear(v any) *int {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		y := int(t)
		return &y
	case int:
		y := t
		return &y
	case int64:
		y := int(t)
		return &y
	case string:
		return leadingInt(strings.TrimSpace(t))
	}
	return nil
}

// leadingInt parses the leading integer of s, or nil when there is none.
func leadingInt(s string) *int {
	if s == "" {
		return nil
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return nil
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return nil
	}
	return &n
}

// boolInt normalizes a boolean-like submission value to a stored 0/1.
func boolInt(v any) int {
	if TriState(v) {
		return 1
	}
	return 0
}
