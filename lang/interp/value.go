package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is anything a Lox expression can evaluate to: float64, string,
// bool, nil, *LoxInstance, or something implementing Callable.
type Value = any

// isTruthy implements Lox's truthiness: everything is truthy except nil and
// the boolean false.
func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox's `==`: nil equals only nil, numbers and strings
// and bools compare by value, everything else (instances, functions,
// classes) compares by identity via Go's == on the underlying pointer.
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	af, aIsNum := a.(float64)
	bf, bIsNum := b.(float64)
	if aIsNum && bIsNum {
		return af == bf
	}
	return a == b
}

// stringify renders v the way `print` does.
func stringify(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	case float64:
		return formatNumber(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatNumber prints the shortest decimal representation of f, dropping
// the fractional part entirely when f has none.
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		return s
	}
	// strconv's 'g' format already produces the shortest round-tripping
	// representation; Lox only special-cases the common integral case so
	// that 3.0 prints as "3" rather than "3.0".
	if f == float64(int64(f)) && !strings.ContainsAny(s, "eE") {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}
