package dsl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseCount parses a count expression into a trial count.
func ParseCount(input string) (int64, error) {
	expr, err := CountParser.ParseString("", strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("parsing error: %w", err)
	}
	return expr.Value()
}

// Value evaluates the expression, failing if it does not fit in an int64.
func (e *CountExpr) Value() (int64, error) {
	digits := strings.Join(e.Groups, "")
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", digits, err)
	}
	if e.Scale == nil {
		return n, nil
	}

	mult := scales[strings.ToLower(*e.Scale)]
	return Scale(n, mult)
}

// Scale multiplies n by mult, reporting overflow instead of wrapping.
func Scale(n, mult int64) (int64, error) {
	if n < 0 || mult <= 0 {
		return 0, fmt.Errorf("invalid count %d x %d", n, mult)
	}
	if n > math.MaxInt64/mult {
		return 0, fmt.Errorf("count %d x %d overflows", n, mult)
	}
	return n * mult, nil
}
