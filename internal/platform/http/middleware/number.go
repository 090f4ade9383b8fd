package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var errNotInteger = errors.New("not an integer")

// maxExactFloat is the largest magnitude at which every float64 integer is exact.
const maxExactFloat = 1 << 53

// Number is a request field that accepts either a JSON number or a numeric string
// ("2" and 2 are equivalent). Validation runs on the raw text through the "integer" rule.
type Number struct {
	raw string
	set bool
}

// NewNumber builds a Number holding n.
func NewNumber(n int) Number {
	return Number{raw: strconv.Itoa(n), set: true}
}

// UnmarshalJSON implements json.Unmarshaler. null leaves the Number unset.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number{raw: strings.TrimSpace(s), set: true}
		return nil
	}
	*n = Number{raw: string(b), set: true}
	return nil
}

// Set reports whether the field was present and non-null.
func (n Number) Set() bool {
	return n.set
}

// Int parses the raw value. It only fails for inputs the "integer" rule would reject.
func (n Number) Int() (int, error) {
	return parseInteger(n.raw)
}

// parseInteger accepts decimal integers and integral numbers such as "2.0" or "1e2".
func parseInteger(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
		return 0, errNotInteger
	}
	return int(f), nil
}
