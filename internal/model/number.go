package model

import (
	"math"
	"strconv"
	"strings"
)

// Number decodes from a JSON number or numeric string. Anything that does not parse
// to a finite value decodes as 0 instead of failing the request.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	s = strings.ReplaceAll(s, ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*n = 0
		return nil
	}
	*n = Number(v)
	return nil
}

func (n Number) Float() float64 {
	return float64(n)
}
