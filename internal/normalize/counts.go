package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// Count parses a numeric count cell. Thousands separators and surrounding
// whitespace are accepted; blank or non-numeric cells are an error.
func Count(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty cell")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not numeric: %q", s)
	}
	return v, nil
}
