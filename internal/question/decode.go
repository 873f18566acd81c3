package question

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// flexInt decodes a JSON number or a numeric string. The web client posts
// <select> values, so ids and difficulty arrive as "3" as often as 3.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
			return fmt.Errorf("integer expected, got %v", v)
		}
		*n = flexInt(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("integer expected, got %q", v)
		}
		*n = flexInt(parsed)
	default:
		return fmt.Errorf("integer expected, got %s", string(data))
	}
	return nil
}

func (n *flexInt) ptr() *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}
