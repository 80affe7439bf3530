package settings

import (
	"strconv"
	"strings"
)

// Values are submitted row values keyed by row id.
// Selects hold []string, switches bool, inputs string and steppers a number.
type Values map[string]any

// Strings returns a select's selection.
func (v Values) Strings(id string) []string {
	return toStrings(v[id])
}

// First returns the first selected option of a single select, or "".
func (v Values) First(id string) string {
	selected := v.Strings(id)
	if len(selected) == 0 {
		return ""
	}
	return selected[0]
}

func (v Values) String(id string) string {
	switch value := v[id].(type) {
	case string:
		return value
	case nil:
		return ""
	default:
		return strings.Join(toStrings(value), ",")
	}
}

func (v Values) Bool(id string) bool {
	switch value := v[id].(type) {
	case bool:
		return value
	case string:
		b, _ := strconv.ParseBool(value)
		return b
	default:
		return false
	}
}

// Int returns a stepper value truncated to an int.
func (v Values) Int(id string) int {
	n, _ := toFloat(v[id])
	return int(n)
}

func toStrings(value any) []string {
	switch value := value.(type) {
	case []string:
		return value
	case string:
		if value == "" {
			return []string{}
		}
		return []string{value}
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

func toFloat(value any) (float64, bool) {
	switch value := value.(type) {
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case float64:
		return value, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return n, err == nil
	default:
		return 0, false
	}
}
