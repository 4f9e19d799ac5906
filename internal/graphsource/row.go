package graphsource

// Row is one result row of a pattern query, keyed by column alias.
// Accessors treat missing and null columns as the zero value.
type Row map[string]any

// String returns the column as a string, or "" when absent or not a string.
func (r Row) String(key string) string {
	val, ok := r[key]
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

// StringOr returns the column as a string, or fallback when it is empty.
func (r Row) StringOr(key, fallback string) string {
	if s := r.String(key); s != "" {
		return s
	}
	return fallback
}

// Bool returns the column as a bool, false when absent or null.
func (r Row) Bool(key string) bool {
	val, ok := r[key]
	if !ok || val == nil {
		return false
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return false
}

// Int returns the column as an int.
func (r Row) Int(key string) int {
	val, ok := r[key]
	if !ok || val == nil {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case int32:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Float returns the column as a float64 and whether a numeric value was present.
func (r Row) Float(key string) (float64, bool) {
	val, ok := r[key]
	if !ok || val == nil {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

// intParam reads an integer parameter, accepting the numeric types a JSON or YAML decoder produces.
func intParam(params map[string]any, key string, fallback int) int {
	val, ok := params[key]
	if !ok || val == nil {
		return fallback
	}
	return Row{key: val}.Int(key)
}
