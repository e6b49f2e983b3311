package dto

import "strings"

// Changes maps column names to new values for a partial update.
type Changes map[string]interface{}

func (c Changes) setString(column string, v *string) {
	if v != nil {
		c[column] = strings.TrimSpace(*v)
	}
}

// setOptional stores NULL for an empty string so optional columns can be cleared.
func (c Changes) setOptional(column string, v *string) {
	if v == nil {
		return
	}
	if s := strings.TrimSpace(*v); s != "" {
		c[column] = s
	} else {
		c[column] = nil
	}
}

func setValue[T any](c Changes, column string, v *T) {
	if v != nil {
		c[column] = *v
	}
}

// optional turns an empty or missing string into nil.
func optional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}
