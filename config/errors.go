package config

// FieldError reports a configuration value that cannot be used. Field is
// the JSON path of the value.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return "config: invalid " + e.Field + ": " + e.Reason
}
