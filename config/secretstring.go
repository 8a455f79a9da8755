package config

// SecretStringValue replaces secret values in any marshaled output.
const SecretStringValue = "<secret>"

// SecretString is used for configuration values (request headers with
// credentials) which must never appear in dumps, logs or debug reports.
type SecretString string

// Reveal returns actual value, the only way to get it out.
func (s SecretString) Reveal() string {
	return string(s)
}

// String implements fmt.Stringer so values are hidden when logged.
func (s SecretString) String() string {
	if len(s) == 0 {
		return ""
	}
	return SecretStringValue
}

// MarshalJSON hides actual value.
func (s SecretString) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte("\"" + SecretStringValue + "\""), nil
}

// MarshalYAML hides actual value.
func (s SecretString) MarshalYAML() (any, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return SecretStringValue, nil
}
