package traitmatch

import "fmt"

// ConfigurationError indicates a malformed trait or an invalid algebra result
// (duplicate field names, empty names, missing type expressions). It is always
// fatal to the call and never retried.
type ConfigurationError struct {
	Trait  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "configuration error"
	}
	if e.Trait == "" {
		return fmt.Sprintf("trait configuration: %s", e.Reason)
	}
	return fmt.Sprintf("trait %q: %s", e.Trait, e.Reason)
}

// NormalizationError indicates that a candidate matched none of the supported
// shapes and the fallback attribute scan could not apply either. Both
// Satisfies and Explain propagate it rather than reporting a misleading
// negative result.
type NormalizationError struct {
	Candidate string
	Reason    string
}

func (e *NormalizationError) Error() string {
	if e == nil {
		return "normalization error"
	}
	if e.Candidate == "" {
		return fmt.Sprintf("normalize candidate: %s", e.Reason)
	}
	return fmt.Sprintf("normalize candidate %s: %s", e.Candidate, e.Reason)
}
