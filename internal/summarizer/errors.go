package summarizer

// loadError reports a tokenizer or model load failure. It is recovered at
// construction and demotes the facade to fallback-only; it never propagates.
type loadError struct {
	what string
	err  error
}

func (e loadError) Error() string { return "load " + e.what + ": " + e.err.Error() }
func (e loadError) Unwrap() error { return e.err }

func errLoad(what string, err error) error { return loadError{what: what, err: err} }

// IsLoadFailure reports whether err came from a tokenizer or model load.
func IsLoadFailure(err error) bool {
	_, ok := err.(loadError)
	return ok
}

// dependencyUnavailableError signals a runtime built without neural support
// (e.g., missing the 'llama' build tag), so construction demotes cleanly to
// the extractive fallback.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed
// runtime dependency.
func IsDependencyUnavailable(err error) bool {
	_, ok := err.(dependencyUnavailableError)
	return ok
}
