package core

import "fmt"

// ConfigError reports an unreadable or malformed model catalog.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("model catalog %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ValidationError reports operator input that was rejected by the
// setup dialogue.  It never escapes the dialogue; the operator is
// asked again.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// TransportError reports a failed completion request or a stream that
// broke before its natural end.
type TransportError struct {
	Model string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion with model %s failed: %v", e.Model, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StorageError reports a failed transcript write.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("saving transcript %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
