package git

import "fmt"

// Typed errors enabling structured classification without string parsing
// upstream.

// OpenError reports a path that could not be opened as a git repository.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open repository %s: %v", e.Path, e.Err)
}
func (e *OpenError) Unwrap() error { return e.Err }

// RefError reports a reference or revision that could not be resolved.
type RefError struct {
	Name string
	Err  error
}

func (e *RefError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Name, e.Err)
}
func (e *RefError) Unwrap() error { return e.Err }

// WalkError reports a history walk that could not be started.
type WalkError struct {
	From string
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("walk history from %s: %v", e.From, e.Err)
}
func (e *WalkError) Unwrap() error { return e.Err }
