package services

// Error categories the handlers translate into HTTP statuses. Expected rule
// violations are typed; anything untyped surfaces as a server error.

// ValidationError is a rejected payload: missing field, wrong type,
// disallowed file, conditional requirement not met.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StateError is an action attempted from a status that forbids it.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }

// NotFoundError is a reference that resolves to no document.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// DuplicateError is an insert that would violate a uniqueness rule.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string { return e.Message }

func invalid(msg string) error   { return &ValidationError{Message: msg} }
func forbidden(msg string) error { return &StateError{Message: msg} }
func notFound(msg string) error  { return &NotFoundError{Message: msg} }
func duplicate(msg string) error { return &DuplicateError{Message: msg} }
