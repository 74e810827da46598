package apperr

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// NotFoundError marks lookups of sessions, samples or candidates that do
// not exist in the live workspace.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFound(msg string) *NotFoundError {
	return &NotFoundError{Message: msg}
}

// StructureError marks a dataset load aborted because the expected folder
// layout was not present. The prior dataset stays untouched.
type StructureError struct {
	Message string
	Err     error
}

func (e *StructureError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StructureError) Unwrap() error {
	return e.Err
}

func NewStructure(msg string) *StructureError {
	return &StructureError{Message: msg}
}

func NewStructureWrap(msg string, err error) *StructureError {
	return &StructureError{Message: msg, Err: err}
}
