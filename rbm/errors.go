package rbm

// Error is a class of failure. Returned errors wrap one of the values below with context;
// use errors.Cause to recover it.
type Error string

func (err Error) Error() string { return string(err) }

const (
	ErrDimensionMismatch Error = "dimension mismatch"
	ErrInvalidParameter  Error = "invalid parameter"
	ErrIndexOutOfRange   Error = "index out of range"
	ErrNotInitialized    Error = "no dataset bound"
	ErrUnsupported       Error = "unsupported operation"
)
