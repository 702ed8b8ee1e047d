package service

// Kind classifies a service failure so the transport layer can map it
// to a status code without inspecting storage errors.
type Kind int

const (
	// KindValidation marks malformed or missing input.
	KindValidation Kind = iota + 1
	// KindUnauthenticated marks a missing or invalid session.
	KindUnauthenticated
	// KindNotFound marks a resource that does not exist for this owner.
	// A note owned by someone else is reported the same way.
	KindNotFound
	// KindDuplicateEmail marks a registration with an already-used email.
	KindDuplicateEmail
	// KindInternal marks a storage or infrastructure failure. Its message
	// is safe to show: the underlying error never leaves the service.
	KindInternal
)

// Error is the tagged failure type every service operation returns.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface with the human-readable message.
func (e *Error) Error() string {
	return e.Message
}

func errValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func errUnauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func errNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func errDuplicateEmail(message string) *Error {
	return &Error{Kind: KindDuplicateEmail, Message: message}
}

func errInternal() *Error {
	return &Error{Kind: KindInternal, Message: "internal error"}
}
