package checkout

import "fmt"

type Kind int

const (
	KindValidation Kind = iota
	KindUnauthenticated
	KindNetwork
	KindServerRejected
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNetwork:
		return "network"
	case KindServerRejected:
		return "server_rejected"
	}
	return "unknown"
}

// Error is the single error type crossing the submitter boundary. Everything
// the checkout flow can fail with is converted to one of these; nothing
// propagates to the HTTP layer untyped.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Retryable reports whether a user-initiated re-submission with the same
// idempotency key makes sense. Only transport failures qualify; server
// rejections need the user to change something first.
func (e *Error) Retryable() bool { return e.Kind == KindNetwork }

func NewError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

var (
	ErrEmptyCart          = &Error{Kind: KindValidation, Message: "no items selected, nothing to checkout"}
	ErrNoPaymentMethod    = &Error{Kind: KindValidation, Message: "please select a payment method"}
	ErrInvalidCVV         = &Error{Kind: KindValidation, Message: "invalid card security code"}
	ErrNoCardSelected     = &Error{Kind: KindValidation, Message: "please select a card to pay with"}
	ErrSubmissionInFlight = &Error{Kind: KindValidation, Message: "a checkout submission is already in progress"}
	ErrUnauthenticated    = &Error{Kind: KindUnauthenticated, Message: "login required before checkout"}
)
