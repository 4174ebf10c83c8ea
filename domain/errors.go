package domain

import "fmt"

type ErrorKind string

const (
	KindUnknownPort          ErrorKind = "unknown_port"
	KindUnknownCargo         ErrorKind = "unknown_cargo"
	KindUnknownCharterer     ErrorKind = "unknown_charterer"
	KindInvalidQuantity      ErrorKind = "invalid_quantity"
	KindInvalidRate          ErrorKind = "invalid_rate"
	KindInvalidLaycan        ErrorKind = "invalid_laycan"
	KindInvalidRequest       ErrorKind = "invalid_request"
	KindCommissionMismatch   ErrorKind = "commission_mismatch"
	KindInvalidReferenceData ErrorKind = "invalid_reference_data"
)

// Client reports whether errors of this kind are caused by request input.
func (k ErrorKind) Client() bool {
	switch k {
	case KindCommissionMismatch, KindInvalidReferenceData:
		return false
	}
	return true
}

// Error is returned for rejected requests and rejected reference data. Field
// names the offending request field or reference record.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind so callers can use errors.Is with the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Field == "" || t.Field == e.Field
}

func NewError(kind ErrorKind, field, format string, args ...any) *Error {
	return &Error{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrUnknownPort          = &Error{Kind: KindUnknownPort}
	ErrUnknownCargo         = &Error{Kind: KindUnknownCargo}
	ErrUnknownCharterer     = &Error{Kind: KindUnknownCharterer}
	ErrInvalidQuantity      = &Error{Kind: KindInvalidQuantity}
	ErrInvalidRate          = &Error{Kind: KindInvalidRate}
	ErrInvalidLaycan        = &Error{Kind: KindInvalidLaycan}
	ErrInvalidRequest       = &Error{Kind: KindInvalidRequest}
	ErrCommissionMismatch   = &Error{Kind: KindCommissionMismatch}
	ErrInvalidReferenceData = &Error{Kind: KindInvalidReferenceData}
)
