package exchange

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why an exchange failed. Every kind is fatal for the
// request that produced it.
type Kind int

const (
	KindResolve Kind = iota + 1
	KindConnect
	KindTLSConfig
	KindHandshake
	KindVerify
	KindWrite
	KindRead
	KindTooLarge
	KindUnsupportedEncoding
)

func (k Kind) String() string {
	switch k {
	case KindResolve:
		return "DNS resolution failed"
	case KindConnect:
		return "Connection failed"
	case KindTLSConfig:
		return "TLS configuration failed"
	case KindHandshake:
		return "TLS handshake failed"
	case KindVerify:
		return "Certificate verification failed"
	case KindWrite:
		return "Sending request failed"
	case KindRead:
		return "Reading response failed"
	case KindTooLarge:
		return "Response too large"
	case KindUnsupportedEncoding:
		return "Unsupported response header"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned (wrapped with a stack trace) by Fetch and Request.
// Use errors.Cause to get at it.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error) error {
	return errors.WithStack(&Error{Kind: kind, Err: err})
}

// KindOf returns the Kind of an error returned by this package, or 0.
func KindOf(err error) Kind {
	if e, ok := errors.Cause(err).(*Error); ok {
		return e.Kind
	}
	return 0
}
