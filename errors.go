package neohttp

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/neohttp/neohttp-go/internal/httpx"
	"github.com/neohttp/neohttp-go/internal/wire"
)

// Kind classifies a call failure. Every failed operation returns an
// *Error carrying exactly one Kind, so callers can branch without
// parsing message text.
type Kind int

const (
	// KindTransport means the request failed before any response arrived:
	// connection refused, DNS failure, connection reset.
	KindTransport Kind = iota + 1

	// KindTimeout means no response arrived within the configured deadline.
	KindTimeout

	// KindAuthentication means the server rejected the request's credentials
	// or the credentials lack the required permissions.
	KindAuthentication

	// KindClientRequest means the database rejected the request itself:
	// malformed query, constraint violation, unknown database.
	KindClientRequest

	// KindServerInternal means the database failed while executing a
	// well-formed request.
	KindServerInternal

	// KindProtocol means the exchange did not follow the statement
	// endpoint's contract: invalid statements caught before sending, or a
	// response body that does not decode into the expected structure.
	KindProtocol
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindAuthentication:
		return "authentication"
	case KindClientRequest:
		return "client_request"
	case KindServerInternal:
		return "server_internal"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by every operation in this package.
// Use errors.As to recover it and branch on Kind.
type Error struct {
	// Kind is the failure classification.
	Kind Kind

	// Code is the database's own error code, for example
	// "Neo.ClientError.Statement.SyntaxError". Empty when the failure
	// never reached the database.
	Code string

	// Message describes the failure. For database-reported failures it is
	// the database's own message.
	Message string

	// Status is the HTTP status of the response, 0 when none arrived.
	Status int

	// Statement is the index of the failing statement within the
	// submitted batch, or -1 when it cannot be derived.
	Statement int

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("neohttp: ")
	b.WriteString(e.Kind.String())
	if e.Code != "" {
		b.WriteString(" [")
		b.WriteString(e.Code)
		b.WriteString("]")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Statement >= 0 {
		fmt.Fprintf(&b, " (statement %d)", e.Statement)
	}
	return b.String()
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Retryable reports whether the failure occurred before the database
// could have observed the request. The library never retries on its
// own; statements may have side effects.
func (e *Error) Retryable() bool {
	return e.Kind == KindTransport || e.Kind == KindTimeout
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Statement: -1, cause: cause}
}

func protocolError(message string, cause error) *Error {
	return newError(KindProtocol, message, cause)
}

// classifyTransport converts a Transport failure into the Transport or
// Timeout kind. No response exists at this point.
func classifyTransport(err error) *Error {
	if httpx.IsTimeout(err) {
		return newError(KindTimeout, "no response within timeout", err)
	}
	return newError(KindTransport, err.Error(), err)
}

// classifyStatus maps error-bearing HTTP statuses for responses that do
// not carry a statement envelope (discovery, custom endpoints). It
// returns nil for successful statuses.
func classifyStatus(resp *httpx.Response) *Error {
	e := statusError(resp)
	if e == nil {
		return nil
	}
	e.Message = bodyExcerpt(resp.Body)
	return e
}

func statusError(resp *httpx.Response) *Error {
	var kind Kind
	switch {
	case resp.Status == http.StatusUnauthorized || resp.Status == http.StatusForbidden:
		kind = KindAuthentication
	case resp.Status >= 500:
		kind = KindServerInternal
	case resp.Status >= 400:
		kind = KindClientRequest
	default:
		return nil
	}
	e := newError(kind, "", nil)
	e.Status = resp.Status
	return e
}

// classifyEnvelope inspects a statement-endpoint response and returns
// the decoded envelope on success or exactly one error on failure.
// Evaluation order: authentication status, server-fault status,
// database-reported errors, undecodable body.
func classifyEnvelope(resp *httpx.Response, submitted int) (*wire.Envelope, *Error) {
	if resp.Status == http.StatusUnauthorized || resp.Status == http.StatusForbidden {
		e := newError(KindAuthentication, bodyExcerpt(resp.Body), nil)
		e.Status = resp.Status
		return nil, e
	}

	env, decErr := wire.DecodeEnvelope(resp.Body)

	// Error statuses still try to surface the database's own code and
	// message when the body decodes.
	if se := statusError(resp); se != nil {
		if decErr == nil && len(env.Errors) > 0 {
			e := classifyServerErrors(env.Errors, len(env.Results), submitted)
			e.Status = resp.Status
			return nil, e
		}
		se.Message = bodyExcerpt(resp.Body)
		return nil, se
	}

	if decErr != nil {
		e := protocolError("undecodable response body", decErr)
		e.Status = resp.Status
		return nil, e
	}

	if len(env.Errors) > 0 {
		e := classifyServerErrors(env.Errors, len(env.Results), submitted)
		e.Status = resp.Status
		return nil, e
	}

	return env, nil
}

// classifyServerErrors converts database-reported errors into one
// *Error. Statements execute sequentially inside the transaction scope
// and stop at the first failure, so when fewer results than statements
// came back, the failing statement is the first one without a result.
func classifyServerErrors(errs []wire.ServerError, completed, submitted int) *Error {
	first := errs[0]
	e := newError(kindForCode(first.Code), first.Message, nil)
	e.Code = first.Code
	if completed < submitted {
		e.Statement = completed
	}
	return e
}

// kindForCode maps the database's dotted error-code classes onto kinds.
func kindForCode(code string) Kind {
	switch {
	case strings.Contains(code, "ClientError.Security"):
		return KindAuthentication
	case strings.Contains(code, "ClientError"):
		return KindClientRequest
	default:
		// DatabaseError, TransientError, and anything unrecognized are
		// the server's fault.
		return KindServerInternal
	}
}

// bodyExcerpt keeps a bounded slice of the response body for
// diagnostics. Request headers and credentials are never retained.
func bodyExcerpt(body []byte) string {
	const max = 512
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max]
	}
	return s
}
