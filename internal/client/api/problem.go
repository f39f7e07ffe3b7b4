package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/mvolkov/tastebook/internal/client/models"
)

// Kind discriminates the closed set of failure categories a wrapper can
// report. Expected failures travel as values, never as panics or errors
// thrown past the wrapper boundary.
type Kind string

const (
	KindOK            Kind = "ok"
	KindUnauthorized  Kind = "unauthorized"
	KindForbidden     Kind = "forbidden"
	KindNotFound      Kind = "not-found"
	KindRejected      Kind = "rejected"
	KindTimeout       Kind = "timeout"
	KindCannotConnect Kind = "cannot-connect"
	KindBadData       Kind = "bad-data"
	KindUnknown       Kind = "unknown"
)

// Problem is a classified API failure. A nil *Problem means the call
// succeeded. Problem implements error so it can be wrapped where an error
// return is unavoidable, but resource wrappers always hand it back as a
// typed value.
type Problem struct {
	Kind   Kind
	Status int    // HTTP status when one was received
	Detail string // optional human-readable context
}

func (p *Problem) Error() string {
	if p == nil {
		return string(KindOK)
	}
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Kind, p.Detail)
	}
	return string(p.Kind)
}

func badData(detail string) *Problem {
	return &Problem{Kind: KindBadData, Detail: detail}
}

// problemFromStatus classifies a non-2xx HTTP status. 401 here means the
// server rejected the call even after any refresh the client attempted.
func problemFromStatus(status int) *Problem {
	switch {
	case status == http.StatusUnauthorized:
		return &Problem{Kind: KindUnauthorized, Status: status}
	case status == http.StatusForbidden:
		return &Problem{Kind: KindForbidden, Status: status}
	case status == http.StatusNotFound:
		return &Problem{Kind: KindNotFound, Status: status}
	case status >= 400 && status < 500:
		return &Problem{Kind: KindRejected, Status: status}
	default:
		return &Problem{Kind: KindUnknown, Status: status}
	}
}

// problemFromError classifies transport-level failures from the HTTP client
// and the escalated session-expiry error.
func problemFromError(err error) *Problem {
	var ne net.Error
	switch {
	case errors.Is(err, ErrSessionExpired):
		return &Problem{Kind: KindUnauthorized, Detail: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return &Problem{Kind: KindTimeout, Detail: err.Error()}
	case errors.As(err, &ne) && ne.Timeout():
		return &Problem{Kind: KindTimeout, Detail: err.Error()}
	default:
		return &Problem{Kind: KindCannotConnect, Detail: err.Error()}
	}
}

// problem collapses the (response, error) pair of an AuthorizedRequest into
// a single classification. Nil when the response is a 2xx.
func problem(resp *RawResponse, err error) *Problem {
	if err != nil {
		return problemFromError(err)
	}
	if !resp.OK() {
		return problemFromStatus(resp.Status)
	}
	return nil
}

// decodePage unmarshals a paginated response envelope, returning bad-data
// when the body does not parse or the page metadata is missing.
func decodePage[T any](body []byte) (*models.Page[T], *Problem) {
	var page models.Page[T]
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, badData(err.Error())
	}
	if !page.Valid() {
		return nil, badData("page metadata missing or invalid")
	}
	return &page, nil
}
