package account

import (
	"errors"
	"fmt"
)

// Kind tags a failure as worth retrying or not.
type Kind int

const (
	// KindPermanent failures must not be retried: malformed requests,
	// authentication problems, undecodable responses.
	KindPermanent Kind = iota
	// KindTransient failures are communication faults likely to succeed
	// on retry: refused connections, timeouts, unavailable upstreams.
	KindTransient
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k == KindTransient {
		return "transient"
	}
	return "permanent"
}

// Failure is a classified failure from a Client.
type Failure struct {
	Kind Kind
	Op   string
	Err  error
}

func (f *Failure) Error() string {
	if f.Op == "" {
		return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("%s: %s failure: %v", f.Op, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Transient tags err as a transient failure of op.
func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Failure{Kind: KindTransient, Op: op, Err: err}
}

// Permanent tags err as a permanent failure of op.
func Permanent(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Failure{Kind: KindPermanent, Op: op, Err: err}
}

// IsTransient reports whether err carries a transient failure tag.
func IsTransient(err error) bool {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind == KindTransient
	}
	return false
}

// IsPermanent reports whether err is a non-nil error without a transient tag.
func IsPermanent(err error) bool {
	return err != nil && !IsTransient(err)
}

// ErrEmptyResponse is returned when a client reports success without a response.
var ErrEmptyResponse = errors.New("account: empty response")
