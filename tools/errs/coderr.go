package errs

import (
	stderr "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CodeError is the wire-level error shape shared by the HTTP surface and the
// gateway error events: a stable code, a client-facing message and an optional
// server-side detail.
type CodeError struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Detail string `json:"detail,omitempty"`
}

func NewCodeError(code int, msg string) *CodeError {
	return &CodeError{Code: code, Msg: msg}
}

func (e *CodeError) Error() string {
	v := make([]string, 0, 3)
	v = append(v, strconv.Itoa(e.Code), e.Msg)
	if e.Detail != "" {
		v = append(v, e.Detail)
	}
	return strings.Join(v, " ")
}

func (e *CodeError) clone() *CodeError {
	return &CodeError{Code: e.Code, Msg: e.Msg, Detail: e.Detail}
}

// WithDetail returns a copy carrying extra detail; the receiver is not mutated
// so the package-level sentinels stay pristine.
func (e *CodeError) WithDetail(detail string) *CodeError {
	c := e.clone()
	if c.Detail == "" {
		c.Detail = detail
	} else {
		c.Detail += ", " + detail
	}
	return c
}

// WrapMsg attaches detail and a stack trace.
func (e *CodeError) WrapMsg(msg string, kv ...any) error {
	c := e.clone()
	if msg != "" || len(kv) > 0 {
		detail := toString(msg, kv)
		if c.Detail == "" {
			c.Detail = detail
		} else {
			c.Detail += ", " + detail
		}
	}
	return errors.WithStack(c)
}

// Is reports whether err carries the same code, so errors.Is works across
// WithDetail/WrapMsg copies.
func (e *CodeError) Is(err error) bool {
	var ce *CodeError
	if !stderr.As(err, &ce) {
		return false
	}
	return ce.Code == e.Code
}

// Wrap attaches a stack trace to an arbitrary error.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(err)
}

func WrapMsg(err error, msg string, kv ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, toString(msg, kv))
}

func New(msg string, kv ...any) error {
	return errors.New(toString(msg, kv))
}

func toString(msg string, kv []any) string {
	if len(kv) == 0 {
		return msg
	}
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i < len(kv); i += 2 {
		if i > 0 || msg != "" {
			sb.WriteString(" ")
		}
		if i+1 < len(kv) {
			sb.WriteString(fmt.Sprintf("%v=%v", kv[i], kv[i+1]))
		} else {
			sb.WriteString(fmt.Sprintf("%v", kv[i]))
		}
	}
	return sb.String()
}
