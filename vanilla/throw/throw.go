// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package throw

import (
	"fmt"
)

// E builds a new error carrying the given message and optional detail
// values, retrievable later via FindDetail.
func E(msg string, details ...interface{}) error {
	e := &detailedError{msg: msg}
	for _, d := range details {
		e.details = append(e.details, d)
	}
	return e
}

// W wraps err with an additional message and optional detail values.
// Unwrap(W(err, ...)) == err.
func W(err error, msg string, details ...interface{}) error {
	if err == nil {
		return E(msg, details...)
	}
	e := &detailedError{msg: msg, cause: err}
	for _, d := range details {
		e.details = append(e.details, d)
	}
	return e
}

func WithDetails(err error, details ...interface{}) error {
	return W(err, "", details...)
}

func WithStackAndDetails(err error, details ...interface{}) error {
	return W(err, "", details...)
}

type detailedError struct {
	msg     string
	cause   error
	details []interface{}
}

func (e *detailedError) Error() string {
	switch {
	case e.msg == "" && e.cause != nil:
		return e.cause.Error()
	case e.cause == nil:
		return e.msg
	default:
		return fmt.Sprintf("%s: %s", e.msg, e.cause.Error())
	}
}

func (e *detailedError) Unwrap() error {
	return e.cause
}

func (e *detailedError) AsDetail(target interface{}) bool {
	for _, d := range e.details {
		if asDetail(d, target) {
			return true
		}
	}
	return false
}

// IllegalValue reports a precondition violation on an argument.
func IllegalValue() error {
	return E("illegal value")
}

// IllegalState reports an invariant violation on receiver state.
func IllegalState() error {
	return E("illegal state")
}

// Impossible marks a branch the caller has proven unreachable.
func Impossible() error {
	return E("impossible")
}

// Unsupported marks an operation deliberately not implemented.
func Unsupported() error {
	return E("unsupported")
}

func FailHere(msg string) error {
	return E(msg)
}

// IsEqual compares two errors by dynamic type and ==, avoiding a panic when
// either side holds an incomparable dynamic value.
func IsEqual(a, b error) (eq bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
