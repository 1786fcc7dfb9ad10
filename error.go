// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

import (
	"errors"

	"code.hybscloud.com/kont"
)

// Errors returned to the shell on protocol misuse. Structural violations
// inside the runtime panic instead.
var (
	// ErrRequestResolved is returned when a single-shot request is resolved
	// a second time. The second response has no effect.
	ErrRequestResolved = errors.New("capa: request already resolved")
	// ErrRequestClosed is returned when a streaming request was closed by
	// its task, or a request was abandoned.
	ErrRequestClosed = errors.New("capa: request closed")
	// ErrUnknownRequest is returned by ResolveID for an ID that is not
	// outstanding on the core.
	ErrUnknownRequest = errors.New("capa: unknown request")
	// ErrForeignRequest is returned when a request is resolved on a core
	// other than the one that issued it.
	ErrForeignRequest = errors.New("capa: request belongs to another core")
	// ErrResponseType is returned when the response does not have the type
	// the request awaits.
	ErrResponseType = errors.New("capa: response type mismatch")
)

// Result builds the Either outcome of an external operation:
// Left(err) on failure, Right(v) on success.
func Result[A any](v A, err error) kont.Either[error, A] {
	if err != nil {
		return kont.Left[error, A](err)
	}
	return kont.Right[error](v)
}

// Fold collapses an outcome into a single value.
func Fold[A, B any](e kont.Either[error, A], onErr func(error) B, onOK func(A) B) B {
	if err, ok := e.GetLeft(); ok {
		return onErr(err)
	}
	v, _ := e.GetRight()
	return onOK(v)
}
