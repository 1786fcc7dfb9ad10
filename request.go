// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

import (
	"fmt"

	"code.hybscloud.com/kont"
	"github.com/google/uuid"
)

type requestState uint8

const (
	requestOpen requestState = iota
	requestResolved
	requestClosed
)

// Request is the effect payload of an asynchronous operation awaiting a
// response of type Out from the shell.
//
// A StepOnce request accepts exactly one response; it is invalidated by
// the first Resolve. A StepStream request accepts one response per item
// until the owning task closes it.
type Request[Op, Out any] struct {
	// Operation describes what the shell should perform.
	Operation Op

	id     uuid.UUID
	kind   StepKind
	state  requestState
	exec   *executor
	task   *task
	susp   *kont.Suspension[struct{}]
	buffer []Out
}

// ID returns the correlation identifier of the request.
func (r *Request[Op, Out]) ID() uuid.UUID {
	return r.id
}

// Kind reports whether the request is single-shot or streaming.
func (r *Request[Op, Out]) Kind() StepKind {
	return r.kind
}

// Done reports whether the request accepts no further responses.
func (r *Request[Op, Out]) Done() bool {
	return r.state != requestOpen
}

// Resolvable is implemented by every *Request.
type Resolvable interface {
	ID() uuid.UUID
	Kind() StepKind
	Done() bool

	owner() *executor
	owningTask() *task
	resolve(response any) error
	finish()
	close()
	stateErr() error
}

func (r *Request[Op, Out]) owner() *executor {
	return r.exec
}

func (r *Request[Op, Out]) owningTask() *task {
	return r.task
}

// resolve delivers one response. A nil response resolves with the zero Out.
// Runs the owning task on the calling goroutine until it parks again.
func (r *Request[Op, Out]) resolve(response any) error {
	if err := r.stateErr(); err != nil {
		return err
	}
	out, ok := response.(Out)
	if !ok && response != nil {
		var want Out
		return fmt.Errorf("%w: request %s wants %T, got %T", ErrResponseType, r.id, want, response)
	}

	if r.kind == StepOnce {
		r.state = requestResolved
		r.exec.unregister(r)
		r.task.release(r)
	}
	if r.susp == nil {
		r.buffer = append(r.buffer, out)
		return nil
	}
	susp := r.susp
	r.susp = nil
	r.exec.resume(r.task, susp, delivery[Op, Out]{req: r, value: out})
	return nil
}

// stateErr returns the error for a request that accepts no further
// responses, or nil while it is open.
func (r *Request[Op, Out]) stateErr() error {
	switch r.state {
	case requestResolved:
		return fmt.Errorf("%w: %s", ErrRequestResolved, r.id)
	case requestClosed:
		return fmt.Errorf("%w: %s", ErrRequestClosed, r.id)
	}
	return nil
}

// finish ends a stream from the shell side. Buffered items are still
// delivered; the owning task then observes the end of the stream.
func (r *Request[Op, Out]) finish() {
	if r.state != requestOpen || r.kind != StepStream {
		return
	}
	r.state = requestClosed
	r.exec.unregister(r)
	r.task.release(r)
	if r.susp == nil {
		return
	}
	susp := r.susp
	r.susp = nil
	r.exec.resume(r.task, susp, delivery[Op, Out]{req: r, closed: true})
}

// close invalidates the request. A parked continuation is discarded and
// buffered items are dropped.
func (r *Request[Op, Out]) close() {
	if r.state != requestOpen {
		return
	}
	r.state = requestClosed
	r.exec.unregister(r)
	r.task.release(r)
	if r.susp != nil {
		r.susp.Discard()
		r.susp = nil
	}
	r.buffer = nil
}

// park stores the continuation of the owning task until the next response.
func (r *Request[Op, Out]) park(susp *kont.Suspension[struct{}]) {
	r.susp = susp
}

// pop takes the oldest buffered item.
func (r *Request[Op, Out]) pop() (Out, bool) {
	if len(r.buffer) == 0 {
		var zero Out
		return zero, false
	}
	v := r.buffer[0]
	r.buffer = r.buffer[1:]
	return v, true
}

// delivery is the resumption value of request operations.
// closed is set when a stream was closed before the next item arrived.
type delivery[Op, Out any] struct {
	req    *Request[Op, Out]
	value  Out
	closed bool
}
