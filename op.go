// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

import (
	"code.hybscloud.com/kont"
	"github.com/google/uuid"
)

// taskDispatcher is the structural interface for task operations.
// dispatchTask returns (value, true) to resume the task immediately, or
// (nil, false) after parking susp on a request.
type taskDispatcher interface {
	dispatchTask(ex *executor, t *task, susp *kont.Suspension[struct{}]) (kont.Resumed, bool)
}

// advanceOp pushes a step into the core's effect queue.
type advanceOp[Op any] struct {
	kont.Phantom[struct{}]
	steps Sender[Step[Op]]
	step  Step[Op]
}

func (o advanceOp[Op]) dispatchTask(*executor, *task, *kont.Suspension[struct{}]) (kont.Resumed, bool) {
	o.steps.Send(o.step)
	return struct{}{}, true
}

// updateOp pushes an event back into the application.
type updateOp[Ev any] struct {
	kont.Phantom[struct{}]
	events Sender[Ev]
	event  Ev
}

func (o updateOp[Ev]) dispatchTask(*executor, *task, *kont.Suspension[struct{}]) (kont.Resumed, bool) {
	o.events.Send(o.event)
	return struct{}{}, true
}

// openOp registers a request, delivers it as a step and parks the task
// until the first response.
type openOp[Op, Out any] struct {
	kont.Phantom[delivery[Op, Out]]
	steps Sender[Step[*Request[Op, Out]]]
	op    Op
	kind  StepKind
}

func (o openOp[Op, Out]) dispatchTask(ex *executor, t *task, susp *kont.Suspension[struct{}]) (kont.Resumed, bool) {
	req := &Request[Op, Out]{
		Operation: o.op,
		id:        uuid.New(),
		kind:      o.kind,
		exec:      ex,
		task:      t,
	}
	ex.register(req)
	t.requests = append(t.requests, req)
	req.park(susp)
	if o.kind == StepStream {
		o.steps.Send(Stream(req))
	} else {
		o.steps.Send(Once(req))
	}
	return nil, false
}

// nextOp waits for the next item of a streaming request.
type nextOp[Op, Out any] struct {
	kont.Phantom[delivery[Op, Out]]
	req *Request[Op, Out]
}

func (o nextOp[Op, Out]) dispatchTask(_ *executor, _ *task, susp *kont.Suspension[struct{}]) (kont.Resumed, bool) {
	if v, ok := o.req.pop(); ok {
		return delivery[Op, Out]{req: o.req, value: v}, true
	}
	if o.req.Done() {
		return delivery[Op, Out]{req: o.req, closed: true}, true
	}
	o.req.park(susp)
	return nil, false
}

// closeOp closes a streaming request from within its owning task.
type closeOp[Op, Out any] struct {
	kont.Phantom[struct{}]
	req *Request[Op, Out]
}

func (o closeOp[Op, Out]) dispatchTask(*executor, *task, *kont.Suspension[struct{}]) (kont.Resumed, bool) {
	o.req.close()
	return struct{}{}, true
}
