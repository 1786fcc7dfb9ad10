// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

import (
	"code.hybscloud.com/kont"
)

// Context is the execution environment of a capability instance.
// Op is the payload the capability delivers to the shell, Ev the event
// type of the application (or sub-component) it talks to.
//
// A Context only holds senders and the spawner; it is safe to copy and to
// use from any goroutine.
type Context[Op, Ev any] struct {
	exec   *executor
	steps  Sender[Step[Op]]
	events Sender[Ev]
}

// Spawn schedules a Cont-world task. The task runs on the core's goroutine
// during the next ProcessEvent or Resolve, never inline.
func (c *Context[Op, Ev]) Spawn(task kont.Eff[struct{}]) {
	c.exec.spawn(kont.Reify(task))
}

// SpawnExpr schedules an Expr-world task.
func (c *Context[Op, Ev]) SpawnExpr(task kont.Expr[struct{}]) {
	c.exec.spawn(task)
}

// Advance returns the task operation pushing step into the core's effect
// queue. This is the only way a task talks to the shell.
func (c *Context[Op, Ev]) Advance(step Step[Op]) kont.Eff[struct{}] {
	return kont.Perform(advanceOp[Op]{steps: c.steps, step: step})
}

// UpdateApp returns the task operation feeding ev back into the
// application's update function.
func (c *Context[Op, Ev]) UpdateApp(ev Ev) kont.Eff[struct{}] {
	return kont.Perform(updateOp[Ev]{events: c.events, event: ev})
}

// Notify spawns a task that delivers op once and completes.
func (c *Context[Op, Ev]) Notify(op Op) {
	c.Spawn(c.Advance(Once(op)))
}

// MapEvent returns a context speaking NewEv. Events sent through it are
// converted with f before reaching the original application.
func MapEvent[Op, Ev, NewEv any](c *Context[Op, Ev], f func(NewEv) Ev) *Context[Op, NewEv] {
	return &Context[Op, NewEv]{
		exec:   c.exec,
		steps:  c.steps,
		events: MapInput(c.events, f),
	}
}

// MapOperation returns a context delivering NewOp payloads. Each payload
// is converted with f into the original effect type.
func MapOperation[Op, NewOp, Ev any](c *Context[Op, Ev], f func(NewOp) Op) *Context[NewOp, Ev] {
	return &Context[NewOp, Ev]{
		exec:   c.exec,
		steps:  MapEffect(c.steps, f),
		events: c.events,
	}
}
