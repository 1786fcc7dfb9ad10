// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

import (
	"code.hybscloud.com/kont"
)

// Await delivers op to the shell as a single-shot request and suspends
// the task until the shell resolves it.
func Await[Op, Out, Ev any](c *Context[*Request[Op, Out], Ev], op Op) kont.Eff[Out] {
	return kont.Map(kont.Perform(openOp[Op, Out]{steps: c.steps, op: op, kind: StepOnce}), func(d delivery[Op, Out]) Out {
		return d.value
	})
}

// AwaitBind awaits the response to op and passes it to f.
// Fuses Await + Bind.
func AwaitBind[Op, Out, Ev, B any](c *Context[*Request[Op, Out], Ev], op Op, f func(Out) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(openOp[Op, Out]{steps: c.steps, op: op, kind: StepOnce}), func(d delivery[Op, Out]) kont.Eff[B] {
		return f(d.value)
	})
}

// AwaitUpdate awaits the response to op and feeds event(response) to the
// application. This is the shape of most request capabilities.
func AwaitUpdate[Op, Out, Ev any](c *Context[*Request[Op, Out], Ev], op Op, event func(Out) Ev) kont.Eff[struct{}] {
	return AwaitBind(c, op, func(out Out) kont.Eff[struct{}] {
		return c.UpdateApp(event(out))
	})
}

// Subscribe delivers op to the shell as a streaming request and calls
// each for every resolved item, in order. The stream is closed when each
// reports false; the task completes afterwards.
func Subscribe[Op, Out, Ev any](c *Context[*Request[Op, Out], Ev], op Op, each func(Out) kont.Eff[bool]) kont.Eff[struct{}] {
	done := kont.Right[delivery[Op, Out]](struct{}{})
	return kont.Bind(kont.Perform(openOp[Op, Out]{steps: c.steps, op: op, kind: StepStream}), func(first delivery[Op, Out]) kont.Eff[struct{}] {
		return Loop(first, func(d delivery[Op, Out]) kont.Eff[kont.Either[delivery[Op, Out], struct{}]] {
			if d.closed {
				return kont.Pure(done)
			}
			return kont.Bind(each(d.value), func(more bool) kont.Eff[kont.Either[delivery[Op, Out], struct{}]] {
				if !more {
					return kont.Then(kont.Perform(closeOp[Op, Out]{req: d.req}), kont.Pure(done))
				}
				return kont.Map(kont.Perform(nextOp[Op, Out]{req: d.req}), func(n delivery[Op, Out]) kont.Either[delivery[Op, Out], struct{}] {
					return kont.Left[delivery[Op, Out], struct{}](n)
				})
			})
		})
	})
}

// SubscribeUpdate subscribes to op and feeds event(item) to the
// application for every item until the stream is closed by the shell.
func SubscribeUpdate[Op, Out, Ev any](c *Context[*Request[Op, Out], Ev], op Op, event func(Out) Ev) kont.Eff[struct{}] {
	return Subscribe(c, op, func(item Out) kont.Eff[bool] {
		return kont.Then(c.UpdateApp(event(item)), kont.Pure(true))
	})
}

// AdvanceThen pushes step and then continues with next.
// Fuses Advance + Then.
func AdvanceThen[Op, Ev, B any](c *Context[Op, Ev], step Step[Op], next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(c.Advance(step), next)
}

// UpdateThen feeds ev to the application and then continues with next.
// Fuses UpdateApp + Then.
func UpdateThen[Op, Ev, B any](c *Context[Op, Ev], ev Ev, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(c.UpdateApp(ev), next)
}

// Done completes a task.
func Done() kont.Eff[struct{}] {
	return kont.Pure(struct{}{})
}
