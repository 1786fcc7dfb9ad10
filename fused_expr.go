// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

import (
	"code.hybscloud.com/kont"
)

var exprReturnFrame kont.Frame = kont.ReturnFrame{}

func identityResume(v kont.Erased) kont.Erased { return v }

// exprThen suspends on op and continues with next.
func exprThen[B any](op kont.Erased, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

// ExprAdvanceThen pushes step and then continues with next.
// Fuses ExprAdvance + ExprThen.
func ExprAdvanceThen[Op, Ev, B any](c *Context[Op, Ev], step Step[Op], next kont.Expr[B]) kont.Expr[B] {
	return exprThen(advanceOp[Op]{steps: c.steps, step: step}, next)
}

// ExprUpdateThen feeds ev to the application and then continues with next.
// Fuses ExprUpdateApp + ExprThen.
func ExprUpdateThen[Op, Ev, B any](c *Context[Op, Ev], ev Ev, next kont.Expr[B]) kont.Expr[B] {
	return exprThen(updateOp[Ev]{events: c.events, event: ev}, next)
}

func awaitBindUnwind[Op, Out, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(Out) kont.Expr[B])
	result := f(current.(delivery[Op, Out]).value)
	return kont.Erased(result.Value), result.Frame
}

// ExprAwaitBind awaits the response to op and passes it to f.
// Fuses ExprAwait + ExprBind.
func ExprAwaitBind[Op, Out, Ev, B any](c *Context[*Request[Op, Out], Ev], op Op, f func(Out) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = awaitBindUnwind[Op, Out, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = openOp[Op, Out]{steps: c.steps, op: op, kind: StepOnce}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}
