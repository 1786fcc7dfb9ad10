// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

import (
	"code.hybscloud.com/kont"
)

// Reify converts a Cont-world task to Expr-world.
// The result can be scheduled with SpawnExpr.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world task to Cont-world.
// The result can be scheduled with Spawn or composed with Bind.
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}

// ExprAdvance is the Expr-world form of Context.Advance.
func ExprAdvance[Op, Ev any](c *Context[Op, Ev], step Step[Op]) kont.Expr[struct{}] {
	return kont.ExprPerform(advanceOp[Op]{steps: c.steps, step: step})
}

// ExprUpdateApp is the Expr-world form of Context.UpdateApp.
func ExprUpdateApp[Op, Ev any](c *Context[Op, Ev], ev Ev) kont.Expr[struct{}] {
	return kont.ExprPerform(updateOp[Ev]{events: c.events, event: ev})
}

// ExprAwait is the Expr-world form of Await.
func ExprAwait[Op, Out, Ev any](c *Context[*Request[Op, Out], Ev], op Op) kont.Expr[Out] {
	return kont.ExprMap(kont.ExprPerform(openOp[Op, Out]{steps: c.steps, op: op, kind: StepOnce}), func(d delivery[Op, Out]) Out {
		return d.value
	})
}
