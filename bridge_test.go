// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa_test

import (
	"slices"
	"testing"

	"code.hybscloud.com/capa"
	"code.hybscloud.com/kont"
)

func TestExprAdvanceAndUpdate(t *testing.T) {
	skipRace(t)
	c := newTestCore(t, func(ev testEvent, m *testModel, caps testCaps) {
		if ev.name != "go" {
			got(ev, m)
			return
		}
		caps.note.SpawnExpr(capa.ExprAdvanceThen(caps.note, capa.Once("x"),
			capa.ExprUpdateThen(caps.note, gotEvent(2),
				capa.ExprAdvance(caps.note, capa.Once("y")))))
	})
	effects := c.ProcessEvent(testEvent{name: "go"})
	if got := notes(effects); !slices.Equal(got, []string{"x", "y"}) {
		t.Fatalf("effects = %v, want [x y]", got)
	}
	if c.Model().total != 2 {
		t.Fatalf("total = %d, want 2", c.Model().total)
	}
}

func TestExprAwait(t *testing.T) {
	skipRace(t)
	var answer int
	c := newTestCore(t, func(ev testEvent, m *testModel, caps testCaps) {
		ctx := caps.fetch.Context()
		ctx.SpawnExpr(kont.ExprMap(capa.ExprAwait(ctx, "q"), func(n int) struct{} {
			answer = n
			return struct{}{}
		}))
	})
	req := mustOne(t, c.ProcessEvent(testEvent{name: "go"}))
	if _, err := c.Resolve(req, 11); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if answer != 11 {
		t.Fatalf("answer = %d, want 11", answer)
	}
}

func TestExprAwaitBind(t *testing.T) {
	skipRace(t)
	c := newTestCore(t, func(ev testEvent, m *testModel, caps testCaps) {
		if ev.name != "go" {
			got(ev, m)
			return
		}
		ctx := caps.fetch.Context()
		ctx.SpawnExpr(capa.ExprAwaitBind(ctx, "a", func(a int) kont.Expr[struct{}] {
			return capa.ExprAwaitBind(ctx, "b", func(b int) kont.Expr[struct{}] {
				return capa.ExprUpdateApp(ctx, gotEvent(a*b))
			})
		}))
	})
	first := mustOne(t, c.ProcessEvent(testEvent{name: "go"}))
	if first.Operation != "a" {
		t.Fatalf("first Operation = %q", first.Operation)
	}
	effects, err := c.Resolve(first, 6)
	if err != nil {
		t.Fatalf("Resolve(a): %v", err)
	}
	second := mustOne(t, effects)
	if second.Operation != "b" {
		t.Fatalf("second Operation = %q", second.Operation)
	}
	if _, err := c.Resolve(second, 7); err != nil {
		t.Fatalf("Resolve(b): %v", err)
	}
	if c.Model().total != 42 {
		t.Fatalf("total = %d, want 42", c.Model().total)
	}
}

func TestReifyReflect(t *testing.T) {
	skipRace(t)
	c := newTestCore(t, func(ev testEvent, m *testModel, caps testCaps) {
		// Cont -> Expr -> Cont, composed with a Cont-world continuation.
		round := capa.Reflect(capa.Reify(caps.note.Advance(capa.Once("first"))))
		caps.note.Spawn(kont.Then(round, caps.note.Advance(capa.Once("second"))))
	})
	if got := notes(c.ProcessEvent(testEvent{name: "go"})); !slices.Equal(got, []string{"first", "second"}) {
		t.Fatalf("effects = %v", got)
	}
}
