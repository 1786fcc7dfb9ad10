// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

import (
	"slices"

	"code.hybscloud.com/kont"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// task is one unit of cooperative work.
type task struct {
	serial   Serial
	expr     kont.Expr[struct{}]
	requests []Resolvable
	done     bool
}

// release forgets a request that no longer needs closing on completion.
func (t *task) release(r Resolvable) {
	if i := slices.Index(t.requests, r); i >= 0 {
		t.requests = slices.Delete(t.requests, i, i+1)
	}
}

// executor is a single-threaded cooperative scheduler.
// Spawning is safe from any goroutine; stepping only happens on the
// goroutine driving the core.
type executor struct {
	spawner Sender[*task]
	ready   *Receiver[*task]
	pending map[uuid.UUID]Resolvable
	core    Serial
}

func newExecutor(core Serial) *executor {
	spawner, ready := Channel[*task]()
	return &executor{
		spawner: spawner,
		ready:   ready,
		pending: make(map[uuid.UUID]Resolvable),
		core:    core,
	}
}

// spawn schedules a task. It does not run until the next runUntilStalled.
func (ex *executor) spawn(expr kont.Expr[struct{}]) {
	ex.spawner.Send(&task{serial: nextTaskSerial(), expr: expr})
}

// runUntilStalled starts every ready task, including tasks spawned while
// running, and steps each until it completes or parks on a request.
// Returns the number of tasks started.
func (ex *executor) runUntilStalled() int {
	n := 0
	for t := range ex.ready.Drain() {
		n++
		_, susp := kont.StepExpr(t.expr)
		t.expr = kont.Expr[struct{}]{}
		ex.drive(t, susp)
	}
	return n
}

// drive dispatches task operations until the task parks or completes.
func (ex *executor) drive(t *task, susp *kont.Suspension[struct{}]) {
	for susp != nil {
		op, ok := susp.Op().(taskDispatcher)
		if !ok {
			panic("capa: unhandled effect in task")
		}
		v, resume := op.dispatchTask(ex, t, susp)
		if !resume {
			return
		}
		_, susp = susp.Resume(v)
	}
	ex.complete(t)
}

// resume continues a parked task with v.
func (ex *executor) resume(t *task, susp *kont.Suspension[struct{}], v kont.Resumed) {
	_, next := susp.Resume(v)
	ex.drive(t, next)
}

// complete closes every request the finished task still owns.
func (ex *executor) complete(t *task) {
	t.done = true
	ex.abandon(t)
	if ce := Logger().Check(zap.DebugLevel, "task completed"); ce != nil {
		ce.Write(zap.Uint32("core", ex.core), zap.Uint32("task", t.serial))
	}
}

// abandon closes every request owned by t, discarding a parked continuation.
func (ex *executor) abandon(t *task) {
	reqs := t.requests
	t.requests = nil
	for _, r := range reqs {
		r.close()
	}
}

func (ex *executor) register(r Resolvable) {
	ex.pending[r.ID()] = r
}

func (ex *executor) unregister(r Resolvable) {
	delete(ex.pending, r.ID())
}

func (ex *executor) lookup(id uuid.UUID) (Resolvable, bool) {
	r, ok := ex.pending[id]
	return r, ok
}

// shutdown closes the ready queue. Later spawns panic.
func (ex *executor) shutdown() {
	ex.ready.Close()
}
