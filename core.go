// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// App is the synchronous application logic driven by a Core.
// Update must not block; it requests side effects through caps.
type App[Ev, M, Caps any] interface {
	Update(event Ev, model *M, caps Caps)
}

// Core owns the effect queue, runs App.Update on incoming events and
// resolves outstanding requests.
//
// A Core is not safe for concurrent use: ProcessEvent, Resolve, ResolveID
// and Abandon must be called from one goroutine at a time. Capability
// tasks only ever run inside those calls.
type Core[Ef, Ev, M, Caps any] struct {
	app     App[Ev, M, Caps]
	model   M
	caps    Caps
	exec    *executor
	effects *Receiver[Step[Ef]]
	events  *Receiver[Ev]
	serial  Serial
}

// NewCore creates a core for app. build constructs the capability set from
// the root context; each capability narrows it with MapOperation.
func NewCore[Ef, Ev, M, Caps any](app App[Ev, M, Caps], build func(root *Context[Ef, Ev]) Caps) *Core[Ef, Ev, M, Caps] {
	s := nextCoreSerial()
	steps, effects := Channel[Step[Ef]]()
	evs, events := Channel[Ev]()
	c := &Core[Ef, Ev, M, Caps]{
		app:     app,
		exec:    newExecutor(s),
		effects: effects,
		events:  events,
		serial:  s,
	}
	c.caps = build(&Context[Ef, Ev]{exec: c.exec, steps: steps, events: evs})
	return c
}

// Serial returns the serial number assigned to this core.
func (c *Core[Ef, Ev, M, Caps]) Serial() Serial {
	return c.serial
}

// Model returns the application model. Only read it between calls into
// the core.
func (c *Core[Ef, Ev, M, Caps]) Model() *M {
	return &c.model
}

// Pending returns the number of outstanding requests.
func (c *Core[Ef, Ev, M, Caps]) Pending() int {
	return len(c.exec.pending)
}

// ProcessEvent runs the update function with ev and returns every effect
// requested as a result, including effects of events fed back by tasks.
func (c *Core[Ef, Ev, M, Caps]) ProcessEvent(ev Ev) []Ef {
	c.update(ev)
	return c.settle()
}

// Resolve supplies the response to an outstanding request and returns the
// effects that follow from it.
//
// A single-shot request is invalidated by its first resolution; resolving
// it again returns ErrRequestResolved and changes nothing. A streaming
// request accepts one response per item until closed, then returns
// ErrRequestClosed.
func (c *Core[Ef, Ev, M, Caps]) Resolve(req Resolvable, response any) ([]Ef, error) {
	if req.owner() != c.exec {
		return nil, fmt.Errorf("%w: %s", ErrForeignRequest, req.ID())
	}
	if ce := Logger().Check(zap.DebugLevel, "resolve"); ce != nil {
		ce.Write(zap.Uint32("core", c.serial), zap.Stringer("request", req.ID()), zap.Stringer("kind", req.Kind()))
	}
	if err := req.resolve(response); err != nil {
		return nil, err
	}
	return c.settle(), nil
}

// ResolveID resolves the outstanding request with the given ID.
//
// Only outstanding requests can be found by ID. Once a single-shot request
// is resolved, or any request is closed, its ID is forgotten and ResolveID
// returns ErrUnknownRequest where Resolve would return ErrRequestResolved
// or ErrRequestClosed.
func (c *Core[Ef, Ev, M, Caps]) ResolveID(id uuid.UUID, response any) ([]Ef, error) {
	req, ok := c.exec.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRequest, id)
	}
	return c.Resolve(req, response)
}

// Abandon gives up on an outstanding request. The task waiting on it is
// dropped and every other request it owns is closed.
func (c *Core[Ef, Ev, M, Caps]) Abandon(req Resolvable) error {
	if req.owner() != c.exec {
		return fmt.Errorf("%w: %s", ErrForeignRequest, req.ID())
	}
	if err := req.stateErr(); err != nil {
		return err
	}
	c.exec.abandon(req.owningTask())
	return nil
}

// End reports that the shell will deliver no further responses to req.
//
// A streaming request is closed after its buffered items; the task
// consuming it sees the end of the stream and runs on, so the application
// can learn about it. A single-shot request can never be answered, so its
// task is abandoned as by Abandon.
func (c *Core[Ef, Ev, M, Caps]) End(req Resolvable) ([]Ef, error) {
	if req.owner() != c.exec {
		return nil, fmt.Errorf("%w: %s", ErrForeignRequest, req.ID())
	}
	if err := req.stateErr(); err != nil {
		return nil, err
	}
	if ce := Logger().Check(zap.DebugLevel, "end"); ce != nil {
		ce.Write(zap.Uint32("core", c.serial), zap.Stringer("request", req.ID()), zap.Stringer("kind", req.Kind()))
	}
	if req.Kind() == StepOnce {
		c.exec.abandon(req.owningTask())
		return nil, nil
	}
	req.finish()
	return c.settle(), nil
}

// Close discards the core's queues. Any capability delivering afterwards
// panics.
func (c *Core[Ef, Ev, M, Caps]) Close() {
	c.exec.shutdown()
	c.effects.Close()
	c.events.Close()
}

func (c *Core[Ef, Ev, M, Caps]) update(ev Ev) {
	if ce := Logger().Check(zap.DebugLevel, "event"); ce != nil {
		ce.Write(zap.Uint32("core", c.serial), zap.Any("event", ev))
	}
	c.app.Update(ev, &c.model, c.caps)
}

// settle runs tasks and feeds their events back into the update function
// until nothing is left to do, then drains the effect queue.
func (c *Core[Ef, Ev, M, Caps]) settle() []Ef {
	for {
		c.exec.runUntilStalled()
		updated := false
		for ev := range c.events.Drain() {
			c.update(ev)
			updated = true
		}
		if !updated {
			break
		}
	}
	var effects []Ef
	for step := range c.effects.Drain() {
		if ce := Logger().Check(zap.DebugLevel, "effect"); ce != nil {
			ce.Write(zap.Uint32("core", c.serial), zap.Stringer("kind", step.Kind()), zap.Any("effect", step.Payload()))
		}
		effects = append(effects, step.Payload())
	}
	return effects
}
