// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shell drives a capa core outside of any UI framework.
//
// A [Shell] owns the core's goroutine: events from other goroutines and
// completions of I/O performed by effect handlers are queued on a capa
// channel and fed to the core in arrival order. When nothing is queued
// the loop idles with adaptive backoff (iox.Backoff).
package shell

import (
	"context"

	"code.hybscloud.com/capa"
	"code.hybscloud.com/iox"
	"go.uber.org/zap"
)

// Driver is the part of a capa core a shell needs.
type Driver[Ef, Ev any] interface {
	ProcessEvent(ev Ev) []Ef
	Resolve(req capa.Resolvable, response any) ([]Ef, error)
	End(req capa.Resolvable) ([]Ef, error)
	Pending() int
}

// Completer accepts results of effects performed off the core goroutine.
// Implementations must be safe for concurrent use.
type Completer interface {
	// Complete resolves req with response.
	Complete(req capa.Resolvable, response any)
	// End reports that no further responses for req will arrive.
	End(req capa.Resolvable)
}

// Dispatcher performs one effect. It must not block: long-running work is
// started on its own goroutine and reported through c.
type Dispatcher[Ef any] func(ctx context.Context, effect Ef, c Completer)

type messageKind uint8

const (
	messageEvent messageKind = iota
	messageResponse
	messageEnd
)

type message[Ev any] struct {
	event    Ev
	req      capa.Resolvable
	response any
	kind     messageKind
}

// Shell feeds events and completions to a core on a single goroutine.
type Shell[Ef, Ev any] struct {
	core     Driver[Ef, Ev]
	dispatch Dispatcher[Ef]
	inbox    capa.Sender[message[Ev]]
	rx       *capa.Receiver[message[Ev]]
	log      *zap.Logger
}

// New creates a shell for core. dispatch is called for every effect the
// core returns.
func New[Ef, Ev any](core Driver[Ef, Ev], dispatch Dispatcher[Ef]) *Shell[Ef, Ev] {
	inbox, rx := capa.Channel[message[Ev]]()
	return &Shell[Ef, Ev]{
		core:     core,
		dispatch: dispatch,
		inbox:    inbox,
		rx:       rx,
		log:      capa.Logger().Named("shell"),
	}
}

// Send queues an event for the core. Safe from any goroutine.
func (s *Shell[Ef, Ev]) Send(ev Ev) {
	s.inbox.Send(message[Ev]{event: ev, kind: messageEvent})
}

// Complete implements Completer.
func (s *Shell[Ef, Ev]) Complete(req capa.Resolvable, response any) {
	s.inbox.Send(message[Ev]{req: req, response: response, kind: messageResponse})
}

// End implements Completer.
func (s *Shell[Ef, Ev]) End(req capa.Resolvable) {
	s.inbox.Send(message[Ev]{req: req, kind: messageEnd})
}

// Run processes queued messages until ctx is done.
func (s *Shell[Ef, Ev]) Run(ctx context.Context) error {
	return s.run(ctx, false)
}

// RunUntilIdle processes queued messages until no request is outstanding
// and nothing is queued, or ctx is done.
func (s *Shell[Ef, Ev]) RunUntilIdle(ctx context.Context) error {
	return s.run(ctx, true)
}

func (s *Shell[Ef, Ev]) run(ctx context.Context, untilIdle bool) error {
	var bo iox.Backoff
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.step(ctx) {
			bo.Reset()
			continue
		}
		if untilIdle && s.core.Pending() == 0 {
			return nil
		}
		bo.Wait()
	}
}

// step handles every queued message. Reports whether any was handled.
func (s *Shell[Ef, Ev]) step(ctx context.Context) bool {
	progress := false
	for m := range s.rx.Drain() {
		progress = true
		switch m.kind {
		case messageEvent:
			s.perform(ctx, s.core.ProcessEvent(m.event))
		case messageResponse:
			effects, err := s.core.Resolve(m.req, m.response)
			if err != nil {
				s.log.Warn("resolve rejected", zap.Stringer("request", m.req.ID()), zap.Error(err))
				continue
			}
			s.perform(ctx, effects)
		case messageEnd:
			if m.req.Done() {
				continue
			}
			effects, err := s.core.End(m.req)
			if err != nil {
				s.log.Warn("end rejected", zap.Stringer("request", m.req.ID()), zap.Error(err))
				continue
			}
			s.perform(ctx, effects)
		}
	}
	return progress
}

func (s *Shell[Ef, Ev]) perform(ctx context.Context, effects []Ef) {
	for _, ef := range effects {
		s.dispatch(ctx, ef, s)
	}
}
