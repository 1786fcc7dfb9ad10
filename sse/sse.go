// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sse provides the server-sent-events capability. A subscription
// is a streaming request: the shell resolves it once per received event
// until the application or the shell ends it.
package sse

import (
	"code.hybscloud.com/capa"
	"code.hybscloud.com/kont"
)

// Operation names the event stream to open.
type Operation struct {
	URL string
}

// Event is one server-sent event.
type Event struct {
	ID   string
	Type string
	Data []byte
}

// Request is the effect payload delivered to the shell.
type Request = capa.Request[Operation, Event]

// SSE is the server-sent-events capability.
type SSE[Ev any] struct {
	ctx *capa.Context[*Request, Ev]
}

// New creates a server-sent-events capability on ctx.
func New[Ev any](ctx *capa.Context[*Request, Ev]) *SSE[Ev] {
	return &SSE[Ev]{ctx: ctx}
}

// Context implements capa.Capability.
func (s *SSE[Ev]) Context() *capa.Context[*Request, Ev] {
	return s.ctx
}

// Subscribe opens url and feeds callback(event) to the application for
// every event received.
func (s *SSE[Ev]) Subscribe(url string, callback func(Event) Ev) {
	s.ctx.Spawn(capa.SubscribeUpdate(s.ctx, Operation{URL: url}, callback))
}

// SubscribeEnd is Subscribe that also feeds end to the application once
// the shell ends the stream. Abandoning the request delivers nothing.
func (s *SSE[Ev]) SubscribeEnd(url string, callback func(Event) Ev, end Ev) {
	s.ctx.Spawn(kont.Then(capa.SubscribeUpdate(s.ctx, Operation{URL: url}, callback), s.ctx.UpdateApp(end)))
}

// SubscribeWhile opens url and feeds callback(event) to the application
// while keep reports true. The stream is closed on the first event keep
// rejects; that event is not delivered.
func (s *SSE[Ev]) SubscribeWhile(url string, keep func(Event) bool, callback func(Event) Ev) {
	s.ctx.Spawn(capa.Subscribe(s.ctx, Operation{URL: url}, func(e Event) kont.Eff[bool] {
		if !keep(e) {
			return kont.Pure(false)
		}
		return kont.Then(s.ctx.UpdateApp(callback(e)), kont.Pure(true))
	}))
}

// MapEvent returns the same capability for a component whose events are
// projected into Ev by f.
func MapEvent[Ev, NewEv any](s *SSE[Ev], f func(NewEv) Ev) *SSE[NewEv] {
	return capa.Remap(s, f, New[NewEv])
}
