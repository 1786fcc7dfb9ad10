// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package capa provides a capability/effect runtime that connects pure,
// synchronous application logic to asynchronous platform operations via
// algebraic effects on [code.hybscloud.com/kont].
//
// An application is an [App] whose Update function mutates its model and
// asks capabilities for side effects. Capabilities spawn cooperative tasks
// that deliver [Step] values into the core's effect queue and, for
// request-style effects, suspend until the shell resolves them.
//
// # Architecture
//
//   - Transport: [Channel] is an unbounded multi-producer single-consumer link built from
//     lock-free SPSC ring segments of [code.hybscloud.com/lfq]. [MapInput] and [MapEffect]
//     derive senders speaking other types.
//   - Tasks: kont computations stepped one effect at a time by a single-threaded executor.
//     A task suspends only on a request; everything else resumes immediately.
//   - Core: [Core.ProcessEvent] and [Core.Resolve] are the only entry points of a shell.
//     Both return the effects to perform.
//   - Composition: [MapEvent], [MapOperation] and [Remap] let nested components reuse
//     capabilities under their own event and effect types.
//
// # API Topologies
//
//   - Task operations: [Context.Advance], [Context.UpdateApp], [Await], [Subscribe].
//   - Fused: [AwaitBind], [AwaitUpdate], [SubscribeUpdate], [AdvanceThen], [UpdateThen].
//   - Expr-world: [ExprAdvance], [ExprUpdateApp], [ExprAwait]. Bridge via [Reify] and [Reflect].
//   - Recursive: [Loop] and [Repeat] for long-running tasks.
//
// # Resolve Policy
//
// A single-shot request is invalidated by its first resolution: a second
// [Core.Resolve] returns [ErrRequestResolved] and has no effect. A streaming
// request accepts one resolution per item until its task closes it, after
// which [ErrRequestClosed] is returned. Sending on a channel whose receiver
// was closed panics: it can only happen through a structural bug.
//
// # Example
//
//	type Effect struct{ Render *render.Operation }
//	core := capa.NewCore[Effect, Event, Model](app, func(root *capa.Context[Effect, Event]) Caps {
//		return Caps{Render: render.New(capa.MapOperation(root, func(op render.Operation) Effect {
//			return Effect{Render: &op}
//		}))}
//	})
//	for _, ef := range core.ProcessEvent(Increment{}) {
//		// dispatch ef to the platform
//	}
package capa
