// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package render provides the render capability: it asks the shell to
// redraw the user interface from the current view model.
package render

import (
	"code.hybscloud.com/capa"
)

// Operation is the render effect payload. It carries no data.
type Operation struct{}

// Render is the render capability.
type Render[Ev any] struct {
	ctx *capa.Context[Operation, Ev]
}

// New creates a render capability on ctx.
func New[Ev any](ctx *capa.Context[Operation, Ev]) *Render[Ev] {
	return &Render[Ev]{ctx: ctx}
}

// Context implements capa.Capability.
func (r *Render[Ev]) Context() *capa.Context[Operation, Ev] {
	return r.ctx
}

// Render requests a redraw. It delivers exactly one terminal step with an
// empty payload.
func (r *Render[Ev]) Render() {
	r.ctx.Spawn(r.ctx.Advance(capa.Once(Operation{})))
}

// MapEvent returns the same capability for a component whose events are
// projected into Ev by f.
func MapEvent[Ev, NewEv any](r *Render[Ev], f func(NewEv) Ev) *Render[NewEv] {
	return capa.Remap(r, f, New[NewEv])
}
