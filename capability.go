// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

// Capability is implemented by every capability instance: it exposes the
// context it was constructed with.
type Capability[Op, Ev any] interface {
	Context() *Context[Op, Ev]
}

// Remap rebuilds capability c for a sub-component whose events are
// projected into Ev by f. build is the capability's own constructor, so the
// result is structurally identical to c, only speaking NewEv.
func Remap[Op, Ev, NewEv any, C any](c Capability[Op, Ev], f func(NewEv) Ev, build func(*Context[Op, NewEv]) C) C {
	return build(MapEvent(c.Context(), f))
}
