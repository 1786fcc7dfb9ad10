// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package http provides the HTTP capability: single-shot requests whose
// responses are delivered back to the application as events.
//
// The capability only describes requests. A shell performs them and
// resolves each with a [Result].
package http

import (
	"fmt"

	"code.hybscloud.com/capa"
	"code.hybscloud.com/kont"
)

// Method names used by the capability.
const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

// Operation describes one HTTP request for the shell to perform.
type Operation struct {
	Method string
	URL    string
	Header map[string]string
	Body   []byte
}

func (o Operation) String() string {
	return fmt.Sprintf("%s %s", o.Method, o.URL)
}

// Response is the outcome of a performed request.
type Response struct {
	Status int
	Header map[string]string
	Body   []byte
}

// OK reports whether Status is 2xx.
func (r Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Result is what the shell resolves a request with: Left(err) when the
// request could not be performed, Right(response) otherwise.
type Result = kont.Either[error, Response]

// Request is the effect payload delivered to the shell.
type Request = capa.Request[Operation, Result]

// HTTP is the HTTP capability.
type HTTP[Ev any] struct {
	ctx *capa.Context[*Request, Ev]
}

// New creates an HTTP capability on ctx.
func New[Ev any](ctx *capa.Context[*Request, Ev]) *HTTP[Ev] {
	return &HTTP[Ev]{ctx: ctx}
}

// Context implements capa.Capability.
func (h *HTTP[Ev]) Context() *capa.Context[*Request, Ev] {
	return h.ctx
}

// Get requests url and feeds callback(result) to the application.
func (h *HTTP[Ev]) Get(url string, callback func(Result) Ev) {
	h.Send(Operation{Method: MethodGet, URL: url}, callback)
}

// Post sends body to url and feeds callback(result) to the application.
func (h *HTTP[Ev]) Post(url string, body []byte, callback func(Result) Ev) {
	h.Send(Operation{Method: MethodPost, URL: url, Body: body}, callback)
}

// Send performs op and feeds callback(result) to the application.
func (h *HTTP[Ev]) Send(op Operation, callback func(Result) Ev) {
	h.ctx.Spawn(capa.AwaitUpdate(h.ctx, op, callback))
}

// MapEvent returns the same capability for a component whose events are
// projected into Ev by f.
func MapEvent[Ev, NewEv any](h *HTTP[Ev], f func(NewEv) Ev) *HTTP[NewEv] {
	return capa.Remap(h, f, New[NewEv])
}

// Ok resolves a request with a successful response.
func Ok(resp Response) Result {
	return kont.Right[error](resp)
}

// Fail resolves a request with an error.
func Fail(err error) Result {
	return kont.Left[error, Response](err)
}
