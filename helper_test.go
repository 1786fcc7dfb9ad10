// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa_test

import (
	"testing"

	"code.hybscloud.com/capa"
	"code.hybscloud.com/kont"
)

// fetchReq is a request answered with an int.
type fetchReq = capa.Request[string, int]

// testEffect is the effect type of the test application.
// Exactly one field is set.
type testEffect struct {
	Note  string
	Fetch *fetchReq
}

type testEvent struct {
	name string
	n    int
}

type testModel struct {
	log   []string
	total int
}

// fetcher is a minimal request capability.
type fetcher[Ev any] struct {
	ctx *capa.Context[*fetchReq, Ev]
}

func newFetcher[Ev any](ctx *capa.Context[*fetchReq, Ev]) *fetcher[Ev] {
	return &fetcher[Ev]{ctx: ctx}
}

func (f *fetcher[Ev]) Context() *capa.Context[*fetchReq, Ev] {
	return f.ctx
}

func (f *fetcher[Ev]) fetch(key string, callback func(int) Ev) {
	f.ctx.Spawn(capa.AwaitUpdate(f.ctx, key, callback))
}

type testCaps struct {
	note  *capa.Context[string, testEvent]
	fetch *fetcher[testEvent]
}

// appFunc adapts a function to capa.App.
type appFunc func(ev testEvent, m *testModel, caps testCaps)

func (f appFunc) Update(ev testEvent, m *testModel, caps testCaps) {
	f(ev, m, caps)
}

type testCore = capa.Core[testEffect, testEvent, testModel, testCaps]

func buildCaps(root *capa.Context[testEffect, testEvent]) testCaps {
	return testCaps{
		note: capa.MapOperation(root, func(s string) testEffect {
			return testEffect{Note: s}
		}),
		fetch: newFetcher(capa.MapOperation(root, func(r *fetchReq) testEffect {
			return testEffect{Fetch: r}
		})),
	}
}

func newTestCore(t testing.TB, f appFunc) *testCore {
	t.Helper()
	c := capa.NewCore[testEffect, testEvent, testModel](f, buildCaps)
	t.Cleanup(c.Close)
	return c
}

// got records every event in the model log and sums n into total.
func got(ev testEvent, m *testModel) {
	m.log = append(m.log, ev.name)
	m.total += ev.n
}

func gotEvent(n int) testEvent {
	return testEvent{name: "got", n: n}
}

// notes extracts the Note payloads of effects.
func notes(effects []testEffect) []string {
	out := make([]string, 0, len(effects))
	for _, ef := range effects {
		if ef.Fetch == nil {
			out = append(out, ef.Note)
		}
	}
	return out
}

// fetches extracts the request payloads of effects.
func fetches(effects []testEffect) []*fetchReq {
	var out []*fetchReq
	for _, ef := range effects {
		if ef.Fetch != nil {
			out = append(out, ef.Fetch)
		}
	}
	return out
}

// pureInt runs an effect-free computation.
func pureInt(m kont.Eff[int]) int {
	return kont.RunPure(capa.Reify(m))
}
