// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"code.hybscloud.com/capa/internal/counter"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// scriptEvents runs a starlark script whose builtins queue counter
// events, e.g.
//
//	for i in range(3):
//	    inc()
//	dec(n = 2)
//	get()
//
// src is passed to starlark as is; nil reads filename.
func scriptEvents(filename string, src any) ([]counter.Event, error) {
	var evs []counter.Event
	repeated := func(name string, ev counter.Event) *starlark.Builtin {
		return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			n := 1
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "n?", &n); err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, fmt.Errorf("%s: negative count %d", b.Name(), n)
			}
			for range n {
				evs = append(evs, ev)
			}
			return starlark.None, nil
		})
	}
	pred := starlark.StringDict{
		"get":   repeated("get", counter.Get{}),
		"inc":   repeated("inc", counter.Increment{}),
		"dec":   repeated("dec", counter.Decrement{}),
		"watch": repeated("watch", counter.Watch{}),
	}

	thread := starlark.Thread{Name: filename}
	opts := syntax.FileOptions{TopLevelControl: true}
	if _, err := starlark.ExecFileOptions(&opts, &thread, filename, src, pred); err != nil {
		return nil, fmt.Errorf("script %s: %w", filename, err)
	}
	return evs, nil
}
