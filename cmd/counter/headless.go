// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"code.hybscloud.com/capa/internal/config"
	"code.hybscloud.com/capa/internal/counter"
	"code.hybscloud.com/capa/shell"
)

// dispatcher performs counter effects. render is called on the core
// goroutine for every render effect.
func dispatcher(cfg config.Config, render func()) shell.Dispatcher[counter.Effect] {
	hx := shell.NewHTTPExecutor(cfg.Server.Timeout)
	sx := shell.NewSSEExecutor()
	return func(ctx context.Context, ef counter.Effect, c shell.Completer) {
		switch {
		case ef.Render != nil:
			render()
		case ef.HTTP != nil:
			shell.GoHTTP(ctx, c, hx, ef.HTTP)
		case ef.SSE != nil:
			shell.GoSSE(ctx, c, sx, ef.SSE)
		}
	}
}

// runHeadless sends evs, printing the view whenever it changes. It returns
// once all requests are settled, or runs until ctx is done when watching.
func runHeadless(ctx context.Context, cfg config.Config, format counter.Formatter, evs []counter.Event, w io.Writer) error {
	if len(evs) == 0 {
		evs = []counter.Event{counter.Get{}}
	}

	core := counter.NewCore(cfg.Server.URL)
	defer core.Close()

	last := ""
	render := func() {
		vm := format.View(core.Model())
		line := vm.Text
		if vm.Error != "" {
			line += " error: " + vm.Error
		}
		if line == last {
			return
		}
		last = line
		fmt.Fprintln(w, line)
	}

	sh := shell.New[counter.Effect, counter.Event](core, dispatcher(cfg, render))
	for _, ev := range evs {
		sh.Send(ev)
	}
	if cfg.UI.Watch {
		sh.Send(counter.Watch{})
		return sh.Run(ctx)
	}
	return sh.RunUntilIdle(ctx)
}
