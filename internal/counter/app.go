// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package counter is an example capa application: a counter shared through
// a remote server, updated optimistically and confirmed by the server
// either in response to a request or through a server-sent-event stream.
package counter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"code.hybscloud.com/capa"
	caphttp "code.hybscloud.com/capa/http"
	"code.hybscloud.com/capa/render"
	"code.hybscloud.com/capa/sse"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Event is an input of the counter application.
type Event interface {
	isEvent()
}

type (
	// Get fetches the current value from the server.
	Get struct{}
	// Increment increments the counter optimistically.
	Increment struct{}
	// Decrement decrements the counter optimistically.
	Decrement struct{}
	// Watch subscribes to server-side changes.
	Watch struct{}
	// Set carries the server's response to Get, Increment or Decrement.
	Set struct{ Result caphttp.Result }
	// Update carries a change pushed by the server.
	Update struct{ Event sse.Event }
	// Unwatched reports that the server closed the change stream.
	Unwatched struct{}
)

func (Get) isEvent()       {}
func (Increment) isEvent() {}
func (Decrement) isEvent() {}
func (Watch) isEvent()     {}
func (Set) isEvent()       {}
func (Update) isEvent()    {}
func (Unwatched) isEvent() {}

// Effect is a request from the application to the shell. Exactly one
// field is set.
type Effect struct {
	Render *render.Operation
	HTTP   *caphttp.Request
	SSE    *sse.Request
}

func (e Effect) String() string {
	switch {
	case e.Render != nil:
		return "render"
	case e.HTTP != nil:
		return "http " + e.HTTP.Operation.String()
	case e.SSE != nil:
		return "sse " + e.SSE.Operation.URL
	}
	return "none"
}

// Capabilities are the capabilities the counter uses.
type Capabilities struct {
	Render *render.Render[Event]
	HTTP   *caphttp.HTTP[Event]
	SSE    *sse.SSE[Event]
}

// NewCapabilities builds the capability set from the core's root context.
func NewCapabilities(root *capa.Context[Effect, Event]) Capabilities {
	return Capabilities{
		Render: render.New(capa.MapOperation(root, func(op render.Operation) Effect {
			return Effect{Render: &op}
		})),
		HTTP: caphttp.New(capa.MapOperation(root, func(req *caphttp.Request) Effect {
			return Effect{HTTP: req}
		})),
		SSE: sse.New(capa.MapOperation(root, func(req *sse.Request) Effect {
			return Effect{SSE: req}
		})),
	}
}

// Model is the state of the counter.
type Model struct {
	Count     int
	UpdatedAt time.Time
	Confirmed bool
	Watching  bool
	Err       error
}

// counterState is the server's representation of the counter.
type counterState struct {
	Value     int   `json:"value"`
	UpdatedAt int64 `json:"updated_at"`
}

// App is the counter application.
type App struct {
	// BaseURL is the server's root, without trailing slash.
	BaseURL string
}

// Update implements capa.App.
func (a App) Update(ev Event, m *Model, caps Capabilities) {
	switch ev := ev.(type) {
	case Get:
		caps.HTTP.Get(a.url("/"), setResult)
	case Increment:
		m.Count++
		m.Confirmed = false
		caps.Render.Render()
		caps.HTTP.Post(a.url("/inc"), nil, setResult)
	case Decrement:
		m.Count--
		m.Confirmed = false
		caps.Render.Render()
		caps.HTTP.Post(a.url("/dec"), nil, setResult)
	case Watch:
		if m.Watching {
			return
		}
		m.Watching = true
		caps.SSE.SubscribeEnd(a.url("/sse"), func(e sse.Event) Event { return Update{Event: e} }, Unwatched{})
	case Set:
		capa.Fold(ev.Result, func(err error) struct{} {
			m.Err = err
			return struct{}{}
		}, func(resp caphttp.Response) struct{} {
			if !resp.OK() {
				m.Err = fmt.Errorf("counter: server returned status %d", resp.Status)
				return struct{}{}
			}
			m.apply(resp.Body)
			return struct{}{}
		})
		caps.Render.Render()
	case Update:
		m.apply(ev.Event.Data)
		caps.Render.Render()
	case Unwatched:
		m.Watching = false
		caps.Render.Render()
	}
}

func (a App) url(path string) string {
	return strings.TrimSuffix(a.BaseURL, "/") + path
}

func setResult(r caphttp.Result) Event {
	return Set{Result: r}
}

// apply takes a server representation as the confirmed value.
func (m *Model) apply(body []byte) {
	var s counterState
	if err := json.Unmarshal(body, &s); err != nil {
		m.Err = fmt.Errorf("counter: decode server state: %w", err)
		return
	}
	m.Count = s.Value
	m.UpdatedAt = time.UnixMilli(s.UpdatedAt).UTC()
	m.Confirmed = true
	m.Err = nil
}

// ViewModel is what a shell renders.
type ViewModel struct {
	Text      string
	Confirmed bool
	Error     string
}

// Formatter renders view models for one locale.
type Formatter struct {
	p *message.Printer
}

var defaultFormatter = NewFormatter()

// NewFormatter creates a formatter for the first well-formed locale, e.g.
// "de-DE". Without one it formats for en-US.
func NewFormatter(locales ...string) Formatter {
	tag := language.AmericanEnglish
	for _, l := range locales {
		if t, err := language.Parse(l); err == nil {
			tag = t
			break
		}
	}
	return Formatter{p: message.NewPrinter(tag)}
}

// View derives the view model from m.
func (f Formatter) View(m *Model) ViewModel {
	vm := ViewModel{Confirmed: m.Confirmed}
	count := f.p.Sprintf("%d", m.Count)
	switch {
	case m.Confirmed && !m.UpdatedAt.IsZero():
		vm.Text = fmt.Sprintf("%s (updated %s)", count, m.UpdatedAt.Format(time.RFC3339))
	case m.Confirmed:
		vm.Text = count
	default:
		vm.Text = count + " (pending)"
	}
	if m.Err != nil {
		vm.Error = m.Err.Error()
	}
	return vm
}

// View derives the en-US view model from m.
func View(m *Model) ViewModel {
	return defaultFormatter.View(m)
}

// Core is a capa core running the counter.
type Core = capa.Core[Effect, Event, Model, Capabilities]

// NewCore creates a core for the counter talking to baseURL.
func NewCore(baseURL string) *Core {
	return capa.NewCore[Effect, Event, Model](App{BaseURL: baseURL}, NewCapabilities)
}
