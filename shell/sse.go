// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shell

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"code.hybscloud.com/capa"
	"code.hybscloud.com/capa/sse"
	"go.uber.org/zap"
)

// SSEExecutor opens server-sent-event streams with net/http.
type SSEExecutor struct {
	client *http.Client
}

// NewSSEExecutor creates an executor. Streams have no overall timeout; they
// end with the server, an error or ctx.
func NewSSEExecutor() *SSEExecutor {
	return &SSEExecutor{client: &http.Client{}}
}

// Stream opens op and calls emit for every received event until the stream
// ends. A clean end of stream returns nil.
func (x *SSEExecutor) Stream(ctx context.Context, op sse.Operation, emit func(sse.Event)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, op.URL, nil)
	if err != nil {
		return fmt.Errorf("build stream request %s: %w", op.URL, err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	resp, err := x.client.Do(req)
	if err != nil {
		return fmt.Errorf("open stream %s: %w", op.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("open stream %s: status %d", op.URL, resp.StatusCode)
	}
	return ReadEvents(resp.Body, emit)
}

// ReadEvents parses the text/event-stream format from r and calls emit for
// every dispatched event. Comments and unknown fields are ignored.
func ReadEvents(r io.Reader, emit func(sse.Event)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	var (
		ev      sse.Event
		data    bytes.Buffer
		hasData bool
	)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			if hasData {
				ev.Data = bytes.Clone(data.Bytes())
				emit(ev)
			}
			ev = sse.Event{ID: ev.ID}
			data.Reset()
			hasData = false
			continue
		}
		if line[0] == ':' {
			continue
		}
		field, value, _ := bytes.Cut(line, []byte{':'})
		value = bytes.TrimPrefix(value, []byte{' '})
		switch string(field) {
		case "data":
			if hasData {
				data.WriteByte('\n')
			}
			data.Write(value)
			hasData = true
		case "event":
			ev.Type = string(value)
		case "id":
			ev.ID = string(value)
		}
	}
	return sc.Err()
}

// GoSSE streams req on its own goroutine, completing it once per event
// and ending it when the stream stops.
func GoSSE(ctx context.Context, c Completer, x *SSEExecutor, req *sse.Request) {
	op := req.Operation
	go func() {
		defer c.End(req)
		if err := x.Stream(ctx, op, func(e sse.Event) { c.Complete(req, e) }); err != nil && ctx.Err() == nil {
			capa.Logger().Named("shell").Debug("stream ended", zap.String("url", op.URL), zap.Error(err))
		}
	}()
}
