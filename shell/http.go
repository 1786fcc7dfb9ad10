// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	caphttp "code.hybscloud.com/capa/http"
)

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 30 * time.Second

// HTTPExecutor performs HTTP capability requests with net/http.
type HTTPExecutor struct {
	client *http.Client
}

// NewHTTPExecutor creates an executor whose requests time out after timeout.
// A non-positive timeout selects DefaultTimeout.
func NewHTTPExecutor(timeout time.Duration) *HTTPExecutor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPExecutor{client: &http.Client{Timeout: timeout}}
}

// Do performs op. Transport failures are returned as Left; any HTTP status
// is a Right response.
func (x *HTTPExecutor) Do(ctx context.Context, op caphttp.Operation) caphttp.Result {
	var body io.Reader
	if len(op.Body) > 0 {
		body = bytes.NewReader(op.Body)
	}
	req, err := http.NewRequestWithContext(ctx, op.Method, op.URL, body)
	if err != nil {
		return caphttp.Fail(fmt.Errorf("build request %s: %w", op, err))
	}
	for k, v := range op.Header {
		req.Header.Set(k, v)
	}
	resp, err := x.client.Do(req)
	if err != nil {
		return caphttp.Fail(fmt.Errorf("perform %s: %w", op, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return caphttp.Fail(fmt.Errorf("read body %s: %w", op, err))
	}
	header := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		header[k] = resp.Header.Get(k)
	}
	return caphttp.Ok(caphttp.Response{Status: resp.StatusCode, Header: header, Body: data})
}

// GoHTTP performs req on its own goroutine and completes it through c.
func GoHTTP(ctx context.Context, c Completer, x *HTTPExecutor, req *caphttp.Request) {
	op := req.Operation
	go func() {
		c.Complete(req, x.Do(ctx, op))
	}()
}
