// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"testing"

	caphttp "code.hybscloud.com/capa/http"
	"code.hybscloud.com/capa/internal/config"
	"code.hybscloud.com/capa/internal/counter"
	"code.hybscloud.com/capa/shell"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRecordingTUI returns a model whose effects are recorded, not performed.
func newRecordingTUI(t *testing.T) (*tuiModel, *[]counter.Effect) {
	t.Helper()
	cfg := config.Config{Server: config.ServerConfig{URL: "https://counter.test"}}
	m := newTUIModel(context.Background(), cfg, counter.NewFormatter(), &programCompleter{})
	t.Cleanup(m.core.Close)
	var effects []counter.Effect
	m.dispatch = func(_ context.Context, ef counter.Effect, _ shell.Completer) {
		effects = append(effects, ef)
	}
	return m, &effects
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func httpRequests(effects []counter.Effect) []*caphttp.Request {
	var reqs []*caphttp.Request
	for _, ef := range effects {
		if ef.HTTP != nil {
			reqs = append(reqs, ef.HTTP)
		}
	}
	return reqs
}

func TestTUICompletionAfterQuit(t *testing.T) {
	m, effects := newRecordingTUI(t)

	m.Update(keyPress("+"))
	reqs := httpRequests(*effects)
	require.Len(t, reqs, 1)

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	ok := caphttp.Ok(caphttp.Response{Status: 200, Body: []byte(`{"value":5,"updated_at":0}`)})
	assert.NotPanics(t, func() {
		m.Update(resolveMsg{req: reqs[0], response: ok})
		m.Update(endMsg{req: reqs[0]})
	})
	assert.Equal(t, 1, m.core.Model().Count)
	assert.False(t, reqs[0].Done())
}

func TestTUIResolve(t *testing.T) {
	m, effects := newRecordingTUI(t)

	m.Update(keyPress("+"))
	reqs := httpRequests(*effects)
	require.Len(t, reqs, 1)

	ok := caphttp.Ok(caphttp.Response{Status: 200, Body: []byte(`{"value":5,"updated_at":0}`)})
	m.Update(resolveMsg{req: reqs[0], response: ok})
	assert.Equal(t, 5, m.core.Model().Count)
	assert.True(t, m.core.Model().Confirmed)
	assert.Contains(t, m.View(), "5 (updated")
}

func TestTUIStreamEnd(t *testing.T) {
	m, effects := newRecordingTUI(t)

	m.Update(counter.Watch{})
	require.Len(t, *effects, 1)
	sub := (*effects)[0].SSE
	require.NotNil(t, sub)
	assert.Contains(t, m.View(), "(watching)")

	m.Update(endMsg{req: sub})
	assert.False(t, m.core.Model().Watching)
	assert.NotContains(t, m.View(), "(watching)")

	*effects = nil
	m.Update(keyPress("w"))
	require.Len(t, *effects, 1)
	assert.NotNil(t, (*effects)[0].SSE)
}
