// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"strings"

	"code.hybscloud.com/capa"
	"code.hybscloud.com/capa/internal/config"
	"code.hybscloud.com/capa/internal/counter"
	"code.hybscloud.com/capa/shell"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	confirmedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type keyMap struct {
	Inc   key.Binding
	Dec   key.Binding
	Get   key.Binding
	Watch key.Binding
	Quit  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Inc:   key.NewBinding(key.WithKeys("+", "up", "k"), key.WithHelp("+", "increment")),
		Dec:   key.NewBinding(key.WithKeys("-", "down", "j"), key.WithHelp("-", "decrement")),
		Get:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Watch: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "watch")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type (
	resolveMsg struct {
		req      capa.Resolvable
		response any
	}
	endMsg struct{ req capa.Resolvable }
)

// programCompleter reports completions to the bubbletea program, whose
// Update owns the core.
type programCompleter struct {
	p *tea.Program
}

func (c *programCompleter) Complete(req capa.Resolvable, response any) {
	c.p.Send(resolveMsg{req: req, response: response})
}

func (c *programCompleter) End(req capa.Resolvable) {
	c.p.Send(endMsg{req: req})
}

type tuiModel struct {
	ctx      context.Context
	core     *counter.Core
	dispatch shell.Dispatcher[counter.Effect]
	done     *programCompleter
	keys     keyMap
	format   counter.Formatter
	spinner  spinner.Model
	watch    bool
	url      string
	quitting bool
}

func newTUIModel(ctx context.Context, cfg config.Config, format counter.Formatter, done *programCompleter) *tuiModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = pendingStyle
	return &tuiModel{
		ctx:      ctx,
		core:     counter.NewCore(cfg.Server.URL),
		dispatch: dispatcher(cfg, func() {}),
		done:     done,
		keys:     defaultKeys(),
		format:   format,
		spinner:  sp,
		watch:    cfg.UI.Watch,
		url:      cfg.Server.URL,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, sendEvent(counter.Get{})}
	if m.watch {
		cmds = append(cmds, sendEvent(counter.Watch{}))
	}
	return tea.Batch(cmds...)
}

func sendEvent(ev counter.Event) tea.Cmd {
	return func() tea.Msg { return ev }
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Inc):
			m.perform(m.core.ProcessEvent(counter.Increment{}))
		case key.Matches(msg, m.keys.Dec):
			m.perform(m.core.ProcessEvent(counter.Decrement{}))
		case key.Matches(msg, m.keys.Get):
			m.perform(m.core.ProcessEvent(counter.Get{}))
		case key.Matches(msg, m.keys.Watch):
			m.perform(m.core.ProcessEvent(counter.Watch{}))
		}
	case counter.Event:
		m.perform(m.core.ProcessEvent(msg))
	case resolveMsg:
		effects, err := m.core.Resolve(msg.req, msg.response)
		if err != nil {
			capa.Logger().Warn("resolve rejected", zap.Stringer("request", msg.req.ID()), zap.Error(err))
			break
		}
		m.perform(effects)
	case endMsg:
		if msg.req.Done() {
			break
		}
		effects, err := m.core.End(msg.req)
		if err != nil {
			capa.Logger().Warn("end rejected", zap.Stringer("request", msg.req.ID()), zap.Error(err))
			break
		}
		m.perform(effects)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *tuiModel) perform(effects []counter.Effect) {
	for _, ef := range effects {
		m.dispatch(m.ctx, ef, m.done)
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("counter"))
	b.WriteString(" ")
	b.WriteString(helpStyle.Render(m.url))
	b.WriteString("\n\n")

	model := m.core.Model()
	vm := m.format.View(model)
	if vm.Confirmed {
		b.WriteString(confirmedStyle.Render(vm.Text))
	} else {
		b.WriteString(m.spinner.View())
		b.WriteString(pendingStyle.Render(vm.Text))
	}
	if model.Watching {
		b.WriteString(helpStyle.Render("  (watching)"))
	}
	b.WriteString("\n")
	if vm.Error != "" {
		b.WriteString(errorStyle.Render(vm.Error))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := make([]string, 0, 5)
	for _, k := range []key.Binding{m.keys.Inc, m.keys.Dec, m.keys.Get, m.keys.Watch, m.keys.Quit} {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	b.WriteString("\n")
	return b.String()
}

func runTUI(ctx context.Context, cfg config.Config, format counter.Formatter) error {
	done := &programCompleter{}
	m := newTUIModel(ctx, cfg, format, done)
	defer m.core.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	done.p = p
	_, err := p.Run()
	return err
}
