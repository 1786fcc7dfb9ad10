// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command counter runs the counter example against a remote server, either
// as a terminal UI or, when stdout is not a terminal or -headless is given,
// as a line-oriented shell.
//
// Usage:
//
//	counter [-url base] [-headless] [-watch] [get|inc|dec ...]
//	counter -script session.star
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"code.hybscloud.com/capa"
	"code.hybscloud.com/capa/internal/config"
	"code.hybscloud.com/capa/internal/counter"
	"github.com/agnivade/levenshtein"
	"github.com/jeandeaual/go-locale"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var commands = []string{"get", "inc", "dec", "watch"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var (
		url      = flag.String("url", cfg.Server.URL, "Counter server base URL")
		headless = flag.Bool("headless", cfg.UI.Headless, "Run without the terminal UI")
		watch    = flag.Bool("watch", cfg.UI.Watch, "Subscribe to server-side changes")
		script   = flag.String("script", "", "Starlark script producing headless commands")
	)
	flag.Parse()
	cfg.Server.URL = *url
	cfg.UI.Headless = *headless || *script != "" || !term.IsTerminal(int(os.Stdout.Fd()))
	cfg.UI.Watch = *watch

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	capa.SetLogger(log)

	locales, err := locale.GetLocales()
	if err != nil {
		log.Debug("locale detection failed", zap.Error(err))
	}
	format := counter.NewFormatter(locales...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.UI.Headless {
		var evs []counter.Event
		if *script != "" {
			evs, err = scriptEvents(*script, nil)
		} else {
			evs, err = events(flag.Args())
		}
		if err == nil {
			err = runHeadless(ctx, cfg, format, evs, os.Stdout)
		}
	} else {
		err = runTUI(ctx, cfg, format)
	}
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. The terminal UI owns the screen, so
// without a log file it logs nowhere.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	if !cfg.UI.Headless && cfg.Log.File == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	if cfg.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}
	zc.Level = level
	if cfg.Log.File != "" {
		zc.OutputPaths = []string{cfg.Log.File}
		zc.ErrorOutputPaths = []string{cfg.Log.File}
	} else {
		zc.OutputPaths = []string{"stderr"}
	}
	return zc.Build()
}

// events maps command-line words to counter events.
func events(args []string) ([]counter.Event, error) {
	evs := make([]counter.Event, 0, len(args))
	for _, a := range args {
		switch a {
		case "get":
			evs = append(evs, counter.Get{})
		case "inc", "+":
			evs = append(evs, counter.Increment{})
		case "dec", "-":
			evs = append(evs, counter.Decrement{})
		case "watch":
			evs = append(evs, counter.Watch{})
		default:
			if s := suggest(a); s != "" {
				return nil, fmt.Errorf("unknown command %q, did you mean %q?", a, s)
			}
			return nil, fmt.Errorf("unknown command %q", a)
		}
	}
	return evs, nil
}

// suggest returns the command closest to word, if any is close enough.
func suggest(word string) string {
	best, bestDist := "", 3
	for _, c := range commands {
		if d := levenshtein.ComputeDistance(word, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
