package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"gofish/chains"
	"gofish/fishing"
	"gofish/input"
	"gofish/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"github.com/urfave/cli/v2"
)

const (
	completionPoll = 100 * time.Millisecond
	livenessEvery  = time.Second
)

var log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "gofish"))

// target resolves the chain and process name selected by the common flags.
func target(c *cli.Context) (process.PointerChain, string, error) {
	table, err := chains.Load(c.String("chains"))
	if err != nil {
		return process.PointerChain{}, "", err
	}
	chain, err := table.Lookup(c.String("game-version"))
	if err != nil {
		return process.PointerChain{}, "", err
	}
	name := c.String("process")
	if name == "" {
		name = chain.Module
	}
	return chain, name, nil
}

func runAction(c *cli.Context) error {
	chain, name, err := target(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	finder := process.NewFinder()
	if c.Bool("wait") {
		log.Infoln("Waiting for", name)
		if _, err := finder.WaitForProcess(ctx, name); err != nil {
			return err
		}
	}

	m := fishing.NewManager(name, chain, finder, openProcess, input.NewMouse())
	m.Timings.Settle = c.Duration("settle")

	h, err := m.StartSession(fishing.Config{
		CastLimit: c.Int("casts"),
		Threshold: uint32(c.Uint("threshold")),
	})
	if err != nil {
		return err
	}

	return supervise(ctx, m, h, finder)
}

// supervise polls the session without blocking on it, stopping it on a signal or when the
// game goes away, and returns once the worker has released the process.
func supervise(ctx context.Context, m *fishing.Manager, h *fishing.Handle, finder *process.Finder) error {
	ticker := time.NewTicker(completionPoll)
	defer ticker.Stop()

	stopping := ctx.Done()
	lastCheck := time.Now()
	for {
		if h.PollCompletion() {
			stats := h.Stats()
			fmt.Printf("casts=%d reels=%d timeouts=%d missed=%d\n", stats.Casts, stats.Reels, stats.Timeouts, stats.ReadFailures)
			return h.Err()
		}

		select {
		case <-stopping:
			log.Infoln("Stopping session", h.ID)
			m.StopSession(h)
			stopping = nil
		case <-ticker.C:
		}

		if time.Since(lastCheck) >= livenessEvery {
			lastCheck = time.Now()
			if !finder.Exists(h.PID) {
				log.Warn("Target process ", h.PID, " is gone, stopping")
				m.StopSession(h)
			}
		}
	}
}
