package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gosuri/uilive"

	"cellsociety/internal/core"
	"cellsociety/internal/render"
	"cellsociety/internal/ui"
)

// Headless runs a rule in the terminal, redrawing each frame in place.
type Headless struct {
	logic    core.Logic
	term     *render.Terminal
	controls *ui.Controls
	timer    *core.FixedStep
	ticks    int
}

// NewHeadless prepares a terminal runner for l.
func NewHeadless(l core.Logic, cfg Config) *Headless {
	return &Headless{
		logic:    l,
		term:     render.NewTerminal(l.States(), !cfg.NoColor),
		controls: ui.NewControls(l),
		timer:    core.NewFixedStep(cfg.TPS),
	}
}

// Ticks returns how many steps the runner has taken.
func (h *Headless) Ticks() int { return h.ticks }

// Frame writes the grid, the status line and the current parameters to w.
func (h *Headless) Frame(w io.Writer) error {
	if err := h.term.Render(w, h.logic.Grid().Snapshot(), h.ticks); err != nil {
		return err
	}
	h.controls.Refresh()
	var b strings.Builder
	for _, line := range h.controls.Lines() {
		fmt.Fprintf(&b, "%s=%s  ", line.Label, line.Value)
	}
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Run steps the rule at the configured rate until ctx is done or, when
// steps > 0, that many ticks have run.
func (h *Headless) Run(ctx context.Context, out io.Writer, steps int) error {
	writer := uilive.New()
	writer.Out = out
	writer.Start()
	defer writer.Stop()

	if err := h.Frame(writer); err != nil {
		return err
	}
	ticker := time.NewTicker(h.timer.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		for n := h.timer.Due(); n > 0; n-- {
			h.logic.Step()
			h.ticks++
			if steps > 0 && h.ticks >= steps {
				break
			}
		}
		if err := h.Frame(writer); err != nil {
			return err
		}
		if steps > 0 && h.ticks >= steps {
			return nil
		}
	}
}
