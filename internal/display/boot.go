package display

import (
	"context"
	"fmt"
	"io"
	"time"
)

// TypeDelay is the pause between characters of the boot sequence
const TypeDelay = 15 * time.Millisecond

// BootSequence is typed out when the console starts
var BootSequence = []string{
	"INITIATING HANDSHAKE WITH BROADCAST DEPTH...",
	"ENCRYPTION LAYER SECURED.",
	"CONNECTING TO ZION MAIN FRAME... OK.",
	"OPERATOR CONSOLE v5.1 [OPTIMIZED]",
	" ",
	"Welcome back, Neo.",
	"Type 'help' for a list of available programs.",
	"Awaiting command...",
}

// Boot types BootSequence in the system style, one character every delay.
// It stops early, returning ctx.Err(), when ctx is cancelled.
func (c *Console) Boot(ctx context.Context, delay time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	style := c.lg.NewStyle().Foreground(c.theme.Primary)
	return typeLines(ctx, c.out, BootSequence, delay, func(s string) string {
		return style.Render(s)
	})
}

func typeLines(ctx context.Context, w io.Writer, lines []string, delay time.Duration, paint func(string) string) error {
	var timer *time.Timer
	if delay > 0 {
		timer = time.NewTimer(delay)
		defer timer.Stop()
	}

	for _, line := range lines {
		for _, r := range line {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := io.WriteString(w, paint(string(r))); err != nil {
				return err
			}
			if timer == nil {
				continue
			}
			timer.Reset(delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
