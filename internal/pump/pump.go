// Package pump drives steady-state emission: it produces one cycle
// per interval, either freshly generated or replayed from a captured
// log, and writes it to a transport until shutdown.
package pump

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"nmea-simulator/internal/nmea"
	"nmea-simulator/internal/transport"
)

// Pump generates live cycles. A write failure is terminal: the error
// is returned and no retry is attempted.
type Pump struct {
	Transport transport.Transport
	Generator *nmea.Generator
	Interval  time.Duration
	Log       *logrus.Logger
	OnCycle   func(string) // optional hook, called after each successful write
}

// Run emits cycles until ctx is cancelled. Shutdown latency is
// bounded by one interval plus one in-flight write.
func (p *Pump) Run(ctx context.Context) error {
	for {
		cycle := p.Generator.Cycle(time.Now())
		if err := p.Transport.Write([]byte(cycle)); err != nil {
			return fmt.Errorf("write cycle: %w", err)
		}
		p.Log.Infof("sent to %s:\n%s", p.Transport, strings.TrimRight(cycle, "\r\n"))
		if p.OnCycle != nil {
			p.OnCycle(cycle)
		}
		if !sleep(ctx, p.Interval) {
			return nil
		}
	}
}

// sleep waits for d, returning false if ctx was cancelled first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
