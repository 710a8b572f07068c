package pump

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"nmea-simulator/internal/transport"
)

// Replayer loops a captured NMEA log, regrouping its lines into
// RMC-delimited cycles and pacing one cycle per interval. Lines are
// rewritten with CRLF terminators regardless of how the source file
// is terminated.
type Replayer struct {
	Path      string
	Transport transport.Transport
	Interval  time.Duration
	Log       *logrus.Logger
	OnCycle   func(string)
}

// rmcTalkers are the talker IDs recognized as cycle boundaries.
var rmcTalkers = map[string]bool{
	"GP": true, "GN": true, "GL": true, "GR": true, "GG": true,
}

// isRMCBoundary reports whether line starts a new cycle: after
// trimming leading whitespace it must read "$??RMC" with a recognized
// talker ID.
func isRMCBoundary(line string) bool {
	s := strings.TrimLeft(line, " \t")
	if len(s) < 6 || s[0] != '$' {
		return false
	}
	return rmcTalkers[s[1:3]] && s[3:6] == "RMC"
}

// Run scans the log until ctx is cancelled, seeking back to the start
// at end-of-file so the replay loops indefinitely. A pending partial
// cycle is flushed once on shutdown.
func (r *Replayer) Run(ctx context.Context) error {
	f, err := os.Open(r.Path)
	if err != nil {
		return fmt.Errorf("open NMEA log file: %w", err)
	}
	defer f.Close()

	var cycle []string
outer:
	for {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			// A line already read belongs to the pending cycle even
			// when shutdown lands mid-scan.
			if ctx.Err() != nil {
				cycle = append(cycle, line)
				break outer
			}
			if isRMCBoundary(line) && len(cycle) > 0 {
				if err := r.send(cycle); err != nil {
					return err
				}
				cycle = cycle[:0]
				if !sleep(ctx, r.Interval) {
					cycle = append(cycle, line)
					break outer
				}
			}
			cycle = append(cycle, line)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read NMEA log file: %w", err)
		}
		if ctx.Err() != nil {
			break
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind NMEA log file: %w", err)
		}
	}

	// Final flush so the pending cycle is not lost on shutdown.
	if len(cycle) > 0 {
		return r.send(cycle)
	}
	return nil
}

func (r *Replayer) send(cycle []string) error {
	data := strings.Join(cycle, "\r\n") + "\r\n"
	if err := r.Transport.Write([]byte(data)); err != nil {
		return fmt.Errorf("write cycle: %w", err)
	}
	if c, ok := r.Transport.(transport.CycleCloser); ok {
		if err := c.CloseCycle(); err != nil {
			return fmt.Errorf("close %s after cycle: %w", r.Transport, err)
		}
	}
	r.Log.Infof("sent to %s (cycle):\n%s", r.Transport, strings.Join(cycle, "\n"))
	if r.OnCycle != nil {
		r.OnCycle(data)
	}
	return nil
}
