package transport

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Pipe emits cycles through a FIFO special file. The write side is
// opened lazily on first Write, since opening a FIFO for writing
// blocks until a reader connects.
type Pipe struct {
	path  string
	log   *logrus.Logger
	f     *os.File
	ready bool
}

func NewPipe(path string, log *logrus.Logger) *Pipe {
	return &Pipe{path: path, log: log}
}

func (p *Pipe) String() string {
	return "pipe " + p.path
}

// Open creates the FIFO if absent; an existing path must already be a
// FIFO.
func (p *Pipe) Open() error {
	info, err := os.Stat(p.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := unix.Mkfifo(p.path, 0o666); err != nil {
			return fmt.Errorf("create named pipe %s: %w", p.path, err)
		}
		p.log.Infof("named pipe created at: %s", p.path)
	case err != nil:
		return fmt.Errorf("stat %s: %w", p.path, err)
	case info.Mode()&os.ModeNamedPipe == 0:
		return fmt.Errorf("path exists and is not a FIFO: %s", p.path)
	default:
		p.log.Infof("using existing named pipe: %s", p.path)
	}
	p.ready = true
	p.log.Infof("connect your GNSS-consuming application to the named pipe: %s", p.path)
	return nil
}

func (p *Pipe) Write(b []byte) error {
	if p.f == nil {
		f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_APPEND, 0)
		if err != nil {
			return fmt.Errorf("open pipe %s: %w", p.path, err)
		}
		p.f = f
	}
	if _, err := p.f.Write(b); err != nil {
		return fmt.Errorf("write to pipe %s: %w", p.path, err)
	}
	return nil
}

// CloseCycle closes the write side; the next Write reopens it.
func (p *Pipe) CloseCycle() error {
	if p.f == nil {
		return nil
	}
	err := p.f.Close()
	p.f = nil
	return err
}

// Close closes the write side and removes the FIFO. The FIFO is only
// removed once Open validated it, so a setup failure never deletes a
// path the simulator does not own.
func (p *Pipe) Close() error {
	p.CloseCycle()
	if !p.ready {
		return nil
	}
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove named pipe %s: %w", p.path, err)
	}
	p.log.Infof("named pipe removed: %s", p.path)
	return nil
}
