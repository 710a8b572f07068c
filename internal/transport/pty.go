package transport

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/creack/pty"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const (
	symlinkRetries = 3
	symlinkBackoff = time.Second
)

// PTY emits cycles through the master side of a pseudo-terminal pair.
// The slave side is configured as a 9600 8N1 raw serial port and kept
// open for the run; an optional symlink gives consumers a stable
// device path.
type PTY struct {
	symlink string
	log     *logrus.Logger
	master  *os.File
	slave   *os.File
	linked  bool
}

func NewPTY(symlink string, log *logrus.Logger) *PTY {
	return &PTY{symlink: symlink, log: log}
}

func (t *PTY) String() string {
	if t.slave != nil {
		return "pty " + t.slave.Name()
	}
	return "pty"
}

// SlavePath returns the raw device path of the slave side, valid
// after Open.
func (t *PTY) SlavePath() string {
	if t.slave == nil {
		return ""
	}
	return t.slave.Name()
}

func (t *PTY) Open() error {
	master, slave, err := pty.Open()
	if err != nil {
		return fmt.Errorf("create virtual serial port: %w", err)
	}
	if err := configureTTY(slave); err != nil {
		master.Close()
		slave.Close()
		return err
	}
	t.master, t.slave = master, slave
	t.log.Infof("virtual serial port created at: %s", slave.Name())

	if t.symlink != "" {
		t.createSymlink(slave.Name())
	}
	if t.linked {
		t.log.Infof("connect your GNSS-consuming application to the virtual serial port: %s", t.symlink)
	} else {
		t.log.Infof("connect your GNSS-consuming application to the virtual serial port: %s", slave.Name())
	}
	return nil
}

// configureTTY sets the slave up as a raw 9600 8N1 serial port with
// no flow control.
func configureTTY(tty *os.File) error {
	fd := int(tty.Fd())
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("get terminal attributes: %w", err)
	}
	tio.Cflag &^= unix.PARENB | unix.CSTOPB | unix.CSIZE | unix.CRTSCTS | unix.CBAUD
	tio.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL | unix.B9600
	tio.Lflag &^= unix.ICANON | unix.ECHO | unix.ECHOE | unix.ISIG
	tio.Iflag &^= unix.IXON | unix.IXOFF | unix.IXANY
	tio.Oflag &^= unix.OPOST
	tio.Ispeed = unix.B9600
	tio.Ospeed = unix.B9600
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, tio); err != nil {
		return fmt.Errorf("set terminal attributes: %w", err)
	}
	return nil
}

// createSymlink links the symlink path to the slave device, retrying
// a few times before degrading to the raw device path.
func (t *PTY) createSymlink(target string) {
	if err := os.Remove(t.symlink); err != nil && !errors.Is(err, os.ErrNotExist) {
		t.log.Warnf("failed to remove existing symbolic link %s: %v", t.symlink, err)
	}
	for attempt := 1; ; attempt++ {
		err := os.Symlink(target, t.symlink)
		if err == nil {
			t.log.Infof("symbolic link created at: %s", t.symlink)
			t.linked = true
			return
		}
		t.log.Errorf("failed to create symbolic link %s: %v", t.symlink, err)
		if attempt >= symlinkRetries {
			t.log.Error("exceeded maximum retries, continuing without symlink")
			return
		}
		t.log.Info("retrying in 1 second...")
		time.Sleep(symlinkBackoff)
	}
}

func (t *PTY) Write(b []byte) error {
	if _, err := t.master.Write(b); err != nil {
		return fmt.Errorf("write to PTY: %w", err)
	}
	return nil
}

func (t *PTY) Close() error {
	if t.linked {
		if err := os.Remove(t.symlink); err != nil {
			t.log.Errorf("error removing symbolic link %s: %v", t.symlink, err)
		} else {
			t.log.Infof("symbolic link removed: %s", t.symlink)
		}
		t.linked = false
	}
	var err error
	if t.slave != nil {
		t.slave.Close()
		t.slave = nil
	}
	if t.master != nil {
		err = t.master.Close()
		t.master = nil
	}
	return err
}
