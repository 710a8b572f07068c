package transport

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

// Serial emits cycles to an existing serial character device at
// 9600 8N1, draining the kernel buffer after each write so data
// reaches the device before the inter-cycle sleep.
type Serial struct {
	device string
	log    *logrus.Logger
	port   serial.Port
}

func NewSerial(device string, log *logrus.Logger) *Serial {
	return &Serial{device: device, log: log}
}

func (s *Serial) String() string {
	return "serial port " + s.device
}

func (s *Serial) Open() error {
	mode := &serial.Mode{
		BaudRate: 9600,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(s.device, mode)
	if err != nil {
		return fmt.Errorf("open serial port %s: %w", s.device, err)
	}
	s.port = port
	s.log.Infof("using serial port: %s", s.device)
	return nil
}

func (s *Serial) Write(b []byte) error {
	if s.port == nil {
		if err := s.Open(); err != nil {
			return err
		}
	}
	if _, err := s.port.Write(b); err != nil {
		return fmt.Errorf("write to serial port %s: %w", s.device, err)
	}
	if err := s.port.Drain(); err != nil {
		return fmt.Errorf("drain serial port %s: %w", s.device, err)
	}
	return nil
}

// CloseCycle closes the device; the next Write reopens it.
func (s *Serial) CloseCycle() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

func (s *Serial) Close() error {
	return s.CloseCycle()
}
