package transport

import (
	"path/filepath"
	"testing"
)

func TestSerialOpenMissingDevice(t *testing.T) {
	s := NewSerial(filepath.Join(t.TempDir(), "ttyNOPE"), discardLogger())
	if err := s.Open(); err == nil {
		s.Close()
		t.Fatal("Open succeeded on a nonexistent device")
	}
}

func TestSerialCloseWithoutOpen(t *testing.T) {
	s := NewSerial("/dev/ttyUSB0", discardLogger())
	if err := s.Close(); err != nil {
		t.Fatalf("Close before Open: %v", err)
	}
	if err := s.CloseCycle(); err != nil {
		t.Fatalf("CloseCycle before Open: %v", err)
	}
}

func TestSerialString(t *testing.T) {
	s := NewSerial("/dev/ttyUSB0", discardLogger())
	if got := s.String(); got != "serial port /dev/ttyUSB0" {
		t.Errorf("String = %q", got)
	}
}
