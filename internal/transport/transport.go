// Package transport provides the write sinks a stream pump can emit
// NMEA cycles to: a named pipe, a pseudo-terminal pair or a real
// serial device.
package transport

// Transport is a byte sink with an open/write/close lifecycle. Open
// creates or validates the underlying device, Close releases
// descriptors and removes any filesystem artifacts the transport
// created.
type Transport interface {
	Open() error
	Write(p []byte) error
	Close() error
	String() string
}

// CycleCloser is implemented by transports whose sink is reopened
// between replay cycles; the write side is closed after each cycle
// and the next Write opens it again.
type CycleCloser interface {
	CloseCycle() error
}
